package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/codedoc/doctree"
	"github.com/dhamidi/codedoc/format"
	"github.com/dhamidi/codedoc/xmldoc"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var (
		dumpFormat string
		xmlFile    string
	)

	cmd := &cobra.Command{
		Use:   "dump [flags] [source...]",
		Short: "Print the documentation tree of C/C++ sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree := doctree.NewRoot()
			if xmlFile != "" {
				tree = xmldoc.LoadFile(xmlFile)
			}
			if err := scanSources(tree, args); err != nil {
				return err
			}

			enc, err := format.NewEncoder(dumpFormat, os.Stdout)
			if err != nil {
				return fmt.Errorf("dump: %w", err)
			}
			if err := enc.Encode(tree); err != nil {
				return fmt.Errorf("encode %s: %w", dumpFormat, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line",
		"output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().StringVarP(&xmlFile, "xml", "x", "", "XML file to start from")

	return cmd
}
