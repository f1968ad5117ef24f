package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/codedoc/comment"
	"github.com/dhamidi/codedoc/doctree"
	"github.com/dhamidi/codedoc/markdown"
	"github.com/dhamidi/codedoc/toc"
	"github.com/dhamidi/codedoc/xmldoc"
	"github.com/spf13/cobra"
)

func newTOCCmd() *cobra.Command {
	var (
		bodyFile   string
		xmlFile    string
		formatName string
	)

	cmd := &cobra.Command{
		Use:   "toc [flags] [source...]",
		Short: "Print the table of contents for a body document and sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := comment.ParseFormat(formatName)
			if !ok {
				return fmt.Errorf("toc: unknown format %q", formatName)
			}
			if bodyFile == "" {
				bodyFile = cfg.Body
			}
			if xmlFile == "" && len(args) == 0 {
				xmlFile = cfg.XML
				args = cfg.Sources
			}

			var body *markdown.Document
			if bodyFile != "" {
				var err error
				if body, err = markdown.LoadFile(bodyFile); err != nil {
					return fmt.Errorf("toc: %w", err)
				}
			}
			cfg.ApplyDefaults(body)
			log.Infof("table of contents for %s %s", cfg.Title, cfg.Version)

			tree := doctree.NewRoot()
			if xmlFile != "" {
				tree = xmldoc.LoadFile(xmlFile)
			}
			if err := scanSources(tree, args); err != nil {
				return err
			}

			if err := toc.Write(os.Stdout, toc.Build(tree, body, f)); err != nil {
				return fmt.Errorf("toc: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&bodyFile, "body", "b", "", "body document (.md or .html)")
	cmd.Flags().StringVarP(&xmlFile, "xml", "x", "", "XML file to start from")
	cmd.Flags().StringVarP(&formatName, "format", "f", "html", "output format for @exclude@ filtering (html, xml, man, epub)")

	return cmd
}
