package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/dhamidi/codedoc/doctree"
	"github.com/dhamidi/codedoc/scanner"
	"github.com/dhamidi/codedoc/xmldoc"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

var errOutOfDate = errors.New("xml file is out of date")

func newScanCmd() *cobra.Command {
	var (
		xmlFile  string
		bodyFile string
		check    bool
	)

	cmd := &cobra.Command{
		Use:   "scan [flags] [source...]",
		Short: "Scan C/C++ sources into a codedoc XML file",
		Long: `Scan C/C++ sources and merge their declarations into the tree stored
in the XML file, then write the tree back. Without an XML file the tree is
written to standard output. Sources default to the project configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if xmlFile == "" {
				xmlFile = cfg.XML
			}
			if bodyFile == "" {
				bodyFile = cfg.Body
			}
			if len(args) == 0 {
				args = cfg.Sources
			}
			if len(args) == 0 {
				return errors.New("scan: no source files")
			}
			return runScan(xmlFile, bodyFile, check, args)
		},
	}

	cmd.Flags().StringVarP(&xmlFile, "xml", "x", "", "XML file to update")
	cmd.Flags().StringVarP(&bodyFile, "body", "b", "", "body document that receives @body@ comments")
	cmd.Flags().BoolVar(&check, "check", false, "print a diff of the XML file instead of writing it")

	return cmd
}

func runScan(xmlFile, bodyFile string, check bool, sources []string) error {
	tree := doctree.NewRoot()
	if xmlFile != "" {
		tree = xmldoc.LoadFile(xmlFile)
	}

	var body bytes.Buffer
	if err := scanSources(tree, sources, scanner.WithBody(&body)); err != nil {
		return err
	}

	var out bytes.Buffer
	if err := xmldoc.Save(&out, tree); err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if check {
		return checkXML(xmlFile, out.Bytes())
	}

	if body.Len() > 0 {
		if err := appendBody(bodyFile, body.Bytes()); err != nil {
			return err
		}
	}

	if xmlFile == "" {
		_, err := os.Stdout.Write(out.Bytes())
		return err
	}
	if err := os.WriteFile(xmlFile, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("scan: write xml: %w", err)
	}
	log.Infof("wrote %s", xmlFile)
	return nil
}

// scanSources scans every path into tree with a single scanner.
func scanSources(tree *doctree.Node, paths []string, opts ...scanner.Option) error {
	s := scanner.New(tree, opts...)
	for _, path := range paths {
		if err := s.ScanFile(path); err != nil {
			return fmt.Errorf("scan %s: %w", path, err)
		}
	}
	return nil
}

// appendBody adds @body@ text to the end of the body document. Without a
// body document the text is only logged.
func appendBody(path string, text []byte) error {
	if path == "" {
		log.Warningf("discarding %d bytes of @body@ text, no body document", len(text))
		return nil
	}
	fp, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("scan: open body: %w", err)
	}
	if _, err := fp.Write(text); err != nil {
		fp.Close()
		return fmt.Errorf("scan: write body: %w", err)
	}
	log.Infof("appended %d bytes to %s", len(text), path)
	return fp.Close()
}

// checkXML prints a unified diff between the XML file on disk and updated.
// It fails when they differ.
func checkXML(path string, updated []byte) error {
	var current []byte
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("scan: read xml: %w", err)
		}
		current = data
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(updated)),
		FromFile: path,
		ToFile:   path + " (scanned)",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("scan: diff: %w", err)
	}
	if diff == "" {
		return nil
	}
	fmt.Print(diff)
	return errOutOfDate
}
