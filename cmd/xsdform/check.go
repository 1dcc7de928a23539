package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	xsdform "github.com/reoring/xsdform"
	"github.com/reoring/xsdform/document"
)

const (
	checkMark = "✓"
	crossMark = "✗"
)

var checkType string

var checkCmd = &cobra.Command{
	Use:   "check [document.xml...]",
	Short: "Validate the root attributes of documents",
	Long: `Bind the root element of each document to the attributes of a complex
type and report values that do not fit their declarations.

Examples:
  xsdform check --schema order.xsd --type orderType order.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkType, "type", "t", "", "complex type or global element name")
	_ = checkCmd.MarkFlagRequired("type")
}

func runCheck(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	proto, err := e.attributeList(checkType)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		doc, err := document.Parse(data)
		if err != nil {
			fmt.Fprintf(w, "  %s %s: %v\n", crossMark, path, err)
			failed++
			continue
		}
		l := proto.Clone()
		if err := l.Populate(doc, doc.Root()); err != nil {
			fmt.Fprintf(w, "  %s %s: %v\n", crossMark, path, err)
			failed++
			continue
		}
		iss, _ := xsdform.AsIssues(l.Validate())
		if len(iss) == 0 {
			fmt.Fprintf(w, "  %s %s\n", checkMark, path)
			continue
		}
		failed++
		fmt.Fprintf(w, "  %s %s\n", crossMark, path)
		for _, it := range iss {
			fmt.Fprintf(w, "      %s %s: %s\n", it.Path, it.Code, it.Message)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents invalid", failed, len(args))
	}
	return nil
}
