package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/xsdform/document"
)

var (
	initType   string
	initRoot   string
	initOutput string
	initKeep   bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a new element with default attributes",
	Long: `Create an element of a complex type whose attributes carry their
declared fixed or default values. Optional attributes left empty are
removed unless --keep-empty is given.

Examples:
  xsdform init --schema order.xsd --type orderType --root order
  xsdform init -s order.xsd -t orderType -o order.xml`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initType, "type", "t", "", "complex type or global element name")
	initCmd.Flags().StringVar(&initRoot, "root", "", "root element name (default: the type name)")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "", "output file (default: stdout)")
	initCmd.Flags().BoolVar(&initKeep, "keep-empty", false, "keep empty optional attributes")
	_ = initCmd.MarkFlagRequired("type")
}

func runInit(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	l, err := e.attributeList(initType)
	if err != nil {
		return err
	}
	root := initRoot
	if root == "" {
		root = initType
	}
	doc := document.New(root)
	l.CreateDefaults(doc, doc.Root())
	if !initKeep {
		l.PruneOptionalEmpties()
	}
	out, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	if initOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}
	if err := os.WriteFile(initOutput, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	e.logger.Info().Str("file", initOutput).Int("attributes", l.Len()).Msg("document written")
	return nil
}
