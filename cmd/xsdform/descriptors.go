package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/xsdform/descriptor"
)

var descriptorsType string

var descriptorsCmd = &cobra.Command{
	Use:   "descriptors",
	Short: "Print the field descriptors of a complex type",
	Long: `Print the UI control descriptors of every attribute of a complex type
as JSON.

Examples:
  xsdform descriptors --schema order.xsd --type orderType
  xsdform descriptors -s order.xsd -t order`,
	RunE: runDescriptors,
}

func init() {
	rootCmd.AddCommand(descriptorsCmd)

	descriptorsCmd.Flags().StringVarP(&descriptorsType, "type", "t", "", "complex type or global element name")
	_ = descriptorsCmd.MarkFlagRequired("type")
}

func runDescriptors(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	l, err := e.attributeList(descriptorsType)
	if err != nil {
		return err
	}
	out, err := descriptor.MarshalIndent(l.Descriptors(nil))
	if err != nil {
		return fmt.Errorf("render descriptors: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
