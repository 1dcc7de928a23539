package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reoring/xsdform/config"
	"github.com/reoring/xsdform/i18n"
	"github.com/reoring/xsdform/outcome"
	"github.com/reoring/xsdform/schema"
	"github.com/reoring/xsdform/source/xsd"
)

var (
	// Global flags
	cfgFile     string
	schemaFiles []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xsdform",
	Short: "Build form field descriptors from XML Schema declarations",
	Long: `xsdform maps the attributes of XML Schema complex types to typed form
fields and emits UI control descriptors for them.

Commands:
  xsdform descriptors  # print the descriptors of a type
  xsdform init         # write a new element with default attributes
  xsdform check        # validate the attributes of a document
  xsdform serve        # serve descriptors over HTTP`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "xsdform.yaml", "config file path")
	rootCmd.PersistentFlags().StringSliceVarP(&schemaFiles, "schema", "s", nil, "schema file (repeatable)")
}

// env is what every command needs: configuration, a logger and the loaded
// schema set.
type env struct {
	cfg    *config.Config
	logger zerolog.Logger
	set    *schema.Set
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger(cmd.ErrOrStderr())
	i18n.SetLanguage(cfg.Language)
	if len(schemaFiles) == 0 {
		return nil, fmt.Errorf("no schema given, use --schema")
	}
	docs := make([][]byte, 0, len(schemaFiles))
	for _, p := range schemaFiles {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read schema: %w", err)
		}
		docs = append(docs, b)
	}
	set, err := xsd.LoadWith(xsd.Options{Logger: &logger}, docs...)
	if err != nil {
		return nil, err
	}
	logger.Debug().Strs("schema", schemaFiles).Int("types", len(set.Types)).Msg("schema loaded")
	return &env{cfg: cfg, logger: logger, set: set}, nil
}

func (e *env) options() outcome.Options {
	o := outcome.Options{Logger: &e.logger}
	o.Field.Lists = e.cfg.Lists()
	return o
}

func (e *env) attributeList(typeName string) (*outcome.AttributeList, error) {
	ct, ok := e.set.ComplexType(typeName)
	if !ok {
		return nil, fmt.Errorf("no complex type %q in schema", typeName)
	}
	return outcome.NewAttributeList(ct, e.options()), nil
}
