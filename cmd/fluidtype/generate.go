package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/fluidtype"
	"github.com/yacobolo/fluidtype/internal/log"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Print the generated type scale",
	Long: `Compute the fluid type scale and print it as a CSS rule of custom
properties, as JSON or YAML, or as a table.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	addScaleFlags(generateCmd.Flags(), fluidtype.DefaultConfig().Prefix)
	addGenerateFlags(generateCmd.Flags())
}

func addGenerateFlags(f *pflag.FlagSet) {
	f.StringP("format", "f", string(fluidtype.ScaleCSS), "Output format: css|json|yaml|table")
	f.String("selector", fluidtype.DefaultSelector, "Selector wrapping the custom properties (css format)")
	f.StringP("output", "o", "", "Write to a file instead of stdout")
}

func runGenerate(_ *cobra.Command, _ []string) error {
	config, err := buildScaleConfig("", fluidtype.DefaultConfig().Prefix)
	if err != nil {
		return err
	}
	format, err := fluidtype.ParseScaleFormat(getStringWithFallback("format", "generate.format", string(fluidtype.ScaleCSS)))
	if err != nil {
		return err
	}

	scale, err := fluidtype.Generate(config)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	logger := log.WithComponent("generate")
	logger.Debug().Int("entries", scale.Len()).Msg("generated scale")

	selector := getStringWithFallback("selector", "generate.selector", fluidtype.DefaultSelector)
	useColors := getBoolWithFallback("color", "color", false) || isTerminal(os.Stdout)

	output := getStringWithFallback("output", "generate.output", "")
	if output == "" {
		if getBoolWithFallback("quiet", "quiet", false) {
			return nil
		}
		return fluidtype.WriteScale(os.Stdout, scale, format, selector, useColors)
	}

	return writeOutputFile(output, func(f *os.File) error {
		return fluidtype.WriteScale(f, scale, format, selector, false)
	})
}

// writeOutputFile creates path and hands it to write
func writeOutputFile(path string, write func(*os.File) error) error {
	// #nosec G304 - path comes from the user
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// isTerminal reports whether f is a character device
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
