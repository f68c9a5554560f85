package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/fluidtype"
	"github.com/yacobolo/fluidtype/internal/log"
)

var tailwindCmd = &cobra.Command{
	Use:   "tailwind",
	Short: "Emit the scale for a utility-first CSS framework",
	Long: `Expose the scale as font-size utilities (.text-fluid-0 { font-size: ... })
or as theme values for theme.extend.fontSize. With --content, only utilities
used in the content files are emitted.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runTailwind,
}

func init() {
	f := tailwindCmd.Flags()
	addScaleFlags(f, fluidtype.DefaultTailwindPrefix)
	f.String("mode", string(fluidtype.TailwindUtilities), "Output mode: utilities|theme")
	f.String("class-prefix", fluidtype.DefaultClassPrefix, "Prefix joining utility class names")
	f.StringSlice("content", nil, "Content globs scanned for used utility classes")
	f.StringP("output", "o", "", "Write to a file instead of stdout")
}

func runTailwind(_ *cobra.Command, _ []string) error {
	config, err := buildTailwindConfig()
	if err != nil {
		return err
	}

	result, err := fluidtype.Tailwind(config)
	if err != nil {
		return fmt.Errorf("tailwind failed: %w", err)
	}
	logger := log.WithComponent("tailwind")
	logger.Debug().
		Str("mode", string(result.Mode)).
		Int("files", result.Stats.FilesScanned).
		Int("used", len(result.Used)).
		Msg("built utilities")

	write := func(w io.Writer) error {
		if result.Mode == fluidtype.TailwindTheme {
			return fluidtype.WriteTheme(w, result.Theme)
		}
		_, err := io.WriteString(w, result.Utilities)
		return err
	}

	output := getStringWithFallback("output", "tailwind.output", "")
	if output == "" {
		if getBoolWithFallback("quiet", "quiet", false) {
			return nil
		}
		return write(os.Stdout)
	}
	return writeOutputFile(output, func(f *os.File) error { return write(f) })
}
