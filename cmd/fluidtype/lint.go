package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/fluidtype"
)

var lintCmd = &cobra.Command{
	Use:   "lint [globs...]",
	Short: "Check stylesheets and content files against the scale",
	Long: `Report references to scale names that the configuration does not generate,
directive comments that are never expanded, and utility classes in content
files that do not match a generated step.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runLint,
}

func init() {
	f := lintCmd.Flags()
	addScaleFlags(f, fluidtype.DefaultConfig().Prefix)
	f.StringSlice("paths", nil, "Stylesheet globs to check (default **/*.css)")
	f.Bool("replace-inline", false, "Check stylesheets as processed with --replace-inline")
	f.String("directive", fluidtype.DefaultGeneratorDirective, "Generator directive comment text")
	f.StringSlice("content", nil, "Content globs whose utility classes are checked")
	f.String("class-prefix", "", "Utility class prefix; enables class checks (e.g., text-)")
	f.String("utility-prefix", fluidtype.DefaultTailwindPrefix, "Scale prefix of utility class names")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues-per-linter", 0, "Max issues to show per linter (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (fluidvars) suffix on issues")
}

func runLint(_ *cobra.Command, args []string) error {
	lintConfig, err := buildLintConfig()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		lintConfig.CSSPaths = args
	}

	lintResult, err := fluidtype.Lint(lintConfig)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "lint.output-format", "")
	format := fluidtype.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		fluidtype.WriteOutput(os.Stdout, lintResult, format, lintConfig)
	}

	// Exit code logic - "Soft Gate" approach
	if lintConfig.Strict {
		// Strict mode: any issue (error or warning) fails the build
		if len(lintResult.Issues) > 0 {
			os.Exit(1)
		}
	} else if lintResult.HasErrors() {
		// Default mode: only errors fail the build
		os.Exit(1)
	}

	return nil
}
