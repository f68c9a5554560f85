package fluidtype

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yacobolo/fluidtype/internal/ui"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the linter output format
type OutputFormat string

const (
	// OutputIssues shows only errors/warnings in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics and the scale table only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues, statistics and the scale table
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)

// ScaleFormat selects how a generated scale is written
type ScaleFormat string

const (
	// ScaleCSS writes a rule of custom property declarations
	ScaleCSS ScaleFormat = "css"
	// ScaleJSON writes an ordered JSON object of name to value
	ScaleJSON ScaleFormat = "json"
	// ScaleYAML writes an ordered YAML mapping of name to value
	ScaleYAML ScaleFormat = "yaml"
	// ScaleTable writes a terminal table of every step
	ScaleTable ScaleFormat = "table"
)

// ParseScaleFormat converts a flag value into a ScaleFormat
func ParseScaleFormat(s string) (ScaleFormat, error) {
	switch f := ScaleFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return ScaleCSS, nil
	case ScaleCSS, ScaleJSON, ScaleYAML, ScaleTable:
		return f, nil
	case "yml":
		return ScaleYAML, nil
	default:
		return "", &InvalidOptionError{Option: "format", Reason: fmt.Sprintf("unknown format %q (want css, json, yaml or table)", s)}
	}
}

// DetermineOutputFormat selects the lint output format from flags
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit -quiet flag wins (exit code only)
	if quiet {
		return OutputIssues
	}

	switch OutputFormat(formatFlag) {
	case OutputIssues, OutputSummary, OutputFull, OutputJSON:
		return OutputFormat(formatFlag)
	}

	// golangci-lint UX: issues only by default
	return OutputIssues
}

// WriteScale writes a generated scale in the requested format
func WriteScale(w io.Writer, scale *Scale, format ScaleFormat, selector string, useColors bool) error {
	switch format {
	case ScaleCSS, "":
		_, err := io.WriteString(w, RenderCustomProperties(scale, selector))
		return err

	case ScaleJSON:
		data, err := scale.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err

	case ScaleYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(scale); err != nil {
			return err
		}
		return encoder.Close()

	case ScaleTable:
		_, err := fmt.Fprintln(w, scaleTable(scale, useColors))
		return err

	default:
		return &InvalidOptionError{Option: "format", Reason: fmt.Sprintf("unknown format %q", format)}
	}
}

// scaleTable renders one row per step
func scaleTable(scale *Scale, useColors bool) string {
	cfg := scale.Config()
	unit := string(cfg.Unit)

	rows := make([][]string, 0, len(scale.Steps()))
	for _, step := range scale.Steps() {
		rows = append(rows, []string{
			step.Name,
			fmt.Sprintf("%d", step.Power),
			toFixed(step.MinSize, cfg.Precision) + unit,
			toFixed(step.MaxSize, cfg.Precision) + unit,
			toFixed(step.SlopeVW, cfg.Precision) + "vw",
			toFixed(step.Intercept, cfg.Precision) + unit,
		})
	}
	return ui.Table([]string{"Name", "Step", "Min", "Max", "Slope", "Intercept"}, rows, useColors)
}

// WriteOutput writes the lint result in the specified format
func WriteOutput(w io.Writer, result *LintResult, format OutputFormat, config LintConfig) {
	switch format {
	case OutputIssues:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

	case OutputSummary:
		printStatistics(w, result, shouldUseColors(config.UseColors))

	case OutputFull:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)
		printStatistics(w, result, reporter.UseColors())

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			// Log error but don't crash
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		}
	}
}

// printStatistics writes scan counts followed by the scale table
func printStatistics(w io.Writer, result *LintResult, useColors bool) {
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, ui.RenderStyle(ui.StyleCyan, "Statistics", useColors))
	fmt.Fprintf(w, "  Files scanned: %d\n", result.FilesScanned)
	fmt.Fprintf(w, "  References:    %d\n", result.References)
	fmt.Fprintf(w, "  Errors:        %d\n", result.ErrorCount)
	fmt.Fprintf(w, "  Warnings:      %d\n", result.WarningCount)

	if result.Scale != nil {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, ui.RenderStyle(ui.StyleCyan, "Scale", useColors))
		fmt.Fprintln(w, scaleTable(result.Scale, useColors))
	}
}
