package fluidtype

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCaretIndicator(t *testing.T) {
	reporter := &Reporter{}

	tests := []struct {
		name       string
		sourceLine string
		column     int
		want       string
	}{
		{
			name:       "spaces only",
			sourceLine: "  font-size: var(--font-size-9);",
			column:     3,
			want:       "  ^",
		},
		{
			name:       "tabs and spaces",
			sourceLine: "\t\tfont-size: font-size-9;",
			column:     3,
			want:       "\t\t^",
		},
		{
			name:       "start of line",
			sourceLine: "font-size: font-size-9;",
			column:     1,
			want:       "^",
		},
		{
			name:       "column 0 fallback",
			sourceLine: "some line",
			column:     0,
			want:       "^",
		},
		{
			name:       "column beyond line length",
			sourceLine: "short",
			column:     100,
			want:       "     ^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reporter.buildCaretIndicator(tt.sourceLine, tt.column)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestReporterPrintIssues(t *testing.T) {
	var buf bytes.Buffer
	reporter := &Reporter{w: &buf, printLines: true, printLinterName: true}

	reporter.PrintIssues([]Issue{
		{
			FromLinter:  LinterVars,
			Text:        "second",
			Severity:    SeverityWarning,
			SourceLines: []string{"  /* postcss-modular-type-generate */"},
			Pos:         IssuePos{Filename: "b.css", Line: 1, Column: 3},
		},
		{
			FromLinter: LinterVars,
			Text:       "first",
			Severity:   SeverityError,
			Pos:        IssuePos{Filename: "a.css", Line: 4, Column: 1},
		},
	})

	want := "a.css:4:1: first (fluidvars)\n" +
		"b.css:1:3: warning: second (fluidvars)\n" +
		"\t  /* postcss-modular-type-generate */\n" +
		"\t  ^\n"
	assert.Equal(t, want, buf.String())
}

func TestReporterPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	reporter := &Reporter{w: &buf}

	reporter.PrintSummary(LintResult{
		Issues: []Issue{
			{FromLinter: LinterVars, Severity: SeverityError},
			{FromLinter: LinterClasses, Severity: SeverityError},
			{FromLinter: LinterVars, Severity: SeverityWarning},
		},
		ErrorCount:     2,
		WarningCount:   1,
		TruncatedCount: 4,
	})

	want := "\n3 issues (2 errors, 1 warning; 4 issues truncated):\n" +
		"* fluidclass: 1\n" +
		"* fluidvars: 2\n"
	assert.Equal(t, want, buf.String())
}

func TestPluralizeCount(t *testing.T) {
	assert.Equal(t, "1 issue", pluralizeCount(1, "issue", "issues"))
	assert.Equal(t, "0 issues", pluralizeCount(0, "issue", "issues"))
}
