package fluidtype

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/yacobolo/fluidtype/internal/stylesheet"
)

// LintConfig holds linting configuration
type LintConfig struct {
	Process     ProcessConfig
	CSSPaths    []string // Stylesheets to check (e.g., "web/styles/**/*.css")
	Content     []string // Content files whose utility classes are checked
	ClassPrefix string   // "text-" for .text-fluid-0; empty skips class checks
	NamePrefix  string   // Scale prefix of utility names; empty uses Process.Prefix
	Verbose     bool
	Strict      bool // Exit with code 1 if any issue is found, warnings included

	// golangci-style configuration
	MaxIssuesPerLinter int  // 0 = unlimited (default)
	MaxSameIssues      int  // 0 = unlimited (default)
	PrintIssuedLines   bool // Show source lines with issues (default: true)
	PrintLinterName    bool // Show (fluidvars) suffix (default: true)
	UseColors          bool // Enable color output (default: auto-detect)
}

// LintResult contains linting analysis results
type LintResult struct {
	Scale *Scale

	// Issues in golangci-lint format
	Issues []Issue

	FilesScanned   int // Stylesheets and content files read
	References     int // Prefixed references checked
	ErrorCount     int
	WarningCount   int
	TruncatedCount int // Issues removed due to limits

	Warnings []string
}

// HasErrors reports whether any issue has error severity
func (r *LintResult) HasErrors() bool {
	return r.ErrorCount > 0
}

// Lint checks stylesheets and content files against the generated scale
func Lint(config LintConfig) (*LintResult, error) {
	scale, err := Generate(config.Process.Config)
	if err != nil {
		return nil, err
	}
	result := &LintResult{Scale: scale}

	// Step 1: Stylesheets
	files, stats, err := expandGlobPatterns(config.CSSPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to expand stylesheet patterns: %w", err)
	}
	if len(config.CSSPaths) > 0 && stats.FilesDiscovered == 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no stylesheets matched %s", strings.Join(config.CSSPaths, ", ")))
	}
	for _, file := range files {
		// #nosec G304 - path comes from configured globs
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		sheet, err := stylesheet.Parse(string(src), file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		result.Issues = append(result.Issues, lintStylesheet(sheet, scale, config.Process, result)...)
		result.FilesScanned++
	}

	// Step 2: Content files
	if len(config.Content) > 0 && config.ClassPrefix != "" {
		refs, stats, err := ScanContent(config.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		result.FilesScanned += stats.FilesScanned

		utilities := scale
		if config.NamePrefix != "" && config.NamePrefix != config.Process.Prefix {
			cfg := config.Process.Config
			cfg.Prefix = config.NamePrefix
			if utilities, err = Generate(cfg); err != nil {
				return nil, err
			}
		}
		result.Issues = append(result.Issues, lintClasses(refs, utilities, config.ClassPrefix, result)...)
	}

	sortIssues(result.Issues)

	// Step 3: Apply issue limiting if configured
	if config.MaxIssuesPerLinter > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, config)
	}

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			result.ErrorCount++
		case SeverityWarning:
			result.WarningCount++
		}
	}

	return result, nil
}

// lintStylesheet reports unresolved references and misplaced directives
func lintStylesheet(sheet *stylesheet.Sheet, scale *Scale, cfg ProcessConfig, result *LintResult) []Issue {
	var issues []Issue

	newIssue := func(severity, text string, line, col int) Issue {
		issue := Issue{
			FromLinter: LinterVars,
			Text:       text,
			Severity:   severity,
			Pos:        IssuePos{Filename: sheet.Filename, Line: line, Column: col},
		}
		if src := sheet.SourceLine(line); src != "" {
			issue.SourceLines = []string{src}
		}
		return issue
	}

	sheet.WalkDecls(func(d *stylesheet.Decl) {
		value := d.Value()
		if cfg.Prefix == "" || !strings.Contains(value, cfg.Prefix) {
			return
		}
		result.References++

		if _, missing := ResolveReferences(value, cfg.Prefix, scale); len(missing) > 0 {
			line, col := d.Position()
			issues = append(issues, newIssue(SeverityError,
				fmt.Sprintf(IssueUnresolvedStep, strings.Join(missing, ", "), d.Prop(), value),
				line, col))
		}
	})

	directive := cfg.directive()
	sheet.WalkComments(func(c *stylesheet.Comment, inRule bool) {
		if c.Text() != directive {
			return
		}
		line, col := c.Position()
		switch {
		case !inRule:
			issues = append(issues, newIssue(SeverityWarning,
				fmt.Sprintf(IssueInertDirective, directive), line, col))
		case cfg.ReplaceInline:
			issues = append(issues, newIssue(SeverityWarning,
				fmt.Sprintf(IssueIgnoredDirective, directive), line, col))
		}
	})

	return issues
}

// lintClasses reports utility classes that look like scale steps but are
// not generated by it
func lintClasses(refs []ClassReference, scale *Scale, classPrefix string, result *LintResult) []Issue {
	known := make(map[string]bool, len(scale.Steps()))
	for _, step := range scale.Steps() {
		known[classPrefix+step.Name] = true
	}
	stem := classPrefix + scale.Config().Prefix

	var issues []Issue
	for _, ref := range refs {
		if !strings.HasPrefix(ref.ClassName, stem) {
			continue
		}
		result.References++
		if known[ref.ClassName] {
			continue
		}

		issue := Issue{
			FromLinter: LinterClasses,
			Text:       fmt.Sprintf(IssueUnknownClass, ref.ClassName),
			Severity:   SeverityError,
			Pos: IssuePos{
				Filename: ref.Location.File,
				Line:     ref.Location.Line,
				Column:   ref.Location.Column,
			},
		}
		if ref.Location.Text != "" {
			issue.SourceLines = []string{ref.Location.Text}
		}
		issues = append(issues, issue)
	}
	return issues
}

// sortIssues orders issues by file, then line, then column
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}

// limitIssues applies max-issues-per-linter and max-same-issues constraints
func limitIssues(issues []Issue, config LintConfig) ([]Issue, int) {
	originalCount := len(issues)

	if config.MaxIssuesPerLinter > 0 {
		perLinter := make(map[string]int)
		var kept []Issue
		for _, issue := range issues {
			if perLinter[issue.FromLinter] < config.MaxIssuesPerLinter {
				kept = append(kept, issue)
				perLinter[issue.FromLinter]++
			}
		}
		issues = kept
	}

	// Deduplication by message text
	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		count := messageCounts[issue.Text]
		if count < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
