package fluidtype

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"github.com/yacobolo/fluidtype/internal/stylesheet"
)

// DefaultGeneratorDirective is the comment that marks where variables are inserted
const DefaultGeneratorDirective = "postcss-modular-type-generate"

// Linter names attached to issues
const (
	LinterVars    = "fluidvars"  // Custom property references in stylesheets
	LinterClasses = "fluidclass" // Utility classes in content files
)

// Declaration is a property declaration in a host stylesheet
type Declaration interface {
	Prop() string
	Value() string
	SetValue(value string)
	Position() (line, col int)
}

// Comment is a comment in a host stylesheet that can be swapped for declarations
type Comment interface {
	Text() string
	ReplaceWithDeclarations(props, values []string)
}

// Stylesheet is the tree a host post-processor hands to Transform. The
// host owns parsing and traversal; Transform only visits what it is given.
type Stylesheet interface {
	WalkDecls(fn func(Declaration))
	WalkRuleComments(fn func(Comment))
}

// ProcessConfig configures the stylesheet adapter
type ProcessConfig struct {
	Config
	ReplaceInline      bool   // Substitute references in place instead of expanding directives
	GeneratorDirective string // Comment text replaced by the generated variables; empty uses DefaultGeneratorDirective
}

// directive returns the trimmed directive text, never empty
func (c ProcessConfig) directive() string {
	if d := strings.TrimSpace(c.GeneratorDirective); d != "" {
		return d
	}
	return DefaultGeneratorDirective
}

// DefaultProcessConfig returns the default adapter configuration
func DefaultProcessConfig() ProcessConfig {
	return ProcessConfig{
		Config:             DefaultConfig(),
		GeneratorDirective: DefaultGeneratorDirective,
	}
}

// TransformResult summarizes a Transform pass
type TransformResult struct {
	Replaced   int     // Declarations rewritten in place
	Directives int     // Directive comments expanded
	Issues     []Issue // Unresolved references; Pos.Filename is left empty
}

// Transform applies the scale to a host stylesheet. Unknown references are
// reported as warnings and the declaration is left untouched.
func Transform(sheet Stylesheet, scale *Scale, cfg ProcessConfig) TransformResult {
	var result TransformResult

	if cfg.ReplaceInline {
		sheet.WalkDecls(func(decl Declaration) {
			value := decl.Value()
			if !strings.Contains(value, cfg.Prefix) {
				return
			}

			replaced, missing := ResolveReferences(value, cfg.Prefix, scale)
			if len(missing) > 0 {
				line, col := decl.Position()
				result.Issues = append(result.Issues, Issue{
					FromLinter: LinterVars,
					Text: fmt.Sprintf(IssueUnresolvedStep,
						strings.Join(missing, ", "), decl.Prop(), value),
					Severity: SeverityWarning,
					Pos:      IssuePos{Line: line, Column: col},
				})
				return
			}
			if replaced != value {
				decl.SetValue(replaced)
				result.Replaced++
			}
		})
		return result
	}

	directive := cfg.directive()
	sheet.WalkRuleComments(func(c Comment) {
		if c.Text() != directive {
			return
		}
		props := make([]string, 0, scale.Len())
		values := make([]string, 0, scale.Len())
		scale.Each(func(name, value string) {
			props = append(props, "--"+name)
			values = append(values, value)
		})
		c.ReplaceWithDeclarations(props, values)
		result.Directives++
	})

	return result
}

// ResolveReferences substitutes every prefixed reference in a declaration
// value. A reference is a var(--name ...) call or a bare word containing the
// prefix, looked up with any leading "--" stripped. Names absent from the
// scale are returned in missing and value is returned unchanged.
func ResolveReferences(value, prefix string, scale *Scale) (string, []string) {
	toks := lexValue(value)

	var out strings.Builder
	var missing []string
	for i := 0; i < len(toks); i++ {
		t := toks[i]

		if t.tt == css.FunctionToken && strings.EqualFold(t.data, "var(") {
			name, end := varReference(toks, i)
			if end > i && strings.Contains(name, prefix) {
				if v, ok := scale.Get(strings.TrimPrefix(name, "--")); ok {
					out.WriteString(v)
				} else {
					missing = append(missing, name)
				}
				i = end
				continue
			}
		}

		if (t.tt == css.IdentToken || t.tt == css.CustomPropertyNameToken) && strings.Contains(t.data, prefix) {
			if v, ok := scale.Get(strings.TrimPrefix(t.data, "--")); ok {
				out.WriteString(v)
				continue
			}
			missing = append(missing, t.data)
		}

		out.WriteString(t.data)
	}

	if len(missing) > 0 {
		return value, missing
	}
	return out.String(), nil
}

type valueToken struct {
	tt   css.TokenType
	data string
}

func lexValue(value string) []valueToken {
	lexer := css.NewLexer(parse.NewInputString(value))
	var toks []valueToken
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			return toks
		}
		toks = append(toks, valueToken{tt: tt, data: string(text)})
	}
}

// varReference returns the custom property named by the var( call at start
// and the index of its closing parenthesis, or end == start when the call is
// not a simple reference.
func varReference(toks []valueToken, start int) (string, int) {
	name := ""
	depth := 1
	for i := start + 1; i < len(toks); i++ {
		switch toks[i].tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				return name, i
			}
		case css.CustomPropertyNameToken, css.IdentToken:
			if name == "" && depth == 1 {
				name = toks[i].data
			}
		}
	}
	return "", start
}

// ProcessResult is the outcome of processing one stylesheet
type ProcessResult struct {
	CSS        string
	Changed    bool
	Replaced   int
	Directives int
	Issues     []Issue
}

// sheetAdapter exposes a stylesheet.Sheet through the Stylesheet interface
type sheetAdapter struct {
	sheet *stylesheet.Sheet
}

func (a sheetAdapter) WalkDecls(fn func(Declaration)) {
	a.sheet.WalkDecls(func(d *stylesheet.Decl) { fn(d) })
}

func (a sheetAdapter) WalkRuleComments(fn func(Comment)) {
	a.sheet.WalkRuleComments(func(c *stylesheet.Comment) { fn(c) })
}

// Process generates the scale for cfg and applies it to one stylesheet
func Process(src []byte, filename string, cfg ProcessConfig) (*ProcessResult, error) {
	scale, err := Generate(cfg.Config)
	if err != nil {
		return nil, err
	}
	return ProcessWithScale(src, filename, scale, cfg)
}

// ProcessWithScale applies an already generated scale to one stylesheet
func ProcessWithScale(src []byte, filename string, scale *Scale, cfg ProcessConfig) (*ProcessResult, error) {
	sheet, err := stylesheet.Parse(string(src), filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	tr := Transform(sheetAdapter{sheet: sheet}, scale, cfg)
	for i := range tr.Issues {
		tr.Issues[i].Pos.Filename = filename
		if line := sheet.SourceLine(tr.Issues[i].Pos.Line); line != "" {
			tr.Issues[i].SourceLines = []string{line}
		}
	}

	out := sheet.String()
	return &ProcessResult{
		CSS:        out,
		Changed:    out != string(src),
		Replaced:   tr.Replaced,
		Directives: tr.Directives,
		Issues:     tr.Issues,
	}, nil
}
