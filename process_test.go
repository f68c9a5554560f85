package fluidtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	base0 = "clamp(1.00rem, 0.33vw + 0.93rem, 1.25rem)"
	base1 = "clamp(1.20rem, 0.61vw + 1.08rem, 1.67rem)"
)

func smallProcessConfig() ProcessConfig {
	cfg := DefaultProcessConfig()
	cfg.MinStep = 0
	cfg.MaxStep = 1
	return cfg
}

func TestProcessExpandsDirective(t *testing.T) {
	src := ":root {\n  color: black;\n  /* postcss-modular-type-generate */\n}\n"

	res, err := Process([]byte(src), "type.css", smallProcessConfig())
	require.NoError(t, err)

	assert.Equal(t, ":root {\n  color: black;\n"+
		"  --font-size-0: "+base0+";\n"+
		"  --font-size-1: "+base1+";\n}\n", res.CSS)
	assert.True(t, res.Changed)
	assert.Equal(t, 1, res.Directives)
	assert.Zero(t, res.Replaced)
	assert.Empty(t, res.Issues)
}

func TestProcessDirectiveOutsideRuleIsInert(t *testing.T) {
	src := "/* postcss-modular-type-generate */\n.a { color: red; }\n"

	res, err := Process([]byte(src), "type.css", smallProcessConfig())
	require.NoError(t, err)
	assert.Equal(t, src, res.CSS)
	assert.False(t, res.Changed)
	assert.Zero(t, res.Directives)
}

func TestProcessCustomDirective(t *testing.T) {
	cfg := smallProcessConfig()
	cfg.GeneratorDirective = "fluid-type"

	src := ".scope {\n  /* fluid-type */\n  /* postcss-modular-type-generate */\n}"
	res, err := Process([]byte(src), "type.css", cfg)
	require.NoError(t, err)

	assert.Equal(t, ".scope {\n"+
		"  --font-size-0: "+base0+";\n"+
		"  --font-size-1: "+base1+";\n"+
		"  /* postcss-modular-type-generate */\n}", res.CSS)
}

func TestProcessEmptyDirectiveUsesDefault(t *testing.T) {
	cfg := smallProcessConfig()
	cfg.GeneratorDirective = ""

	src := ".a {\n  /**/\n  /* postcss-modular-type-generate */\n}\n"
	res, err := Process([]byte(src), "type.css", cfg)
	require.NoError(t, err)

	// Empty comments are never treated as directives
	assert.Equal(t, ".a {\n  /**/\n"+
		"  --font-size-0: "+base0+";\n"+
		"  --font-size-1: "+base1+";\n}\n", res.CSS)
	assert.Equal(t, 1, res.Directives)
}

func TestTransformZeroConfigSkipsEmptyComments(t *testing.T) {
	scale, err := Generate(smallProcessConfig().Config)
	require.NoError(t, err)

	empty := &fakeComment{text: ""}
	sheet := &fakeSheet{comments: []*fakeComment{empty}}

	res := Transform(sheet, scale, ProcessConfig{Config: smallProcessConfig().Config})
	assert.Zero(t, res.Directives)
	assert.Nil(t, empty.props)
}

func TestProcessNestedRule(t *testing.T) {
	src := "@media (min-width: 40em) {\n  .card {\n    /* postcss-modular-type-generate */\n  }\n}\n"

	res, err := Process([]byte(src), "type.css", smallProcessConfig())
	require.NoError(t, err)
	assert.Equal(t, "@media (min-width: 40em) {\n  .card {\n"+
		"    --font-size-0: "+base0+";\n"+
		"    --font-size-1: "+base1+";\n  }\n}\n", res.CSS)
}

func TestProcessReplaceInline(t *testing.T) {
	cfg := smallProcessConfig()
	cfg.ReplaceInline = true

	src := "h1 {\n  font-size: var(--font-size-1);\n}\n" +
		"p {\n  font-size: font-size-0;\n  margin: 0;\n}\n" +
		"/* postcss-modular-type-generate */\n"

	res, err := Process([]byte(src), "type.css", cfg)
	require.NoError(t, err)

	assert.Equal(t, "h1 {\n  font-size: "+base1+";\n}\n"+
		"p {\n  font-size: "+base0+";\n  margin: 0;\n}\n"+
		"/* postcss-modular-type-generate */\n", res.CSS)
	assert.Equal(t, 2, res.Replaced)
	assert.Zero(t, res.Directives)
	assert.Empty(t, res.Issues)
}

func TestProcessReplaceInlineSkipsDirectives(t *testing.T) {
	cfg := smallProcessConfig()
	cfg.ReplaceInline = true

	src := ":root {\n  /* postcss-modular-type-generate */\n}\n"
	res, err := Process([]byte(src), "type.css", cfg)
	require.NoError(t, err)
	assert.Equal(t, src, res.CSS)
	assert.Zero(t, res.Directives)
}

func TestProcessReplaceInlineUnknownStep(t *testing.T) {
	cfg := smallProcessConfig()
	cfg.ReplaceInline = true

	src := ".hero {\n  font-size: var(--font-size-9);\n}\n.lead {\n  font-size: var(--font-size-1);\n}\n"
	res, err := Process([]byte(src), "web/type.css", cfg)
	require.NoError(t, err)

	// The unknown reference is left alone and processing continues
	assert.Equal(t, ".hero {\n  font-size: var(--font-size-9);\n}\n.lead {\n  font-size: "+base1+";\n}\n", res.CSS)
	assert.Equal(t, 1, res.Replaced)

	require.Len(t, res.Issues, 1)
	issue := res.Issues[0]
	assert.Equal(t, LinterVars, issue.FromLinter)
	assert.Equal(t, SeverityWarning, issue.Severity)
	assert.Equal(t, IssuePos{Filename: "web/type.css", Line: 2, Column: 3}, issue.Pos)
	assert.Equal(t, []string{"  font-size: var(--font-size-9);"}, issue.SourceLines)
	assert.Equal(t,
		"step --font-size-9 not in generated scale (out of bounds?), not replacing font-size: var(--font-size-9)",
		issue.Text)
}

func TestProcessUnchangedInput(t *testing.T) {
	src := "/* plain */\nbody { margin: 0 }\n@import url(\"a.css\");\n"
	res, err := Process([]byte(src), "plain.css", DefaultProcessConfig())
	require.NoError(t, err)
	assert.Equal(t, src, res.CSS)
	assert.False(t, res.Changed)
}

func TestProcessInvalidConfig(t *testing.T) {
	cfg := DefaultProcessConfig()
	cfg.MaxStep = -1

	_, err := Process([]byte(":root {}"), "type.css", cfg)
	var negErr *NegativeStepError
	require.ErrorAs(t, err, &negErr)
}

func TestResolveReferences(t *testing.T) {
	scale, err := Generate(smallProcessConfig().Config)
	require.NoError(t, err)

	tests := []struct {
		name    string
		value   string
		want    string
		missing []string
	}{
		{"var call", "var(--font-size-0)", base0, nil},
		{"var with fallback", "var(--font-size-1, 2rem)", base1, nil},
		{"inside calc", "calc(var(--font-size-1) * 2)", "calc(" + base1 + " * 2)", nil},
		{"bare word", "font-size-0", base0, nil},
		{"bare custom property", "--font-size-1", base1, nil},
		{"two references", "var(--font-size-0) var(--font-size-1)", base0 + " " + base1, nil},
		{"unrelated var", "var(--brand)", "var(--brand)", nil},
		{"no reference", "1.5rem", "1.5rem", nil},
		{"important", "var(--font-size-0) !important", base0 + " !important", nil},
		{"unknown", "var(--font-size-7)", "var(--font-size-7)", []string{"--font-size-7"}},
		{
			"one unknown keeps value",
			"var(--font-size-0) font-size-8",
			"var(--font-size-0) font-size-8",
			[]string{"font-size-8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := ResolveReferences(tt.value, "font-size-", scale)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.missing, missing)
		})
	}
}

// fakeDecl and fakeComment stand in for a host post-processor's nodes
type fakeDecl struct {
	prop, value string
	line, col   int
}

func (d *fakeDecl) Prop() string              { return d.prop }
func (d *fakeDecl) Value() string             { return d.value }
func (d *fakeDecl) SetValue(v string)         { d.value = v }
func (d *fakeDecl) Position() (line, col int) { return d.line, d.col }

type fakeComment struct {
	text          string
	props, values []string
}

func (c *fakeComment) Text() string { return c.text }
func (c *fakeComment) ReplaceWithDeclarations(props, values []string) {
	c.props, c.values = props, values
}

type fakeSheet struct {
	decls    []*fakeDecl
	comments []*fakeComment
}

func (s *fakeSheet) WalkDecls(fn func(Declaration)) {
	for _, d := range s.decls {
		fn(d)
	}
}

func (s *fakeSheet) WalkRuleComments(fn func(Comment)) {
	for _, c := range s.comments {
		fn(c)
	}
}

func TestTransformHostTree(t *testing.T) {
	cfg := smallProcessConfig()
	cfg.InsertMinMaxFontAsVariables = true
	scale, err := Generate(cfg.Config)
	require.NoError(t, err)

	directive := &fakeComment{text: DefaultGeneratorDirective}
	other := &fakeComment{text: "todo"}
	sheet := &fakeSheet{comments: []*fakeComment{other, directive}}

	res := Transform(sheet, scale, cfg)
	assert.Equal(t, 1, res.Directives)
	assert.Nil(t, other.props)
	assert.Equal(t, []string{
		"--font-size-min-0", "--font-size-max-0", "--font-size-0",
		"--font-size-min-1", "--font-size-max-1", "--font-size-1",
	}, directive.props)
	assert.Equal(t, "1.00rem", directive.values[0])
}

func TestTransformHostTreeInline(t *testing.T) {
	cfg := smallProcessConfig()
	cfg.ReplaceInline = true
	scale, err := Generate(cfg.Config)
	require.NoError(t, err)

	good := &fakeDecl{prop: "font-size", value: "var(--font-size-0)", line: 3, col: 5}
	bad := &fakeDecl{prop: "font-size", value: "font-size-4", line: 8, col: 5}
	sheet := &fakeSheet{decls: []*fakeDecl{good, bad}}

	res := Transform(sheet, scale, cfg)
	assert.Equal(t, base0, good.value)
	assert.Equal(t, "font-size-4", bad.value)
	assert.Equal(t, 1, res.Replaced)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, IssuePos{Line: 8, Column: 5}, res.Issues[0].Pos)
}
