package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/fluidtype"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
	return dir
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".fluidtype.yaml")
	configContent := `
verbose: true

scale:
  min-step: 1
  max-step: 3
  min-ratio: 1.25
  unit: px
  prefix: step-

lint:
  strict: true
  paths:
    - "styles/**/*.css"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, 1, k.Int("scale.min-step"))
	assert.Equal(t, 3, k.Int("scale.max-step"))
	assert.InDelta(t, 1.25, k.Float64("scale.min-ratio"), 0.0001)
	assert.Equal(t, "px", k.String("scale.unit"))
	assert.True(t, k.Bool("lint.strict"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config — should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.fluidtype.yaml"))

	config, err := buildScaleConfig("", fluidtype.DefaultConfig().Prefix)
	require.NoError(t, err)
	assert.Equal(t, fluidtype.DefaultConfig().Prefix, config.Prefix)
	assert.Equal(t, 2, config.MinStep)
	assert.Equal(t, 5, config.MaxStep)
	assert.Equal(t, fluidtype.UnitRem, config.Unit)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".fluidtype.yaml")
	configContent := `
scale:
  min-step: 2
lint:
  strict: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	t.Setenv("FLUIDTYPE_SCALE_MIN_STEP", "4")
	t.Setenv("FLUIDTYPE_LINT_STRICT", "true")
	t.Setenv("FLUIDTYPE_LINT_MAX_ISSUES_PER_LINTER", "7")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, 4, k.Int("scale.min-step"))
	assert.True(t, k.Bool("lint.strict"))

	config, err := buildLintConfig()
	require.NoError(t, err)
	assert.Equal(t, 4, config.Process.MinStep)
	assert.Equal(t, 7, config.MaxIssuesPerLinter)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"FLUIDTYPE_SCALE_MIN_STEP":             "scale.min-step",
		"FLUIDTYPE_SCALE_MIN_MAX_VARIABLES":    "scale.min-max-variables",
		"FLUIDTYPE_LINT_MAX_ISSUES_PER_LINTER": "lint.max-issues-per-linter",
		"FLUIDTYPE_TAILWIND_CLASS_PREFIX":      "tailwind.class-prefix",
		"FLUIDTYPE_VERBOSE":                    "verbose",
	}
	for env, want := range tests {
		assert.Equal(t, want, envKey(env), env)
	}
}

func TestBuildScaleConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".fluidtype.yaml")
	configContent := `
scale:
  min-screen-width: 400
  max-screen-width: 1280
  min-font-size: 14
  max-font-size: 18
  precision: 3
  root-font-size: 10
  suffix-type: values
  suffix-prepend: [2xs]
  suffix-append: [4xl]
  min-max-variables: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	config, err := buildScaleConfig("", fluidtype.DefaultConfig().Prefix)
	require.NoError(t, err)
	assert.InDelta(t, 400, config.MinScreenWidth, 0.0001)
	assert.InDelta(t, 1280, config.MaxScreenWidth, 0.0001)
	assert.InDelta(t, 14, config.MinFontSize, 0.0001)
	assert.InDelta(t, 18, config.MaxFontSize, 0.0001)
	assert.Equal(t, 3, config.Precision)
	assert.InDelta(t, 10, config.RootFontSize, 0.0001)
	assert.Equal(t, fluidtype.SuffixValues, config.SuffixType)
	assert.True(t, config.InsertMinMaxFontAsVariables)

	want := append([]string{"2xs"}, fluidtype.DefaultSuffixValues()...)
	want = append(want, "4xl")
	assert.Equal(t, want, config.SuffixValues.Resolve(fluidtype.DefaultSuffixValues()))
}

func TestBuildScaleConfig_InvalidUnit(t *testing.T) {
	resetKoanf()
	t.Setenv("FLUIDTYPE_SCALE_UNIT", "em")
	require.NoError(t, loadConfigFromPath("/nonexistent/.fluidtype.yaml"))

	_, err := buildScaleConfig("", fluidtype.DefaultConfig().Prefix)
	require.Error(t, err)
	assert.ErrorIs(t, err, fluidtype.ErrConfig)
}

func TestBuildScaleConfig_SectionPrefix(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".fluidtype.yaml")
	configContent := `
scale:
  prefix: size-
tailwind:
  prefix: fl-
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	tw, err := buildTailwindConfig()
	require.NoError(t, err)
	assert.Equal(t, "fl-", tw.Prefix)

	process, err := buildProcessConfig()
	require.NoError(t, err)
	assert.Equal(t, "size-", process.Prefix)
}

func TestBuildTailwindConfig_Defaults(t *testing.T) {
	resetKoanf()

	config, err := buildTailwindConfig()
	require.NoError(t, err)
	assert.Equal(t, fluidtype.DefaultTailwindPrefix, config.Prefix)
	assert.Equal(t, fluidtype.DefaultClassPrefix, config.ClassPrefix)
	assert.Equal(t, fluidtype.TailwindUtilities, config.Mode)
	assert.Empty(t, config.Content)
}

func TestBuildLintConfig_Defaults(t *testing.T) {
	resetKoanf()

	config, err := buildLintConfig()
	require.NoError(t, err)
	assert.False(t, config.Strict)
	assert.Equal(t, 0, config.MaxIssuesPerLinter)
	assert.True(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
	assert.Equal(t, []string{"**/*.css"}, config.CSSPaths)
	assert.Equal(t, fluidtype.DefaultGeneratorDirective, config.Process.GeneratorDirective)
}

func TestBuildFilesConfig(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".fluidtype.yaml")
	configContent := `
process:
  include:
    - "web/**/*.css"
  out-dir: dist
  replace-inline: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	config, err := buildFilesConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"web/**/*.css"}, config.Include)
	assert.Equal(t, "dist", config.OutDir)
	assert.True(t, config.Process.ReplaceInline)

	// Positional globs win over the config file
	config, err = buildFilesConfig([]string{"a.css"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.css"}, config.Include)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	chdirTemp(t)

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".fluidtype.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "scale:")
	assert.Contains(t, string(data), "tailwind:")
	assert.Contains(t, string(data), "lint:")

	// The written file loads back into the defaults
	resetKoanf()
	require.NoError(t, loadConfigFromPath(".fluidtype.yaml"))
	config, err := buildScaleConfig("", fluidtype.DefaultConfig().Prefix)
	require.NoError(t, err)
	assert.Equal(t, fluidtype.DefaultConfig().MinStep, config.MinStep)
	assert.Equal(t, fluidtype.DefaultConfig().Prefix, config.Prefix)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, os.WriteFile(".fluidtype.yaml", []byte("existing"), 0o644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, os.WriteFile(".fluidtype.yaml", []byte("existing"), 0o644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".fluidtype.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "min-screen-width: 320")
}

func TestGenerateCommand_WritesJSON(t *testing.T) {
	chdirTemp(t)
	resetKoanf()

	cmd := rootCmd
	cmd.SetArgs([]string{"generate", "--format", "json", "--min-step", "0", "--max-step", "1", "--output", "scale.json"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile("scale.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"font-size-0": "clamp(1.00rem, 0.33vw + 0.93rem, 1.25rem)",
		"font-size-1": "clamp(1.20rem, 0.61vw + 1.08rem, 1.67rem)"
	}`, string(data))
}

func TestProcessCommand_OutDir(t *testing.T) {
	dir := chdirTemp(t)
	resetKoanf()

	require.NoError(t, os.MkdirAll("styles", 0o750))
	src := ":root {\n  /* postcss-modular-type-generate */\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join("styles", "type.css"), []byte(src), 0o644))

	cmd := rootCmd
	cmd.SetArgs([]string{"process", "--quiet", "--out-dir", "dist", "--min-step", "0", "--max-step", "0", "styles/*.css"})
	require.NoError(t, cmd.Execute())

	out, err := os.ReadFile(filepath.Join(dir, "dist", "styles", "type.css"))
	require.NoError(t, err)
	assert.Equal(t, ":root {\n  --font-size-0: clamp(1.00rem, 0.33vw + 0.93rem, 1.25rem);\n}\n", string(out))

	// The input is untouched
	in, err := os.ReadFile(filepath.Join("styles", "type.css"))
	require.NoError(t, err)
	assert.Equal(t, src, string(in))
}

func TestTailwindCommand_ThemeWithVariables(t *testing.T) {
	chdirTemp(t)
	resetKoanf()

	cmd := rootCmd
	cmd.SetArgs([]string{"tailwind", "--mode", "theme", "--min-step", "0", "--max-step", "0",
		"--min-max-variables", "--output", "theme.json"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile("theme.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"theme": {"extend": {"fontSize": {
			"fluid-min-0": "1.00rem",
			"fluid-max-0": "1.25rem",
			"fluid-0": "clamp(var(--fluid-min-0), 0.33vw + 0.93rem, var(--fluid-max-0))"
		}}},
		"base": {":root": {"--fluid-min-0": "1.00rem", "--fluid-max-0": "1.25rem"}}
	}`, string(data))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })

	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "fluidtype "+resolveVersion()+"\n", out.String())
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetStringsWithFallback(t *testing.T) {
	resetKoanf()
	t.Setenv("FLUIDTYPE_TAILWIND_CONTENT", "a.html, b.html")
	require.NoError(t, loadConfigFromPath("/nonexistent/.fluidtype.yaml"))

	assert.Equal(t, []string{"a.html", "b.html"}, getStringsWithFallback("content", "tailwind.content"))
	assert.Nil(t, getStringsWithFallback("flag-key", "config.key"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
}

func TestGetFloat64WithFallback(t *testing.T) {
	resetKoanf()

	assert.InDelta(t, 3.14, getFloat64WithFallback("flag-key", "config.key", 3.14), 0.01)
}
