package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/fluidtype"
)

const defaultConfigPath = ".fluidtype.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence). A nil koanf instance makes the
	// provider skip every flag the user did not set, so flag defaults never
	// shadow file or env values under the fallback keys.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", nil), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	configureLogging()
	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (FLUIDTYPE_* prefix)
	if err := k.Load(env.Provider("FLUIDTYPE_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key:
//
//	FLUIDTYPE_SCALE_MIN_STEP -> scale.min-step
//	FLUIDTYPE_LINT_STRICT    -> lint.strict
//	FLUIDTYPE_VERBOSE        -> verbose
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "FLUIDTYPE_"))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return section + "." + strings.ReplaceAll(rest, "_", "-")
}

// addScaleFlags registers the generator options on a command
func addScaleFlags(f *pflag.FlagSet, prefix string) {
	d := fluidtype.DefaultConfig()
	f.Float64("min-screen-width", d.MinScreenWidth, "Viewport width (px) where the minimum size applies")
	f.Float64("max-screen-width", d.MaxScreenWidth, "Viewport width (px) where the maximum size applies")
	f.Float64("min-font-size", d.MinFontSize, "Base font size (px) at the minimum width")
	f.Float64("max-font-size", d.MaxFontSize, "Base font size (px) at the maximum width")
	f.Float64("min-ratio", d.MinRatio, "Scale ratio at the minimum width")
	f.Float64("max-ratio", d.MaxRatio, "Scale ratio at the maximum width")
	f.Int("min-step", d.MinStep, "Steps below the base step")
	f.Int("max-step", d.MaxStep, "Steps above the base step")
	f.Int("precision", d.Precision, "Decimal places in generated values")
	f.String("prefix", prefix, "Name prefix for generated names")
	f.Float64("root-font-size", d.RootFontSize, "Root font size (px) used for rem conversion")
	f.String("suffix-type", string(d.SuffixType), "Step naming: numbered|values")
	f.StringSlice("suffix-values", nil, "Step names for --suffix-type values (replaces the defaults)")
	f.StringSlice("suffix-prepend", nil, "Step names placed before the default names")
	f.StringSlice("suffix-append", nil, "Step names placed after the default names")
	f.String("unit", string(d.Unit), "Output unit: rem|px")
	f.Bool("min-max-variables", d.InsertMinMaxFontAsVariables, "Emit min and max sizes as separate variables")
}

// buildScaleConfig constructs the generator Config from koanf state.
// prefixSection names the section whose prefix key wins over scale.prefix.
func buildScaleConfig(prefixSection, defaultPrefix string) (fluidtype.Config, error) {
	d := fluidtype.DefaultConfig()

	suffixType, err := fluidtype.ParseSuffixType(getStringWithFallback("suffix-type", "scale.suffix-type", string(d.SuffixType)))
	if err != nil {
		return fluidtype.Config{}, err
	}
	unit, err := fluidtype.ParseUnit(getStringWithFallback("unit", "scale.unit", string(d.Unit)))
	if err != nil {
		return fluidtype.Config{}, err
	}

	prefix := defaultPrefix
	switch {
	case k.Exists("prefix"):
		prefix = k.String("prefix")
	case prefixSection != "" && k.Exists(prefixSection+".prefix"):
		prefix = k.String(prefixSection + ".prefix")
	case k.Exists("scale.prefix"):
		prefix = k.String("scale.prefix")
	}

	config := fluidtype.Config{
		MinScreenWidth:              getFloat64WithFallback("min-screen-width", "scale.min-screen-width", d.MinScreenWidth),
		MaxScreenWidth:              getFloat64WithFallback("max-screen-width", "scale.max-screen-width", d.MaxScreenWidth),
		MinFontSize:                 getFloat64WithFallback("min-font-size", "scale.min-font-size", d.MinFontSize),
		MaxFontSize:                 getFloat64WithFallback("max-font-size", "scale.max-font-size", d.MaxFontSize),
		MinRatio:                    getFloat64WithFallback("min-ratio", "scale.min-ratio", d.MinRatio),
		MaxRatio:                    getFloat64WithFallback("max-ratio", "scale.max-ratio", d.MaxRatio),
		MinStep:                     getIntWithFallback("min-step", "scale.min-step", d.MinStep),
		MaxStep:                     getIntWithFallback("max-step", "scale.max-step", d.MaxStep),
		Precision:                   getIntWithFallback("precision", "scale.precision", d.Precision),
		Prefix:                      prefix,
		RootFontSize:                getFloat64WithFallback("root-font-size", "scale.root-font-size", d.RootFontSize),
		SuffixType:                  suffixType,
		Unit:                        unit,
		InsertMinMaxFontAsVariables: getBoolWithFallback("min-max-variables", "scale.min-max-variables", d.InsertMinMaxFontAsVariables),
	}

	values := getStringsWithFallback("suffix-values", "scale.suffix-values")
	prepend := getStringsWithFallback("suffix-prepend", "scale.suffix-prepend")
	extra := getStringsWithFallback("suffix-append", "scale.suffix-append")
	switch {
	case len(values) > 0:
		config.SuffixValues = fluidtype.SuffixList(values...)
	case len(prepend) > 0 || len(extra) > 0:
		config.SuffixValues = fluidtype.SuffixExtend(prepend, extra)
	}

	return config, nil
}

// buildProcessConfig constructs the stylesheet adapter config from koanf state.
func buildProcessConfig() (fluidtype.ProcessConfig, error) {
	config, err := buildScaleConfig("process", fluidtype.DefaultConfig().Prefix)
	if err != nil {
		return fluidtype.ProcessConfig{}, err
	}
	return fluidtype.ProcessConfig{
		Config:             config,
		ReplaceInline:      getBoolWithFallback("replace-inline", "process.replace-inline", false),
		GeneratorDirective: getStringWithFallback("directive", "process.directive", fluidtype.DefaultGeneratorDirective),
	}, nil
}

// buildFilesConfig constructs the file processing config from koanf state.
func buildFilesConfig(args []string) (fluidtype.FilesConfig, error) {
	process, err := buildProcessConfig()
	if err != nil {
		return fluidtype.FilesConfig{}, err
	}

	include := args
	if len(include) == 0 {
		include = getStringsWithFallback("include", "process.include")
	}
	if len(include) == 0 {
		include = []string{"**/*.css"}
	}

	return fluidtype.FilesConfig{
		Process:     process,
		Include:     include,
		OutDir:      getStringWithFallback("out-dir", "process.out-dir", ""),
		BaseDir:     getStringWithFallback("base-dir", "process.base-dir", "."),
		DryRun:      getBoolWithFallback("dry-run", "process.dry-run", false),
		Concurrency: getIntWithFallback("concurrency", "process.concurrency", 0),
	}, nil
}

// buildTailwindConfig constructs the utility framework adapter config from koanf state.
func buildTailwindConfig() (fluidtype.TailwindConfig, error) {
	config, err := buildScaleConfig("tailwind", fluidtype.DefaultTailwindPrefix)
	if err != nil {
		return fluidtype.TailwindConfig{}, err
	}
	mode, err := fluidtype.ParseTailwindMode(getStringWithFallback("mode", "tailwind.mode", string(fluidtype.TailwindUtilities)))
	if err != nil {
		return fluidtype.TailwindConfig{}, err
	}
	return fluidtype.TailwindConfig{
		Config:      config,
		ClassPrefix: getStringWithFallback("class-prefix", "tailwind.class-prefix", fluidtype.DefaultClassPrefix),
		Mode:        mode,
		Content:     getStringsWithFallback("content", "tailwind.content"),
	}, nil
}

// buildLintConfig constructs the library's LintConfig struct from koanf state.
func buildLintConfig() (fluidtype.LintConfig, error) {
	process, err := buildProcessConfig()
	if err != nil {
		return fluidtype.LintConfig{}, err
	}

	cssPaths := getStringsWithFallback("paths", "lint.paths")
	if len(cssPaths) == 0 {
		cssPaths = getStringsWithFallback("include", "process.include")
	}
	if len(cssPaths) == 0 {
		cssPaths = []string{"**/*.css"}
	}

	return fluidtype.LintConfig{
		Process:            process,
		CSSPaths:           cssPaths,
		Content:            getStringsWithFallback("content", "tailwind.content"),
		ClassPrefix:        getStringWithFallback("class-prefix", "tailwind.class-prefix", ""),
		NamePrefix:         getStringWithFallback("utility-prefix", "tailwind.prefix", fluidtype.DefaultTailwindPrefix),
		Verbose:            getBoolWithFallback("verbose", "verbose", false),
		Strict:             getBoolWithFallback("strict", "lint.strict", false),
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "lint.max-issues-per-linter", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "lint.max-same-issues", 0),
		PrintIssuedLines:   getBoolWithFallback("print-lines", "lint.print-lines", true),
		PrintLinterName:    getBoolWithFallback("print-linter-name", "lint.print-linter-name", true),
		UseColors:          getBoolWithFallback("color", "color", false),
	}, nil
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key.
// Env values arrive as one string and are split on commas.
func getStringsWithFallback(flagKey, configKey string) []string {
	for _, key := range []string{flagKey, configKey} {
		if !k.Exists(key) {
			continue
		}
		values := k.Strings(key)
		if len(values) == 0 {
			if s := k.String(key); s != "" {
				values = strings.Split(s, ",")
			}
		}
		if len(values) == 1 && strings.Contains(values[0], ",") {
			values = strings.Split(values[0], ",")
		}
		var out []string
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getFloat64WithFallback checks the flag key first, then the config file key, then returns the default.
func getFloat64WithFallback(flagKey, configKey string, defaultVal float64) float64 {
	if k.Exists(flagKey) {
		return k.Float64(flagKey)
	}
	if k.Exists(configKey) {
		return k.Float64(configKey)
	}
	return defaultVal
}
