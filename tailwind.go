package fluidtype

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// TailwindMode selects how the scale is exposed to the utility framework
type TailwindMode string

const (
	// TailwindUtilities emits one font-size utility class per step
	TailwindUtilities TailwindMode = "utilities"
	// TailwindTheme emits theme values for theme.extend.fontSize
	TailwindTheme TailwindMode = "theme"
)

// ParseTailwindMode converts a config string into a TailwindMode
func ParseTailwindMode(s string) (TailwindMode, error) {
	switch TailwindMode(strings.ToLower(strings.TrimSpace(s))) {
	case TailwindUtilities, "":
		return TailwindUtilities, nil
	case TailwindTheme:
		return TailwindTheme, nil
	default:
		return "", &InvalidOptionError{Option: "mode", Reason: fmt.Sprintf("unknown tailwind mode %q (want utilities or theme)", s)}
	}
}

// DefaultTailwindPrefix replaces the generator prefix for utility names
const DefaultTailwindPrefix = "fluid-"

// DefaultClassPrefix is prepended to generated names to form utility classes
const DefaultClassPrefix = "text-"

// TailwindConfig configures the utility framework adapter
type TailwindConfig struct {
	Config
	ClassPrefix string       // "text-" gives .text-fluid-0
	Mode        TailwindMode // utilities | theme
	Content     []string     // Globs of content files; empty emits every utility
}

// DefaultTailwindConfig returns the adapter defaults
func DefaultTailwindConfig() TailwindConfig {
	cfg := DefaultConfig()
	cfg.Prefix = DefaultTailwindPrefix
	return TailwindConfig{
		Config:      cfg,
		ClassPrefix: DefaultClassPrefix,
		Mode:        TailwindUtilities,
	}
}

// TailwindResult holds what the adapter exposes to the framework
type TailwindResult struct {
	Scale     *Scale
	Mode      TailwindMode
	Theme     *Scale          // Theme values keyed by name (theme mode)
	Variables string          // :root block declaring the min/max variables theme values use (theme mode)
	Utilities string          // Rendered utility CSS (utilities mode)
	Used      map[string]bool // Classes found in content, nil when Content is empty
	Stats     ScanStats
}

// Tailwind generates the scale once and exposes it as theme values or utilities
func Tailwind(cfg TailwindConfig) (*TailwindResult, error) {
	scale, err := Generate(cfg.Config)
	if err != nil {
		return nil, err
	}

	mode := cfg.Mode
	if mode == "" {
		mode = TailwindUtilities
	}
	result := &TailwindResult{Scale: scale, Mode: mode}

	switch mode {
	case TailwindTheme:
		result.Theme = scale
		result.Variables = RenderVariables(scale)
	case TailwindUtilities:
		var keep func(string) bool
		if len(cfg.Content) > 0 {
			refs, stats, err := ScanContent(cfg.Content)
			if err != nil {
				return nil, fmt.Errorf("scan content: %w", err)
			}
			result.Stats = stats
			result.Used = UsedClasses(refs)
			keep = func(class string) bool { return result.Used[class] }
		}
		result.Utilities = RenderUtilities(scale, cfg.ClassPrefix, keep)
	default:
		return nil, &InvalidOptionError{Option: "mode", Reason: fmt.Sprintf("unknown tailwind mode %q", mode)}
	}

	return result, nil
}

// themeDocument mirrors the framework config shape theme.extend.fontSize.
// Base holds base styles in the framework's addBase object form.
type themeDocument struct {
	Theme struct {
		Extend struct {
			FontSize *Scale `json:"fontSize"`
		} `json:"extend"`
	} `json:"theme"`
	Base map[string]orderedEntries `json:"base,omitempty"`
}

// orderedEntries encodes as a JSON object in slice order
type orderedEntries []Entry

func (e orderedEntries) MarshalJSON() ([]byte, error) {
	return marshalEntries(e)
}

// WriteTheme writes theme values as a framework config fragment. When the
// scale has min/max variables they are declared under base[":root"], since
// the fontSize values reference them.
func WriteTheme(w io.Writer, scale *Scale) error {
	var doc themeDocument
	doc.Theme.Extend.FontSize = scale
	if vars := scale.Variables(); len(vars) > 0 {
		decls := make(orderedEntries, len(vars))
		for i, v := range vars {
			decls[i] = Entry{Name: "--" + v.Name, Value: v.Value}
		}
		doc.Base = map[string]orderedEntries{DefaultSelector: decls}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(doc)
}
