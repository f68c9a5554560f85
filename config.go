package fluidtype

import (
	"fmt"
	"math"
	"strings"
)

// Unit is the CSS length unit of generated values
type Unit string

const (
	// UnitPx emits absolute pixel values
	UnitPx Unit = "px"
	// UnitRem emits values relative to the root font size
	UnitRem Unit = "rem"
)

// ParseUnit converts a config string into a Unit
func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(s))) {
	case UnitPx:
		return UnitPx, nil
	case UnitRem, "":
		return UnitRem, nil
	default:
		return "", &InvalidOptionError{Option: "unit", Reason: fmt.Sprintf("unknown unit %q (want px or rem)", s)}
	}
}

// SuffixType selects how step names are suffixed
type SuffixType string

const (
	// SuffixNumbered names steps by their ratio exponent: font-size--1, font-size-0, font-size-2
	SuffixNumbered SuffixType = "numbered"
	// SuffixValues names steps from the suffix list: font-size-sm, font-size-base
	SuffixValues SuffixType = "values"
)

// ParseSuffixType converts a config string into a SuffixType
func ParseSuffixType(s string) (SuffixType, error) {
	switch SuffixType(strings.ToLower(strings.TrimSpace(s))) {
	case SuffixNumbered, "":
		return SuffixNumbered, nil
	case SuffixValues:
		return SuffixValues, nil
	default:
		return "", &InvalidOptionError{Option: "suffix-type", Reason: fmt.Sprintf("unknown suffix type %q (want numbered or values)", s)}
	}
}

var defaultSuffixValues = []string{"xs", "sm", "base", "md", "lg", "xl", "xxl", "xxxl"}

// DefaultSuffixValues returns a fresh copy of the built-in suffix list
func DefaultSuffixValues() []string {
	out := make([]string, len(defaultSuffixValues))
	copy(out, defaultSuffixValues)
	return out
}

// Suffixes holds either a literal suffix list or a transform applied to the
// default list. The zero value resolves to the defaults.
type Suffixes struct {
	list      []string
	transform func(defaults []string) []string
}

// SuffixList returns Suffixes backed by a literal list
func SuffixList(values ...string) Suffixes {
	list := make([]string, len(values))
	copy(list, values)
	return Suffixes{list: list}
}

// SuffixTransform returns Suffixes computed from the default list
func SuffixTransform(fn func(defaults []string) []string) Suffixes {
	return Suffixes{transform: fn}
}

// SuffixExtend surrounds the default list with extra suffixes, e.g.
// prepend ["2xs"] and append ["4xl"] for a wider scale.
func SuffixExtend(prepend, extra []string) Suffixes {
	before := append([]string(nil), prepend...)
	after := append([]string(nil), extra...)
	return SuffixTransform(func(defaults []string) []string {
		out := make([]string, 0, len(before)+len(defaults)+len(after))
		out = append(out, before...)
		out = append(out, defaults...)
		return append(out, after...)
	})
}

// IsTransform reports whether the suffixes are derived from the defaults
func (s Suffixes) IsTransform() bool {
	return s.transform != nil
}

// Resolve returns the concrete suffix list
func (s Suffixes) Resolve(defaults []string) []string {
	if s.transform != nil {
		return s.transform(append([]string(nil), defaults...))
	}
	if s.list == nil {
		return append([]string(nil), defaults...)
	}
	return append([]string(nil), s.list...)
}

// Config holds the scale generator configuration. Lengths are in pixels.
type Config struct {
	MinScreenWidth float64 // Viewport width where the minimum sizes apply
	MaxScreenWidth float64 // Viewport width where the maximum sizes apply
	MinFontSize    float64 // Base step size at MinScreenWidth
	MaxFontSize    float64 // Base step size at MaxScreenWidth
	MinRatio       float64 // Scale ratio at MinScreenWidth (1.2 = minor third)
	MaxRatio       float64 // Scale ratio at MaxScreenWidth (1.333 = perfect fourth)
	MinStep        int     // Steps below the base
	MaxStep        int     // Steps above the base
	Precision      int     // Decimal digits in output
	Prefix         string  // "font-size-"
	RootFontSize   float64 // Used to convert px to rem

	SuffixType   SuffixType
	SuffixValues Suffixes
	Unit         Unit

	InsertMinMaxFontAsVariables bool // Emit min/max sizes as separate variables
}

// DefaultConfig returns the default generator configuration
func DefaultConfig() Config {
	return Config{
		MinScreenWidth: 320,
		MaxScreenWidth: 1536,
		MinFontSize:    16,
		MaxFontSize:    20,
		MinRatio:       1.2,
		MaxRatio:       1.333,
		MinStep:        2,
		MaxStep:        5,
		Precision:      2,
		Prefix:         "font-size-",
		RootFontSize:   16,
		SuffixType:     SuffixNumbered,
		SuffixValues:   SuffixList(DefaultSuffixValues()...),
		Unit:           UnitRem,
	}
}

// TotalSteps is the number of steps the config produces, including the base
func (c Config) TotalSteps() int {
	return c.MinStep + c.MaxStep + 1
}

// validate checks the config and returns the resolved suffix list.
// The step and suffix checks run first and in a fixed order.
func (c Config) validate() ([]string, error) {
	if c.MinStep < 0 || c.MaxStep < 0 {
		return nil, &NegativeStepError{MinStep: c.MinStep, MaxStep: c.MaxStep}
	}

	suffixes := c.SuffixValues.Resolve(DefaultSuffixValues())

	if c.SuffixType == SuffixValues && len(suffixes) <= c.MinStep+c.MaxStep {
		return nil, &InsufficientSuffixesError{
			MinStep:  c.MinStep,
			MaxStep:  c.MaxStep,
			Suffixes: suffixes,
		}
	}

	switch c.SuffixType {
	case SuffixNumbered, SuffixValues:
	default:
		return nil, &InvalidOptionError{Option: "suffix-type", Reason: fmt.Sprintf("unknown suffix type %q", c.SuffixType)}
	}

	for _, f := range []struct {
		option string
		value  float64
	}{
		{"min-screen-width", c.MinScreenWidth},
		{"max-screen-width", c.MaxScreenWidth},
		{"min-font-size", c.MinFontSize},
		{"max-font-size", c.MaxFontSize},
		{"min-ratio", c.MinRatio},
		{"max-ratio", c.MaxRatio},
	} {
		if !isFinite(f.value) {
			return nil, &InvalidOptionError{Option: f.option, Reason: fmt.Sprintf("must be a finite number, got %g", f.value)}
		}
	}

	switch c.Unit {
	case UnitPx:
	case UnitRem:
		if !isFinite(c.RootFontSize) || c.RootFontSize <= 0 {
			return nil, &InvalidOptionError{Option: "root-font-size", Reason: "must be positive for rem output"}
		}
	default:
		return nil, &InvalidOptionError{Option: "unit", Reason: fmt.Sprintf("unknown unit %q", c.Unit)}
	}

	if c.Precision < 0 || c.Precision > maxPrecision {
		return nil, &InvalidOptionError{Option: "precision", Reason: fmt.Sprintf("must be between 0 and %d, got %d", maxPrecision, c.Precision)}
	}
	if c.MinScreenWidth >= c.MaxScreenWidth {
		return nil, &InvalidOptionError{
			Option: "min-screen-width",
			Reason: fmt.Sprintf("must be below max-screen-width (%g >= %g)", c.MinScreenWidth, c.MaxScreenWidth),
		}
	}
	if c.MinRatio <= 0 || c.MaxRatio <= 0 {
		return nil, &InvalidOptionError{Option: "ratio", Reason: "min-ratio and max-ratio must be positive"}
	}

	return suffixes, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
