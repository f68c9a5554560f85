package fluidtype

import (
	"strings"

	"github.com/aymerick/douceur/css"
)

// DefaultSelector is the rule custom properties are declared on
const DefaultSelector = ":root"

// RenderCustomProperties renders the scale as custom property declarations
// on a single rule, e.g. ":root { --font-size-0: clamp(...); }".
func RenderCustomProperties(scale *Scale, selector string) string {
	if selector == "" {
		selector = DefaultSelector
	}
	rule := newRule(selector)
	scale.Each(func(name, value string) {
		rule.Declarations = append(rule.Declarations, &css.Declaration{Property: "--" + name, Value: value})
	})
	return rule.String() + "\n"
}

// RenderVariables renders the min/max helper variables on :root. It returns
// an empty string when the scale has none.
func RenderVariables(scale *Scale) string {
	vars := variablesRule(scale, nil)
	if vars == nil {
		return ""
	}
	return vars.String() + "\n"
}

// RenderUtilities renders one font-size utility class per step. Min/max
// helper variables, when enabled, are declared on :root first. keep filters
// the utilities by class name; nil keeps them all.
func RenderUtilities(scale *Scale, classPrefix string, keep func(class string) bool) string {
	var rules []*css.Rule

	var keepStep func(Step) bool
	if keep != nil {
		keepStep = func(step Step) bool { return keep(classPrefix + step.Name) }
	}
	if vars := variablesRule(scale, keepStep); vars != nil {
		rules = append(rules, vars)
	}

	for _, step := range scale.Steps() {
		class := classPrefix + step.Name
		if keep != nil && !keep(class) {
			continue
		}
		rule := newRule("." + class)
		rule.Declarations = append(rule.Declarations, &css.Declaration{Property: "font-size", Value: step.Value})
		rules = append(rules, rule)
	}

	if len(rules) == 0 {
		return ""
	}

	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = r.String()
	}
	return strings.Join(parts, "\n") + "\n"
}

// variablesRule declares the min/max variables of the kept steps, nil when
// there are none
func variablesRule(scale *Scale, keep func(Step) bool) *css.Rule {
	vars := newRule(DefaultSelector)
	for _, step := range scale.Steps() {
		if step.MinName == "" || (keep != nil && !keep(step)) {
			continue
		}
		minValue, _ := scale.Get(step.MinName)
		maxValue, _ := scale.Get(step.MaxName)
		vars.Declarations = append(vars.Declarations,
			&css.Declaration{Property: "--" + step.MinName, Value: minValue},
			&css.Declaration{Property: "--" + step.MaxName, Value: maxValue},
		)
	}
	if len(vars.Declarations) == 0 {
		return nil
	}
	return vars
}

func newRule(selector string) *css.Rule {
	rule := css.NewRule(css.QualifiedRule)
	rule.Prelude = selector
	rule.Selectors = []string{selector}
	return rule
}
