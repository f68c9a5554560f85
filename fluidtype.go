// Package fluidtype generates fluid modular type scales as CSS clamp() values.
//
// A scale interpolates each step's font size linearly between a minimum and a
// maximum viewport width, so text grows with the screen without breakpoints.
//
// # Generation
//
// Build the ordered name to value mapping:
//
//	cfg := fluidtype.DefaultConfig()
//	cfg.MinStep, cfg.MaxStep = 1, 4
//	scale, err := fluidtype.Generate(cfg)
//	scale.Each(func(name, value string) {
//		fmt.Printf("--%s: %s;\n", name, value)
//	})
//
// # Stylesheet processing
//
// Expand generator directive comments and resolve inline references in CSS:
//
//	res, err := fluidtype.Process(src, "type.css", fluidtype.DefaultProcessConfig())
//
// Host tools with their own CSS tree can call Transform with any value
// implementing Stylesheet.
//
// # Utility frameworks
//
// Expose the scale as theme values or as .text-* utility classes, optionally
// limited to classes found in content files:
//
//	res, err := fluidtype.Tailwind(fluidtype.DefaultTailwindConfig())
//
// # Linting
//
// Report references to steps the scale does not generate:
//
//	result, err := fluidtype.Lint(fluidtype.LintConfig{
//		Process:  fluidtype.DefaultProcessConfig(),
//		CSSPaths: []string{"web/**/*.css"},
//	})
//
// # CLI Tool
//
// Install with:
//
//	go install github.com/yacobolo/fluidtype/cmd/fluidtype@latest
package fluidtype
