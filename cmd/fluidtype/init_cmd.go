package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .fluidtype.yaml config file",
	Long:  `Create a .fluidtype.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = defaultConfigPath
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Printf("Created %s\n", path)
		return nil
	},
}

const defaultConfig = `# fluidtype configuration

# Shared settings
verbose: false
color: false

# Scale settings
scale:
  min-screen-width: 320    # px
  max-screen-width: 1536   # px
  min-font-size: 16        # px, base step at min-screen-width
  max-font-size: 20        # px, base step at max-screen-width
  min-ratio: 1.2
  max-ratio: 1.333
  min-step: 2
  max-step: 5
  precision: 2
  prefix: font-size-
  root-font-size: 16       # px
  unit: rem                # rem | px
  suffix-type: numbered    # numbered | values
  # suffix-values: [xs, sm, base, md, lg, xl, xxl, xxxl]
  # suffix-prepend: [2xs]
  # suffix-append: [4xl]
  min-max-variables: false

# Stylesheet processing
process:
  include:
    - "web/styles/**/*.css"
  out-dir: ""              # empty rewrites files in place
  replace-inline: false
  directive: postcss-modular-type-generate

# Utility framework output
tailwind:
  prefix: fluid-
  class-prefix: text-
  mode: utilities          # utilities | theme
  content:
    - "web/**/*.html"

# Linting settings
lint:
  paths:
    - "web/styles/**/*.css"
  strict: false
  output-format: issues    # issues | summary | full | json
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
