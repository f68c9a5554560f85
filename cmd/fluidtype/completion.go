package main

import (
	"github.com/spf13/cobra"
	"github.com/yacobolo/fluidtype"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for fluidtype.

Enum flags such as --unit, --format and --mode complete to their accepted values.`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

// enumValues lists the accepted values of flags that take a fixed set
var enumValues = map[string][]string{
	"unit":          {string(fluidtype.UnitRem), string(fluidtype.UnitPx)},
	"suffix-type":   {string(fluidtype.SuffixNumbered), string(fluidtype.SuffixValues)},
	"format":        {string(fluidtype.ScaleCSS), string(fluidtype.ScaleJSON), string(fluidtype.ScaleYAML), string(fluidtype.ScaleTable)},
	"mode":          {string(fluidtype.TailwindUtilities), string(fluidtype.TailwindTheme)},
	"output-format": {string(fluidtype.OutputIssues), string(fluidtype.OutputSummary), string(fluidtype.OutputFull), string(fluidtype.OutputJSON)},
}

// registerEnumCompletions attaches value completions to every enum flag of
// cmd and its subcommands
func registerEnumCompletions(cmd *cobra.Command) {
	for name, values := range enumValues {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
	for _, sub := range cmd.Commands() {
		registerEnumCompletions(sub)
	}
}
