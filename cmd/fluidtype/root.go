package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/fluidtype"
	"github.com/yacobolo/fluidtype/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "fluidtype",
	Short: "Fluid typography scale generator",
	Long: `Generate a modular type scale whose sizes grow with the viewport.
Each step becomes a clamp() expression between a minimum and maximum size,
written as custom properties, utility classes or theme values.`,
	// Default behavior: run generate when no subcommand is given.
	// We must call loadConfig here because PreRunE of generateCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runGenerate(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "Config file path")

	addScaleFlags(rootCmd.Flags(), fluidtype.DefaultConfig().Prefix)
	addGenerateFlags(rootCmd.Flags())

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(tailwindCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// configureLogging sets up the console logger from the verbosity flags
func configureLogging() {
	level := "warn"
	switch {
	case getBoolWithFallback("quiet", "quiet", false):
		level = "error"
	case getBoolWithFallback("verbose", "verbose", false):
		level = "debug"
	}
	log.Configure(log.Config{Level: level, Output: os.Stderr, Console: true})
}
