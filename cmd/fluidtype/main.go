// Package main provides the fluidtype CLI for generating fluid type scales.
package main

import (
	"fmt"
	"os"
)

func main() {
	registerEnumCompletions(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
