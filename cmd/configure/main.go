package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rvachov/dayplan/cmd/configure/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "dayplan-configure",
		Short: "Configuration tool for the Dayplan API",
		Long:  "CLI tool for managing runtime settings and checking deployment configuration",
	}

	rootCmd.AddCommand(commands.NewPreferencesCmd())
	rootCmd.AddCommand(commands.NewRatelimitCmd())
	rootCmd.AddCommand(commands.NewTestCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
