package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var appFlag string

var rootCmd = &cobra.Command{
	Use:   "featlab",
	Short: "Gherkin authoring workbench",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&appFlag, "app", "default", "App the workspace belongs to")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
