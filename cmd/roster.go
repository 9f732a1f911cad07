package cmd

import (
	"github.com/spf13/cobra"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Roster operations",
	Long:  `Commands for validating and searching roster CSV files.`,
}

func init() {
	rootCmd.AddCommand(rosterCmd)
}
