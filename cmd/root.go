package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rollcall",
	Short: "Tap-on-face attendance marking from a group photo",
	Long: `Rollcall marks attendance from a single group photo. It scans the photo
for face-like regions, lets an operator bind each region to a roster entry,
and writes a present/absent report. Identity is never inferred from pixels;
every binding is confirmed by a human.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
