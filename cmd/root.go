package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "ticker-screener",
	Short: "Watchlist technical-analysis screener",
}

func Execute() error {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(migrateCmd)
	return rootCmd.Execute()
}
