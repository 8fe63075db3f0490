package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adboard",
	Short: "Marketing intelligence dashboard over platform spend and business outcome CSVs",
	Long: `adboard joins per-platform ad spend CSVs (Facebook, Google, TikTok)
with business outcomes (orders, revenue, profit) on date and serves
filterable KPIs, time series and campaign breakdowns.`,
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
