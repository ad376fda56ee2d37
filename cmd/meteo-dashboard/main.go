package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meteo-dashboard",
	Short: "Weather dashboard and consultation report service",
	Long: `meteo-dashboard proxies the Open-Meteo forecast API for a browser dashboard and
records consultation reports with a risk assessment, optional email delivery and PDF export.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
