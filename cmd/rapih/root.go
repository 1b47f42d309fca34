package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "rapih",
	Short: "Analyze and clean messy Indonesian tabular data",
	Long: `Rapih inspects csv/xlsx/json files for data quality problems (duplicates,
invalid NIK/NPWP/phone values, mixed formats, broken invoice math) and can
apply an ordered cleaning pipeline to fix what is safely fixable.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func buildLogger() *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
