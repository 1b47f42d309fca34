package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rapihdata/rapih/internal/analyze"
	"github.com/rapihdata/rapih/internal/domain"
	"github.com/rapihdata/rapih/internal/ingest"
)

var (
	anaDeep       bool
	anaOutliers   bool
	anaCalcs      bool
	anaTaxRate    float64
	anaMaxRows    int
	anaJSONOutput bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a csv/xlsx/json file and report data quality",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		payload, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tbl, err := ingest.Decode(filepath.Base(path), payload)
		if err != nil {
			return err
		}

		opts := domain.DefaultAnalyzeOptions()
		opts.DeepAnalysis = anaDeep
		opts.DetectOutliers = anaOutliers
		opts.CheckCalculations = anaCalcs
		if anaTaxRate > 0 {
			opts.TaxRate = anaTaxRate
		}
		if anaMaxRows > 0 {
			opts.MaxRowsAnalyze = anaMaxRows
		}

		service := analyze.NewService(buildLogger())
		result, err := service.Analyze(cmd.Context(), tbl, opts)
		if err != nil {
			return err
		}

		if anaJSONOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		renderAnalysis(result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&anaDeep, "deep", false, "include per-column descriptive statistics")
	analyzeCmd.Flags().BoolVar(&anaOutliers, "outliers", true, "detect numeric outliers (IQR)")
	analyzeCmd.Flags().BoolVar(&anaCalcs, "calculations", true, "check subtotal/tax/total arithmetic")
	analyzeCmd.Flags().Float64Var(&anaTaxRate, "tax-rate", 0, "expected PPN rate (default 0.11)")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", 0, "maximum rows to analyze (default 10000)")
	analyzeCmd.Flags().BoolVar(&anaJSONOutput, "json", false, "print the full report as JSON")
}

func renderAnalysis(result domain.AnalysisResult) {
	fmt.Printf("Report %s — %d rows, %d columns\n", result.ID, result.RowCount, result.ColumnCount)
	fmt.Printf("Quality score: %.2f (%s)  completeness=%.2f consistency=%.2f validity=%.2f uniqueness=%.2f\n\n",
		result.Score.Overall, result.Score.Grade,
		result.Score.Completeness, result.Score.Consistency,
		result.Score.Validity, result.Score.Uniqueness)

	cols := table.NewWriter()
	cols.SetOutputMirror(os.Stdout)
	cols.SetStyle(table.StyleLight)
	cols.AppendHeader(table.Row{"Column", "Type", "Confidence", "Fill", "Unique"})
	for _, col := range result.Columns {
		cols.AppendRow(table.Row{
			col.Name, col.Type,
			fmt.Sprintf("%.0f%%", col.Confidence),
			fmt.Sprintf("%.0f%%", col.FillRate),
			col.UniqueCount,
		})
	}
	cols.Render()

	if len(result.Issues) > 0 {
		fmt.Printf("\n%d issues found:\n", len(result.Issues))
		issues := table.NewWriter()
		issues.SetOutputMirror(os.Stdout)
		issues.SetStyle(table.StyleLight)
		issues.AppendHeader(table.Row{"Type", "Severity", "Row", "Column", "Message"})
		for _, issue := range result.Issues {
			row := ""
			if issue.Row != nil {
				row = fmt.Sprintf("%d", *issue.Row)
			}
			issues.AppendRow(table.Row{issue.Type, issue.Severity, row, issue.Column, issue.Message})
		}
		issues.Render()
	}

	if len(result.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, s := range result.Suggestions {
			fmt.Printf("  [%s] %s — %s\n", s.Priority, s.Message, s.Impact)
		}
	}

	if len(result.Insights) > 0 {
		fmt.Println("\nNumeric column statistics:")
		stats := table.NewWriter()
		stats.SetOutputMirror(os.Stdout)
		stats.SetStyle(table.StyleLight)
		stats.AppendHeader(table.Row{"Column", "Count", "Min", "Max", "Mean", "Median", "StdDev"})
		for _, in := range result.Insights {
			stats.AppendRow(table.Row{in.Column, in.Count, in.Min, in.Max, in.Mean, in.Median, in.StdDev})
		}
		stats.Render()
	}
}
