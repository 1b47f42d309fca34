package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rapihdata/rapih/internal/clean"
	"github.com/rapihdata/rapih/internal/domain"
	"github.com/rapihdata/rapih/internal/export"
	"github.com/rapihdata/rapih/internal/ingest"
)

var (
	clnPreset string
	clnOutput string
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Run the cleaning pipeline and write the result",
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

		opts, err := clean.PresetOptions(domain.Preset(clnPreset))
		if err != nil {
			return err
		}

		cleaner := clean.NewCleaner(buildLogger())
		result, err := cleaner.Clean(cmd.Context(), tbl, opts)
		if err != nil {
			return err
		}

		outPath := clnOutput
		if outPath == "" {
			format := export.FormatFromName(path)
			outPath = export.FileName(filepath.Base(path), format)
		}
		format := export.FormatFromName(outPath)
		encoded, err := export.Write(result.Data, format)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}

		renderCleanSummary(result, outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVar(&clnPreset, "preset", string(domain.PresetStandard),
		"cleaning preset: "+strings.Join([]string{
			string(domain.PresetQuick), string(domain.PresetStandard),
			string(domain.PresetFinancial), string(domain.PresetFull),
		}, "|"))
	cleanCmd.Flags().StringVarP(&clnOutput, "output", "o", "", "output file path (.xlsx or .csv; derived from input when omitted)")
}

func renderCleanSummary(result domain.CleanResult, outPath string) {
	fmt.Printf("Cleaned: %d rows in, %d rows out, %d cells changed\n",
		result.Summary.RowsBefore, result.Summary.RowsAfter, result.Summary.CellsChanged)

	if len(result.Log) > 0 {
		log := table.NewWriter()
		log.SetOutputMirror(os.Stdout)
		log.SetStyle(table.StyleLight)
		log.AppendHeader(table.Row{"Operation", "Affected", "Detail"})
		for _, entry := range result.Log {
			log.AppendRow(table.Row{entry.Operation, entry.AffectedCount, entry.Message})
		}
		log.Render()
	}

	fmt.Printf("Wrote %s\n", outPath)
}
