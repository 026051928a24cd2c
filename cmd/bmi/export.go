package bmi

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/saadjs/bmi-cli/internal/service"
)

var (
	exportUser   string
	exportOut    string
	exportFormat string

	importIn     string
	importMode   string
	importDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records to CSV or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportFormat != "csv" && exportFormat != "json" {
			return fmt.Errorf("unsupported export format %q (use csv or json)", exportFormat)
		}
		return withDB(func(sqldb *sql.DB) error {
			data, err := service.ExportDataSnapshot(sqldb, exportUser)
			if err != nil {
				return err
			}
			if exportUser != "" && len(data.Records) == 0 {
				return fmt.Errorf("user %q has no records to export", exportUser)
			}

			out := cmd.OutOrStdout()
			var f *os.File
			if exportOut != "" {
				f, err = os.Create(exportOut)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer f.Close()
			}

			if exportFormat == "json" {
				b, err := json.MarshalIndent(data, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal export json: %w", err)
				}
				if f != nil {
					if _, err := f.Write(append(b, '\n')); err != nil {
						return fmt.Errorf("write export file: %w", err)
					}
				} else {
					fmt.Fprintln(out, string(b))
				}
			} else {
				w := csv.NewWriter(out)
				if f != nil {
					w = csv.NewWriter(f)
				}
				if err := writeRecordsCSV(w, data.Records); err != nil {
					return err
				}
			}

			if f != nil {
				fmt.Fprintf(out, "Exported %d records to %s\n", len(data.Records), exportOut)
			}
			return nil
		})
	},
}

func writeRecordsCSV(w *csv.Writer, records []service.ExportRecord) error {
	header := []string{"date", "weight_kg", "height_m", "bmi", "category"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.RecordedAt,
			strconv.FormatFloat(r.WeightKg, 'f', 2, 64),
			strconv.FormatFloat(r.HeightM, 'f', 2, 64),
			strconv.FormatFloat(r.BMI, 'f', 2, 64),
			r.Category,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import records from a JSON snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := os.ReadFile(importIn)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		var data service.ExportData
		if err := json.Unmarshal(b, &data); err != nil {
			return fmt.Errorf("parse import file: %w", err)
		}
		opts := service.ImportOptions{
			Mode:   service.ImportMode(importMode),
			DryRun: importDryRun,
		}
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.ImportDataSnapshot(sqldb, &data, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if importDryRun {
				fmt.Fprintln(out, "Dry run, no changes written")
			}
			fmt.Fprintf(out, "Inserted: %d\n", report.Inserted)
			fmt.Fprintf(out, "Skipped: %d\n", report.Skipped)
			fmt.Fprintf(out, "Conflicts: %d\n", report.Conflicts)
			for _, warning := range report.Warnings {
				fmt.Fprintf(out, "Warning: %s\n", warning)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportUser, "user", "", "Export a single user (default: everyone)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format: csv or json")

	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importIn, "in", "", "JSON snapshot file to import")
	importCmd.Flags().StringVar(&importMode, "mode", "merge", "Conflict mode: fail, skip, merge, or replace")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Report what would change without writing")
	_ = importCmd.MarkFlagRequired("in")
}
