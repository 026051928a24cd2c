package bmi

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/bmi-cli/internal/model"
	"github.com/saadjs/bmi-cli/internal/service"
)

var (
	historyUser  string
	historyFrom  string
	historyTo    string
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show BMI history and summary statistics for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := service.RecordFilter{
			UserName: historyUser,
			FromDate: historyFrom,
			ToDate:   historyTo,
			Limit:    historyLimit,
		}
		return withDB(func(sqldb *sql.DB) error {
			records, err := service.ListRecords(sqldb, filter)
			if err != nil {
				return err
			}
			if historyJSON {
				return printHistoryJSON(cmd, records)
			}
			printHistoryTable(cmd, records)
			return nil
		})
	},
}

func printHistoryTable(cmd *cobra.Command, records []model.Record) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "DATE\tWEIGHT_KG\tHEIGHT_M\tBMI\tCATEGORY\tNOTES")
	for _, r := range records {
		fmt.Fprintf(out, "%s\t%.2f\t%.2f\t%.2f\t%s\t%s\n",
			r.RecordedAt.Local().Format("2006-01-02 15:04"),
			r.WeightKg, r.HeightM, r.BMI, categoryColor(r.Category)(r.Category), r.Notes)
	}

	s := service.SummarizeBMI(records)
	if s == nil {
		fmt.Fprintln(out, "\nMean BMI: N/A")
		fmt.Fprintln(out, "Min BMI: N/A")
		fmt.Fprintln(out, "Max BMI: N/A")
		return
	}
	fmt.Fprintf(out, "\nMean BMI: %.2f\n", s.Mean)
	fmt.Fprintf(out, "Min BMI: %.2f\n", s.Min)
	fmt.Fprintf(out, "Max BMI: %.2f\n", s.Max)
}

func printHistoryJSON(cmd *cobra.Command, records []model.Record) error {
	type recordView struct {
		ID         int64   `json:"id"`
		RecordedAt string  `json:"recorded_at"`
		WeightKg   float64 `json:"weight_kg"`
		HeightM    float64 `json:"height_m"`
		BMI        float64 `json:"bmi"`
		Category   string  `json:"category"`
		Notes      string  `json:"notes,omitempty"`
	}
	payload := struct {
		Records []recordView        `json:"records"`
		Summary *service.BMISummary `json:"summary"`
	}{
		Records: make([]recordView, 0, len(records)),
		Summary: service.SummarizeBMI(records),
	}
	for _, r := range records {
		payload.Records = append(payload.Records, recordView{
			ID:         r.ID,
			RecordedAt: r.RecordedAt.Format(time.RFC3339),
			WeightKg:   r.WeightKg,
			HeightM:    r.HeightM,
			BMI:        r.BMI,
			Category:   r.Category,
			Notes:      r.Notes,
		})
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyUser, "user", "", "User name")
	historyCmd.Flags().StringVar(&historyFrom, "from", "", "Filter from date YYYY-MM-DD")
	historyCmd.Flags().StringVar(&historyTo, "to", "", "Filter to date YYYY-MM-DD")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Result limit (0 = all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	_ = historyCmd.MarkFlagRequired("user")
}
