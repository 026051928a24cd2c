package bmi

import (
	"database/sql"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/bmi-cli/internal/model"
	"github.com/saadjs/bmi-cli/internal/service"
)

var (
	trendUser  string
	trendFrom  string
	trendTo    string
	trendWidth int
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Render an ASCII BMI trend chart for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := service.RecordFilter{
			UserName: trendUser,
			FromDate: trendFrom,
			ToDate:   trendTo,
		}
		return withDB(func(sqldb *sql.DB) error {
			records, err := service.ListRecords(sqldb, filter)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No records for %s\n", trendUser)
				return nil
			}
			printTrendChart(cmd.OutOrStdout(), records, trendWidth)
			return nil
		})
	},
}

func printTrendChart(out io.Writer, records []model.Record, width int) {
	fmt.Fprintln(out, "BMI Trend")
	maxBMI := 0.0
	for _, r := range records {
		if r.BMI > maxBMI {
			maxBMI = r.BMI
		}
	}
	for _, r := range records {
		bar := horizontalBar(r.BMI, maxBMI, width)
		fmt.Fprintf(out, "  %-16s %s %.1f\n", r.RecordedAt.Local().Format("2006-01-02 15:04"), bar, r.BMI)
	}
	fmt.Fprintf(out, "\n%s\n", sparkline(records))
}

func horizontalBar(value, max float64, width int) string {
	if width <= 0 || max <= 0 {
		return ""
	}
	bars := int(math.Round(value / max * float64(width)))
	if bars == 0 && value > 0 {
		bars = 1
	}
	return strings.Repeat("#", bars)
}

func sparkline(records []model.Record) string {
	if len(records) == 0 {
		return ""
	}
	chars := []rune("._-~=*#@")
	minV := records[0].BMI
	maxV := records[0].BMI
	for _, r := range records {
		if r.BMI < minV {
			minV = r.BMI
		}
		if r.BMI > maxV {
			maxV = r.BMI
		}
	}
	if maxV == minV {
		return strings.Repeat(string(chars[0]), len(records))
	}
	var b strings.Builder
	for _, r := range records {
		ratio := (r.BMI - minV) / (maxV - minV)
		idx := int(math.Round(ratio * float64(len(chars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		b.WriteRune(chars[idx])
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(trendCmd)
	trendCmd.Flags().StringVar(&trendUser, "user", "", "User name")
	trendCmd.Flags().StringVar(&trendFrom, "from", "", "Filter from date YYYY-MM-DD")
	trendCmd.Flags().StringVar(&trendTo, "to", "", "Filter to date YYYY-MM-DD")
	trendCmd.Flags().IntVar(&trendWidth, "width", 24, "Chart width in characters")
	_ = trendCmd.MarkFlagRequired("user")
}
