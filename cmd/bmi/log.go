package bmi

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/bmi-cli/internal/service"
)

var (
	logUser       string
	logWeight     float64
	logWeightUnit string
	logHeight     float64
	logHeightUnit string
	logDate       string
	logTime       string
	logNotes      string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Compute BMI and save a record",
	RunE: func(cmd *cobra.Command, args []string) error {
		recordedAt, err := parseDateTimeOrNow(logDate, logTime)
		if err != nil {
			return err
		}
		height, heightUnit := effectiveHeight(cmd, logHeight, logHeightUnit)
		in := service.AddRecordInput{
			UserName:   logUser,
			Weight:     logWeight,
			WeightUnit: effectiveWeightUnit(cmd, logWeightUnit),
			Height:     height,
			HeightUnit: heightUnit,
			RecordedAt: recordedAt,
			Notes:      logNotes,
		}
		return withDB(func(sqldb *sql.DB) error {
			res, err := service.AddRecord(sqldb, in)
			if err != nil {
				return err
			}
			category := string(res.Category)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved record %d for %s (BMI %.2f, %s)\n",
				res.RecordID, logUser, res.BMI, categoryColor(category)(category))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVar(&logUser, "user", "", "User name")
	logCmd.Flags().Float64Var(&logWeight, "weight", 0, "Weight value")
	logCmd.Flags().StringVar(&logWeightUnit, "unit", "kg", "Weight unit: kg or lb")
	logCmd.Flags().Float64Var(&logHeight, "height", 0, "Height value")
	logCmd.Flags().StringVar(&logHeightUnit, "height-unit", "m", "Height unit: m or cm")
	logCmd.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (default: now)")
	logCmd.Flags().StringVar(&logTime, "time", "", "Time HH:MM")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "Optional notes")
	_ = logCmd.MarkFlagRequired("user")
	_ = logCmd.MarkFlagRequired("weight")
}
