package bmi

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/bmi-cli/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check database integrity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Orphan records: %d\n", report.OrphanRecords)
			fmt.Fprintf(out, "Drifted records: %d\n", report.DriftedRecords)
			fmt.Fprintf(out, "Invalid timestamps: %d\n", report.InvalidTimestamp)
			if doctorFix {
				fmt.Fprintf(out, "Fixed records: %d\n", report.FixedRecords)
				// Re-run the checks so the exit status reflects the
				// post-fix state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if report.OrphanRecords > 0 || report.DriftedRecords > 0 || report.InvalidTimestamp > 0 {
				return fmt.Errorf("integrity issues found")
			}
			fmt.Fprintln(out, "Database is healthy")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Recompute drifted BMI values in place")
}
