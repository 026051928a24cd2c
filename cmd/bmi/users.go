package bmi

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/bmi-cli/internal/service"
)

var usersJSON bool

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListUsers(sqldb)
			if err != nil {
				return err
			}
			if usersJSON {
				type userView struct {
					ID      int64  `json:"id"`
					Name    string `json:"name"`
					Records int    `json:"records"`
				}
				views := make([]userView, 0, len(items))
				for _, u := range items {
					views = append(views, userView{ID: u.ID, Name: u.Name, Records: u.RecordCount})
				}
				b, err := json.MarshalIndent(views, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal users json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tRECORDS")
			for _, u := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d\n", u.ID, u.Name, u.RecordCount)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.Flags().BoolVar(&usersJSON, "json", false, "Output as JSON")
}
