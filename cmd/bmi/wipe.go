package bmi

import (
	"bufio"
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/bmi-cli/internal/service"
)

var wipeYes bool

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all users and records",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !wipeYes {
			fmt.Fprint(cmd.OutOrStdout(), "This will permanently delete ALL users and records. Continue? [y/N]: ")
			reader := bufio.NewReader(cmd.InOrStdin())
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ClearAllData(sqldb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All users and records have been deleted")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(wipeCmd)
	wipeCmd.Flags().BoolVar(&wipeYes, "yes", false, "Skip the confirmation prompt")
}
