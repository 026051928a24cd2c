package bmi

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/bmi-cli/internal/service"
)

var (
	backupOut   string
	restoreIn   string
	restoreTo   string
	restoreYes  bool
	backupsDirF string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage database backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a checksummed copy of the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		out := backupOut
		if out == "" {
			name := fmt.Sprintf("bmi-%s.db", time.Now().Format("20060102-150405"))
			out = filepath.Join(defaultBackupDir(path), name)
		}
		info, err := service.CreateBackup(path, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s (%d bytes)\n", info.Path, info.SizeBytes)
		fmt.Fprintf(cmd.OutOrStdout(), "SHA-256: %s\n", info.Checksum)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := backupsDirF
		if dir == "" {
			path, err := resolveDBPath()
			if err != nil {
				return err
			}
			dir = defaultBackupDir(path)
		}
		backups, err := service.ListBackups(dir)
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No backups found")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "CREATED\t\tSIZE\tPATH")
		for _, b := range backups {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n",
				b.CreatedAt.Local().Format("2006-01-02 15:04"), b.SizeBytes, b.Path)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the database from a backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := restoreTo
		if target == "" {
			path, err := resolveDBPath()
			if err != nil {
				return err
			}
			target = path
		}
		if err := service.RestoreBackup(restoreIn, target, restoreYes); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s to %s\n", restoreIn, target)
		return nil
	},
}

func defaultBackupDir(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "backups")
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)

	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Backup file path (default: backups/ next to the db)")
	backupListCmd.Flags().StringVar(&backupsDirF, "dir", "", "Backup directory to list")
	backupRestoreCmd.Flags().StringVar(&restoreIn, "in", "", "Backup file to restore from")
	backupRestoreCmd.Flags().StringVar(&restoreTo, "to", "", "Target database path (default: active db)")
	backupRestoreCmd.Flags().BoolVar(&restoreYes, "force", false, "Overwrite an existing database")
	_ = backupRestoreCmd.MarkFlagRequired("in")
}
