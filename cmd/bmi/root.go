package bmi

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saadjs/bmi-cli/internal/app"
	"github.com/saadjs/bmi-cli/internal/logging"
)

var (
	dbPath     string
	configPath string
	cfg        app.Config
)

var rootCmd = &cobra.Command{
	Use:   "bmi",
	Short: "bmi calculates and tracks body-mass-index from your terminal",
	Long:  "bmi is a local-first BMI calculator and tracker with per-user history, summary statistics, trend charts, and CSV export.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := app.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logging.Setup(cfg.LogLevel)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
}
