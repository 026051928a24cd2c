package bmi

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/bmi-cli/internal/service"
)

var (
	calcWeight     float64
	calcWeightUnit string
	calcHeight     float64
	calcHeightUnit string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute BMI without saving",
	RunE: func(cmd *cobra.Command, args []string) error {
		weightUnit := effectiveWeightUnit(cmd, calcWeightUnit)
		height, heightUnit := effectiveHeight(cmd, calcHeight, calcHeightUnit)
		value, category, err := service.Compute(calcWeight, weightUnit, height, heightUnit)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "BMI: %.2f\n", value)
		fmt.Fprintf(cmd.OutOrStdout(), "Category: %s\n", categoryColor(string(category))(string(category)))
		return nil
	},
}

// effectiveWeightUnit prefers the flag when set, otherwise the
// configured unit.
func effectiveWeightUnit(cmd *cobra.Command, flagValue string) string {
	if cmd.Flags().Changed("unit") {
		return flagValue
	}
	if cfg.WeightUnit != "" {
		return cfg.WeightUnit
	}
	return flagValue
}

// effectiveHeight falls back to the configured default height (always
// meters) when the flag was not provided.
func effectiveHeight(cmd *cobra.Command, flagValue float64, flagUnit string) (float64, string) {
	if !cmd.Flags().Changed("height") && cfg.DefaultHeightM > 0 {
		return cfg.DefaultHeightM, "m"
	}
	return flagValue, flagUnit
}

func init() {
	rootCmd.AddCommand(calcCmd)
	calcCmd.Flags().Float64Var(&calcWeight, "weight", 0, "Weight value")
	calcCmd.Flags().StringVar(&calcWeightUnit, "unit", "kg", "Weight unit: kg or lb")
	calcCmd.Flags().Float64Var(&calcHeight, "height", 0, "Height value")
	calcCmd.Flags().StringVar(&calcHeightUnit, "height-unit", "m", "Height unit: m or cm")
	_ = calcCmd.MarkFlagRequired("weight")
}
