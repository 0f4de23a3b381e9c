package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cultiva/internal/cli"
	"github.com/Veraticus/cultiva/internal/common"
	"github.com/Veraticus/cultiva/internal/currency"
	"github.com/Veraticus/cultiva/internal/model"
)

func estimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Forecast a single income or expense record",
		Long: `Forecast a single income or expense record.

The forecast is a heuristic: seasonal and market factors with bounded
random noise. Set estimator.seed in the config for repeatable output.`,
		Example: `  cultiva estimate --amount 250000 --type Récolte --month 8
  cultiva estimate --amount 45000 --direction expense --type Intrants \
      --total-income 900000 --total-expenses 700000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := estimateInputFromFlags(cmd)
			if err != nil {
				return err
			}

			estimator, err := newEstimator()
			if err != nil {
				return err
			}

			result := estimator.Estimate(input)

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			unit, _ := cmd.Flags().GetString("currency")
			return printEstimate(cmd.OutOrStdout(), input, result, unit)
		},
	}

	cmd.Flags().Float64("amount", 0, "Record amount (required)")
	cmd.Flags().String("direction", string(model.DirectionExpense), "income or expense")
	cmd.Flags().String("type", "", "Record type: Récolte, Intrants, Main-d'œuvre or empty")
	cmd.Flags().Int("month", int(time.Now().Month()), "Month of the record (1-12)")
	cmd.Flags().Float64("seasonality", 0, "Extra seasonal coefficient (0 = none)")
	cmd.Flags().Float64("total-income", 0, "Total income of the period, enables margin adjustment")
	cmd.Flags().Float64("total-expenses", 0, "Total expenses of the period, enables margin adjustment")
	cmd.Flags().String("currency", "XOF", "Display currency: XOF or EUR")
	cmd.Flags().Bool("json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func estimateInputFromFlags(cmd *cobra.Command) (model.PredictionInput, error) {
	flags := cmd.Flags()
	amount, _ := flags.GetFloat64("amount")
	direction, _ := flags.GetString("direction")
	recordType, _ := flags.GetString("type")
	month, _ := flags.GetInt("month")

	input := model.PredictionInput{
		Amount:    amount,
		Direction: model.Direction(strings.ToLower(direction)),
		Type:      recordType,
		Month:     month,
	}
	if input.Direction != model.DirectionIncome && input.Direction != model.DirectionExpense {
		return input, common.NewUserError(fmt.Sprintf("direction must be %q or %q", model.DirectionIncome, model.DirectionExpense), nil)
	}

	if flags.Changed("seasonality") {
		v, _ := flags.GetFloat64("seasonality")
		input.Seasonality = model.Float64Ptr(v)
	}
	if flags.Changed("total-income") {
		v, _ := flags.GetFloat64("total-income")
		input.TotalIncome = model.Float64Ptr(v)
	}
	if flags.Changed("total-expenses") {
		v, _ := flags.GetFloat64("total-expenses")
		input.TotalExpenses = model.Float64Ptr(v)
	}

	return input, nil
}

// formatAmount renders v in the display currency. Amounts are taken to be XOF.
func formatAmount(v float64, unit string) string {
	if strings.EqualFold(unit, "EUR") {
		return currency.FormatEUR(currency.XOFToEUR(v))
	}
	return currency.FormatXOF(v)
}

func printEstimate(out io.Writer, input model.PredictionInput, result model.PredictionResult, unit string) error {
	if !result.Success {
		_, err := fmt.Fprintln(out, cli.FormatError("Estimate failed: "+result.Message))
		return err
	}

	recordType := input.Type
	if recordType == "" {
		recordType = string(input.Direction)
	}

	content := fmt.Sprintf("Type:       %s\n", recordType) +
		fmt.Sprintf("Month:      %s\n", currency.MonthName(input.Month)) +
		fmt.Sprintf("Amount:     %s\n", formatAmount(input.Amount, unit)) +
		fmt.Sprintf("Forecast:   %s\n", formatAmount(result.Prediction, unit)) +
		fmt.Sprintf("Confidence: %s\n", cli.FormatConfidence(result.Confidence)) +
		fmt.Sprintf("Computed:   %s", currency.FormatDate(result.Timestamp))

	_, err := fmt.Fprintln(out, cli.RenderBox(cli.ChartIcon+" Forecast", content))
	return err
}
