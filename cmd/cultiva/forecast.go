package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/cultiva/internal/cli"
	"github.com/Veraticus/cultiva/internal/common"
	"github.com/Veraticus/cultiva/internal/currency"
	"github.com/Veraticus/cultiva/internal/model"
	"github.com/Veraticus/cultiva/internal/ofx"
)

func forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast <file>",
		Short: "Forecast a batch of records from a file",
		Long: `Forecast every record in a file.

Accepted inputs:
  .ofx, .qfx   bank statements; each transaction becomes a record and the
               statement totals enable the profit margin adjustment
  .json        a JSON array of records
  .yaml, .yml  a YAML list of records

A failing record does not stop the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: runForecast,
	}

	cmd.Flags().String("currency", "XOF", "Display currency: XOF or EUR")
	cmd.Flags().Bool("json", false, "Output the batch result as JSON")
	cmd.Flags().Bool("no-progress", false, "Hide the progress bar")

	return cmd
}

func runForecast(cmd *cobra.Command, args []string) error {
	path := args[0]
	inputs, err := loadForecastInputs(cmd.Context(), path)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("No records found in "+path))
		return nil
	}

	estimator, err := newEstimator()
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	unit, _ := cmd.Flags().GetString("currency")

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Forecast")
	ctx := handler.HandleInterrupts(cmd.Context())

	var onResult func(model.PredictionResult)
	if !asJSON && !noProgress {
		progress := cli.NewProgress(cmd.ErrOrStderr(), len(inputs), "Forecasting records...")
		onResult = func(model.PredictionResult) { progress.Increment() }
	}

	batch, err := estimator.EstimateBatchContext(ctx, inputs, onResult)
	if err != nil {
		if handler.WasInterrupted() {
			return nil
		}
		return err
	}

	common.LogInfo("Forecast complete", common.Fields{
		"file":      path,
		"records":   len(inputs),
		"succeeded": batch.SuccessCount,
	})

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(batch)
	}

	return printBatch(cmd.OutOrStdout(), inputs, batch, unit)
}

// loadForecastInputs reads records from an OFX, JSON or YAML file, chosen by
// extension.
func loadForecastInputs(ctx context.Context, path string) ([]model.PredictionInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var inputs []model.PredictionInput
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ofx", ".qfx":
		inputs, err = ofx.NewParser().ParseFile(ctx, bytes.NewReader(data))
	case ".json":
		err = json.Unmarshal(data, &inputs)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &inputs)
	default:
		return nil, common.NewUserError(fmt.Sprintf("unsupported file type %q (want .ofx, .qfx, .json, .yaml)", ext), nil)
	}
	if err != nil {
		return nil, common.NewUserError("could not read records from "+path, err)
	}

	return inputs, nil
}

func printBatch(out io.Writer, inputs []model.PredictionInput, batch model.BatchResult, unit string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tMONTH\tTYPE\tDESCRIPTION\tAMOUNT\tFORECAST\tCONFIDENCE")

	var total float64
	for i, res := range batch.Results {
		input := inputs[i]
		recordType := input.Type
		if recordType == "" {
			recordType = string(input.Direction)
		}

		forecast := cli.FormatError(res.Message)
		if res.Success {
			forecast = formatAmount(res.Prediction, unit)
			if input.Direction == model.DirectionIncome {
				total += res.Prediction
			} else {
				total -= res.Prediction
			}
		}

		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, currency.MonthName(input.Month), recordType, input.Description,
			formatAmount(input.Amount, unit), forecast, cli.FormatConfidence(res.Confidence))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d of %d records forecast, net %s",
		batch.SuccessCount, len(batch.Results), formatAmount(total, unit))
	if batch.SuccessCount < len(batch.Results) {
		_, err := fmt.Fprintln(out, "\n"+cli.FormatWarning(summary))
		return err
	}
	_, err := fmt.Fprintln(out, "\n"+cli.FormatSuccess(summary))
	return err
}
