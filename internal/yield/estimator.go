// Package yield produces heuristic forecasts for farm income and expense records.
//
// The estimator is not a trained model: it applies fixed seasonal and market
// adjustment rules plus bounded random noise, and tags each estimate with a
// coarse confidence label.
package yield

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/Veraticus/cultiva/internal/common"
	"github.com/Veraticus/cultiva/internal/model"
)

// Random is the source of uniform draws in [0, 1).
type Random interface {
	Float64() float64
}

// Clock returns the current time.
type Clock func() time.Time

// Option configures an Estimator.
type Option func(*Estimator)

// WithRandom replaces the random source, typically to pin outputs in tests.
func WithRandom(r Random) Option {
	return func(e *Estimator) {
		e.rng = r
	}
}

// WithSeed uses a deterministic PCG source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(e *Estimator) {
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithClock replaces the clock used for result timestamps.
func WithClock(clock Clock) Option {
	return func(e *Estimator) {
		e.now = clock
	}
}

// Estimator turns transaction-like records into synthetic forecasts.
// An Estimator is not safe for concurrent use unless its Random is.
type Estimator struct {
	rng Random
	now Clock
}

// NewEstimator creates an estimator. Without options it draws from an
// unseeded generator, so repeated calls with the same input differ.
func NewEstimator(opts ...Option) *Estimator {
	e := &Estimator{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimate produces a single forecast. It never panics; failures are reported
// through a result with Success false and Faible confidence.
func (e *Estimator) Estimate(input model.PredictionInput) (result model.PredictionResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Estimate panicked", "type", input.Type, "panic", r)
			result = failure(e.now(), fmt.Sprintf("internal error: %v", r))
		}
	}()

	value, confidence, err := e.compute(input)
	if err != nil {
		slog.Debug("Estimate rejected", "type", input.Type, "error", err)
		return failure(e.now(), err.Error())
	}

	return model.PredictionResult{
		Success:    true,
		Prediction: value,
		Confidence: confidence,
		Timestamp:  e.now(),
	}
}

// EstimateBatch runs Estimate over every input in order. One failure does not
// stop the batch.
func (e *Estimator) EstimateBatch(inputs []model.PredictionInput) model.BatchResult {
	batch, _ := e.EstimateBatchContext(context.Background(), inputs, nil)
	return batch
}

// EstimateBatchContext is EstimateBatch with cancellation. onResult, if not
// nil, is called after each item. When ctx is canceled the results gathered so
// far are returned with ctx's error.
func (e *Estimator) EstimateBatchContext(ctx context.Context, inputs []model.PredictionInput, onResult func(model.PredictionResult)) (model.BatchResult, error) {
	batch := model.BatchResult{
		Results: make([]model.PredictionResult, 0, len(inputs)),
	}

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		res := e.Estimate(input)
		if res.Success {
			batch.SuccessCount++
		}
		batch.Results = append(batch.Results, res)

		if onResult != nil {
			onResult(res)
		}
	}

	slog.Debug("Batch estimate complete",
		"total", len(inputs),
		"succeeded", batch.SuccessCount)

	return batch, nil
}

func (e *Estimator) compute(input model.PredictionInput) (float64, model.Confidence, error) {
	if !isFinite(input.Amount) {
		return 0, model.ConfidenceLow, common.ErrNonFiniteAmount
	}
	for _, total := range []*float64{input.TotalIncome, input.TotalExpenses} {
		if total != nil && !isFinite(*total) {
			return 0, model.ConfidenceLow, fmt.Errorf("%w: totals", common.ErrNonFiniteAmount)
		}
	}

	value := input.Amount
	var confidence model.Confidence

	switch {
	case input.Type == model.TypeHarvest:
		value *= monthFactor(harvestSeasonality, input.Month)
		value *= weatherRange.draw(e.rng)
		value *= marketRange.draw(e.rng)
		confidence = model.ConfidenceHigh
	case input.Type == model.TypeInputs:
		value *= inflationRange.draw(e.rng)
		confidence = model.ConfidenceHigh
	case input.Type == model.TypeLabor:
		value *= monthFactor(laborSeasonality, input.Month)
		confidence = model.ConfidenceMedium
	case input.Direction == model.DirectionIncome:
		value *= incomeRange.draw(e.rng)
		confidence = model.ConfidenceMedium
	default:
		value *= expenseRange.draw(e.rng)
		confidence = model.ConfidenceMedium
	}

	if input.Seasonality != nil && *input.Seasonality > 0 {
		value *= *input.Seasonality
	}

	if margin, ok := profitMargin(input); ok {
		switch {
		case margin < lowMarginThreshold:
			value *= lowMarginFactor
			confidence = model.ConfidenceLow
		case margin > highMarginThreshold:
			value *= highMarginFactor
			confidence = model.ConfidenceHigh
		}
	}

	value = roundCents(value)
	if !isFinite(value) {
		return 0, model.ConfidenceLow, common.ErrNonFiniteResult
	}

	return value, confidence, nil
}

// profitMargin is defined only when both totals are present and positive.
func profitMargin(input model.PredictionInput) (float64, bool) {
	if input.TotalIncome == nil || input.TotalExpenses == nil {
		return 0, false
	}
	income, expenses := *input.TotalIncome, *input.TotalExpenses
	if !(income > 0) || !(expenses > 0) {
		return 0, false
	}
	return (income - expenses) / income, true
}

// roundCents rounds to two decimals, halves away from zero.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func failure(at time.Time, message string) model.PredictionResult {
	return model.PredictionResult{
		Success:    false,
		Confidence: model.ConfidenceLow,
		Message:    message,
		Timestamp:  at,
	}
}
