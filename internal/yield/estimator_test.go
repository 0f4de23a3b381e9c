package yield

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cultiva/internal/model"
)

// fixedRandom always returns the same draw.
type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

// panicRandom fails every draw.
type panicRandom struct{}

func (panicRandom) Float64() float64 { panic("entropy exhausted") }

var testTime = time.Date(2024, 8, 15, 10, 30, 0, 0, time.UTC)

func newTestEstimator(draw float64) *Estimator {
	return NewEstimator(
		WithRandom(fixedRandom(draw)),
		WithClock(func() time.Time { return testTime }),
	)
}

func TestEstimator_Estimate(t *testing.T) {
	ptr := model.Float64Ptr

	tests := []struct {
		name           string
		input          model.PredictionInput
		draw           float64
		wantPrediction float64
		wantConfidence model.Confidence
	}{
		{
			name:           "harvest at lowest draws",
			input:          model.PredictionInput{Amount: 1000, Type: model.TypeHarvest, Direction: model.DirectionIncome, Month: 8},
			draw:           0,
			wantPrediction: 969.00,
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "harvest at mid draws",
			input:          model.PredictionInput{Amount: 1000, Type: model.TypeHarvest, Month: 1},
			draw:           0.5,
			wantPrediction: 300.00,
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "harvest with month out of range",
			input:          model.PredictionInput{Amount: 1000, Type: model.TypeHarvest, Month: 0},
			draw:           0.5,
			wantPrediction: 1000.00,
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "inputs inflation",
			input:          model.PredictionInput{Amount: 100, Type: model.TypeInputs, Direction: model.DirectionExpense, Month: 3},
			draw:           0,
			wantPrediction: 102.00,
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "labor in august",
			input:          model.PredictionInput{Amount: 100, Type: model.TypeLabor, Direction: model.DirectionExpense, Month: 8},
			draw:           0.5,
			wantPrediction: 150.00,
			wantConfidence: model.ConfidenceMedium,
		},
		{
			name:           "labor with month out of range",
			input:          model.PredictionInput{Amount: 100, Type: model.TypeLabor, Month: 13},
			wantPrediction: 100.00,
			wantConfidence: model.ConfidenceMedium,
		},
		{
			name:           "generic income",
			input:          model.PredictionInput{Amount: 100, Type: "Subvention", Direction: model.DirectionIncome, Month: 5},
			draw:           0.5,
			wantPrediction: 102.00,
			wantConfidence: model.ConfidenceMedium,
		},
		{
			name:           "generic expense",
			input:          model.PredictionInput{Amount: 100, Type: "Transport", Direction: model.DirectionExpense, Month: 5},
			draw:           0.5,
			wantPrediction: 103.00,
			wantConfidence: model.ConfidenceMedium,
		},
		{
			name:           "type wins over direction",
			input:          model.PredictionInput{Amount: 100, Type: model.TypeLabor, Direction: model.DirectionIncome, Month: 1},
			draw:           0.5,
			wantPrediction: 100.00,
			wantConfidence: model.ConfidenceMedium,
		},
		{
			name: "low margin forces faible",
			input: model.PredictionInput{
				Amount: 100, Type: model.TypeLabor, Month: 1,
				TotalIncome: ptr(1000), TotalExpenses: ptr(950),
			},
			wantPrediction: 95.00,
			wantConfidence: model.ConfidenceLow,
		},
		{
			name: "low margin overrides harvest confidence",
			input: model.PredictionInput{
				Amount: 1000, Type: model.TypeHarvest, Month: 7,
				TotalIncome: ptr(1000), TotalExpenses: ptr(950),
			},
			draw:           0.5,
			wantPrediction: 950.00,
			wantConfidence: model.ConfidenceLow,
		},
		{
			name: "high margin forces elevee",
			input: model.PredictionInput{
				Amount: 100, Type: model.TypeLabor, Month: 1,
				TotalIncome: ptr(1000), TotalExpenses: ptr(500),
			},
			wantPrediction: 105.00,
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name: "middle margin leaves value alone",
			input: model.PredictionInput{
				Amount: 100, Type: model.TypeLabor, Month: 1,
				TotalIncome: ptr(1000), TotalExpenses: ptr(800),
			},
			wantPrediction: 100.00,
			wantConfidence: model.ConfidenceMedium,
		},
		{
			name: "margin ignored without expenses",
			input: model.PredictionInput{
				Amount: 100, Type: model.TypeLabor, Month: 1,
				TotalIncome: ptr(1000), TotalExpenses: ptr(0),
			},
			wantPrediction: 100.00,
			wantConfidence: model.ConfidenceMedium,
		},
		{
			name: "margin ignored with one total",
			input: model.PredictionInput{
				Amount: 100, Type: model.TypeLabor, Month: 1,
				TotalIncome: ptr(1000),
			},
			wantPrediction: 100.00,
			wantConfidence: model.ConfidenceMedium,
		},
		{
			name: "seasonality coefficient",
			input: model.PredictionInput{
				Amount: 100, Type: model.TypeLabor, Month: 1,
				Seasonality: ptr(1.5),
			},
			wantPrediction: 150.00,
			wantConfidence: model.ConfidenceMedium,
		},
		{
			name:           "zero amount",
			input:          model.PredictionInput{Amount: 0, Direction: model.DirectionExpense},
			draw:           0.5,
			wantPrediction: 0,
			wantConfidence: model.ConfidenceMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestEstimator(tt.draw).Estimate(tt.input)

			require.True(t, res.Success, res.Message)
			assert.InDelta(t, tt.wantPrediction, res.Prediction, 1e-9)
			assert.Equal(t, tt.wantConfidence, res.Confidence)
			assert.Equal(t, testTime, res.Timestamp)
			assert.Empty(t, res.Message)
		})
	}
}

func TestEstimator_HarvestBounds(t *testing.T) {
	const amount = 1000.0
	lower := amount * 1.2 * 0.85 * 0.95
	upper := amount * 1.2 * 1.15 * 1.05

	input := model.PredictionInput{Amount: amount, Type: model.TypeHarvest, Month: 8}

	for _, draw := range []float64{0, 0.25, 0.5, 0.75, math.Nextafter(1, 0)} {
		res := newTestEstimator(draw).Estimate(input)
		require.True(t, res.Success)
		assert.GreaterOrEqual(t, res.Prediction, lower-1e-9, "draw %v", draw)
		assert.LessOrEqual(t, res.Prediction, upper+1e-9, "draw %v", draw)
	}

	e := NewEstimator()
	for i := 0; i < 500; i++ {
		res := e.Estimate(input)
		require.True(t, res.Success)
		assert.GreaterOrEqual(t, res.Prediction, lower-1e-9)
		assert.LessOrEqual(t, res.Prediction, upper+1e-9)
	}
}

func TestEstimator_Failures(t *testing.T) {
	tests := []struct {
		name        string
		estimator   *Estimator
		input       model.PredictionInput
		wantMessage string
	}{
		{
			name:        "NaN amount",
			estimator:   newTestEstimator(0.5),
			input:       model.PredictionInput{Amount: math.NaN(), Direction: model.DirectionIncome},
			wantMessage: "finite",
		},
		{
			name:        "infinite amount",
			estimator:   newTestEstimator(0.5),
			input:       model.PredictionInput{Amount: math.Inf(1), Type: model.TypeInputs},
			wantMessage: "finite",
		},
		{
			name:      "infinite total",
			estimator: newTestEstimator(0.5),
			input: model.PredictionInput{
				Amount: 10, Type: model.TypeInputs,
				TotalIncome: model.Float64Ptr(math.Inf(1)), TotalExpenses: model.Float64Ptr(10),
			},
			wantMessage: "totals",
		},
		{
			name:        "overflowing result",
			estimator:   newTestEstimator(0.5),
			input:       model.PredictionInput{Amount: math.MaxFloat64, Type: model.TypeLabor, Month: 8},
			wantMessage: "non-finite",
		},
		{
			name: "panicking random source",
			estimator: NewEstimator(
				WithRandom(panicRandom{}),
				WithClock(func() time.Time { return testTime }),
			),
			input:       model.PredictionInput{Amount: 100, Type: model.TypeHarvest, Month: 8},
			wantMessage: "entropy exhausted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.estimator.Estimate(tt.input)

			assert.False(t, res.Success)
			assert.Equal(t, model.ConfidenceLow, res.Confidence)
			assert.Contains(t, res.Message, tt.wantMessage)
			assert.Zero(t, res.Prediction)
			assert.Equal(t, testTime, res.Timestamp)
		})
	}
}

func TestEstimator_EstimateBatch(t *testing.T) {
	e := NewEstimator(WithRandom(panicRandom{}))

	inputs := []model.PredictionInput{
		{Amount: 100, Type: model.TypeLabor, Month: 8},
		{Amount: 100, Type: model.TypeHarvest, Month: 8},
		{Amount: 200, Type: model.TypeLabor, Month: 1},
	}

	batch := e.EstimateBatch(inputs)

	require.Len(t, batch.Results, 3)
	assert.Equal(t, 2, batch.SuccessCount)

	assert.True(t, batch.Results[0].Success)
	assert.InDelta(t, 150.0, batch.Results[0].Prediction, 1e-9)

	assert.False(t, batch.Results[1].Success)
	assert.Equal(t, model.ConfidenceLow, batch.Results[1].Confidence)

	assert.True(t, batch.Results[2].Success)
	assert.InDelta(t, 200.0, batch.Results[2].Prediction, 1e-9)
}

func TestEstimator_EstimateBatchEmpty(t *testing.T) {
	batch := newTestEstimator(0).EstimateBatch(nil)

	assert.Empty(t, batch.Results)
	assert.Zero(t, batch.SuccessCount)
}

func TestEstimator_EstimateBatchContext(t *testing.T) {
	e := newTestEstimator(0.5)
	inputs := []model.PredictionInput{
		{Amount: 100, Direction: model.DirectionIncome, Month: 1},
		{Amount: 100, Direction: model.DirectionExpense, Month: 2},
		{Amount: 100, Type: model.TypeLabor, Month: 3},
	}

	t.Run("reports each result", func(t *testing.T) {
		var seen int
		batch, err := e.EstimateBatchContext(context.Background(), inputs, func(model.PredictionResult) { seen++ })
		require.NoError(t, err)
		assert.Equal(t, 3, seen)
		assert.Equal(t, 3, batch.SuccessCount)
	})

	t.Run("stops when canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		batch, err := e.EstimateBatchContext(ctx, inputs, func(model.PredictionResult) { cancel() })
		require.ErrorIs(t, err, context.Canceled)
		assert.Len(t, batch.Results, 1)
	})
}

func TestEstimator_SeededIsReproducible(t *testing.T) {
	input := model.PredictionInput{Amount: 5000, Type: model.TypeHarvest, Month: 9}

	a := NewEstimator(WithSeed(42))
	b := NewEstimator(WithSeed(42))

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Estimate(input).Prediction, b.Estimate(input).Prediction)
	}
}

func TestRoundCents(t *testing.T) {
	assert.InDelta(t, 0.13, roundCents(0.125), 1e-12)
	assert.InDelta(t, -0.13, roundCents(-0.125), 1e-12)
	assert.InDelta(t, 1.23, roundCents(1.234), 1e-12)
	assert.InDelta(t, 1200.0, roundCents(1199.999), 1e-12)
}

func TestMonthFactor(t *testing.T) {
	assert.InDelta(t, 1.2, monthFactor(harvestSeasonality, 8), 1e-12)
	assert.InDelta(t, 0.3, monthFactor(harvestSeasonality, 1), 1e-12)
	assert.InDelta(t, 0.5, monthFactor(harvestSeasonality, 12), 1e-12)
	assert.InDelta(t, 1.0, monthFactor(harvestSeasonality, 0), 1e-12)
	assert.InDelta(t, 1.0, monthFactor(laborSeasonality, -3), 1e-12)
	assert.InDelta(t, 1.5, monthFactor(laborSeasonality, 8), 1e-12)
}
