package model

import "time"

// Direction indicates whether a record brings money in or takes it out.
type Direction string

const (
	// DirectionIncome represents money coming in.
	DirectionIncome Direction = "income"
	// DirectionExpense represents money going out.
	DirectionExpense Direction = "expense"
)

// Confidence is a coarse qualitative tag attached to an estimate.
type Confidence string

// Confidence labels, lowest first.
const (
	ConfidenceLow    Confidence = "Faible"
	ConfidenceMedium Confidence = "Moyenne"
	ConfidenceHigh   Confidence = "Élevée"
)

// Record types that get a dedicated adjustment rule.
const (
	TypeHarvest = "Récolte"
	TypeInputs  = "Intrants"
	TypeLabor   = "Main-d'œuvre"
)

// PredictionInput is a transaction-like record fed to the yield estimator.
type PredictionInput struct {
	Seasonality   *float64  `json:"seasonality,omitempty" yaml:"seasonality,omitempty"`
	TotalIncome   *float64  `json:"total_income,omitempty" yaml:"total_income,omitempty"`
	TotalExpenses *float64  `json:"total_expenses,omitempty" yaml:"total_expenses,omitempty"`
	Direction     Direction `json:"category" yaml:"category"`
	Type          string    `json:"type" yaml:"type"`
	Description   string    `json:"description,omitempty" yaml:"description,omitempty"`
	Amount        float64   `json:"amount" yaml:"amount"`
	Month         int       `json:"month" yaml:"month"`
}

// PredictionResult is the outcome of a single estimate.
type PredictionResult struct {
	Timestamp  time.Time  `json:"timestamp,omitempty"`
	Confidence Confidence `json:"confidence,omitempty"`
	Message    string     `json:"message,omitempty"`
	Prediction float64    `json:"prediction,omitempty"`
	Success    bool       `json:"success"`
}

// BatchResult collects the results of an ordered batch of estimates.
type BatchResult struct {
	Results      []PredictionResult `json:"results"`
	SuccessCount int                `json:"success_count"`
}

// Float64Ptr returns a pointer to f, for the optional input fields.
func Float64Ptr(f float64) *float64 {
	return &f
}
