package yield

// harvestSeasonality is the relative harvest volume for each month, January first.
var harvestSeasonality = [12]float64{0.3, 0.4, 0.6, 0.8, 0.9, 0.95, 1.0, 1.2, 1.1, 0.9, 0.7, 0.5}

// laborSeasonality is the relative labor cost for each month, January first.
var laborSeasonality = [12]float64{1.0, 1.0, 1.2, 1.3, 1.4, 1.2, 1.1, 1.5, 1.3, 1.1, 1.0, 1.0}

// Random draw ranges, half-open [min, max).
var (
	weatherRange   = factorRange{min: 0.85, max: 1.15}
	marketRange    = factorRange{min: 0.95, max: 1.05}
	inflationRange = factorRange{min: 1.02, max: 1.10}
	incomeRange    = factorRange{min: 0.98, max: 1.06}
	expenseRange   = factorRange{min: 1.01, max: 1.05}
)

// Profit margin thresholds and the adjustments they trigger.
const (
	lowMarginThreshold  = 0.10
	highMarginThreshold = 0.30
	lowMarginFactor     = 0.95
	highMarginFactor    = 1.05
)

type factorRange struct {
	min float64
	max float64
}

// draw maps a uniform value in [0, 1) onto the range.
func (r factorRange) draw(rng Random) float64 {
	return r.min + rng.Float64()*(r.max-r.min)
}

// monthFactor returns table[month-1], or 1.0 when month is outside 1..12.
func monthFactor(table [12]float64, month int) float64 {
	if month < 1 || month > 12 {
		return 1.0
	}
	return table[month-1]
}
