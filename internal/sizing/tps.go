package sizing

import (
	"github.com/kubeplan/kubeplan/internal/errors"
	"github.com/kubeplan/kubeplan/pkg/model"
)

const (
	secondsPerFullDay     = 24 * 3600
	secondsPerEightHourDay = 8 * 3600
)

// projectionWindows are the fixed windows every report projects over.
var projectionWindows = []struct {
	name    string
	seconds int64
}{
	{"1m", 60},
	{"1h", 3600},
	{"8h", 8 * 3600},
	{"1d", secondsPerFullDay},
	{"30d-24h", 30 * secondsPerFullDay},
	{"30d-8h", 30 * secondsPerEightHourDay},
}

// DeriveTPS resolves the forecast TPS from a SizingInput.
//
// In total-transactions mode the divisor is periodDays * 86400 for a 24x7
// window and periodDays * 28800 for an 8-hour business day. A zero or
// omitted PeriodDays is coerced to 1, matching the default substitution
// the original sizing tool performed.
func DeriveTPS(in model.SizingInput) (float64, error) {
	switch in.ForecastMode {
	case model.ForecastDirectTPS, "":
		if in.AdditionalTPS < 0 {
			return 0, errors.NewInvalidInput("additional_tps", "must be >= 0")
		}
		return in.AdditionalTPS, nil

	case model.ForecastTotalTransactions:
		if in.TotalTransactions < 0 {
			return 0, errors.NewInvalidInput("total_transactions", "must be >= 0")
		}
		if in.PeriodDays < 0 {
			return 0, errors.NewInvalidInput("period_days", "must be >= 0")
		}
		days := in.PeriodDays
		if days == 0 {
			days = 1
		}
		secondsPerDay := int64(secondsPerFullDay)
		switch in.DerivationWindow {
		case model.WindowTwentyFourBySeven, "":
		case model.WindowEightHourDay:
			secondsPerDay = secondsPerEightHourDay
		default:
			return 0, errors.NewInvalidInput("derivation_window", "must be 24x7 or 8h-day")
		}
		return in.TotalTransactions / (days * float64(secondsPerDay)), nil

	default:
		return 0, errors.NewInvalidInput("forecast_mode", "must be direct-tps or total-transactions")
	}
}

// ProjectTransactions multiplies the forecast TPS out over the fixed
// projection windows. Pure multiplication, no special cases.
func ProjectTransactions(tps float64) []model.Projection {
	out := make([]model.Projection, len(projectionWindows))
	for i, w := range projectionWindows {
		out[i] = model.Projection{
			Window:       w.name,
			Seconds:      w.seconds,
			Transactions: tps * float64(w.seconds),
		}
	}
	return out
}
