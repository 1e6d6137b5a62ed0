package dashboard

import "math"

// computeTrend compares a current-window scalar to the previous-window
// scalar. Convention for a zero previous value: current > 0 counts as
// +100% positive, current == 0 is neutral. This keeps the result finite
// instead of dividing by zero.
func computeTrend(current, previous float64) Trend {
	if previous == 0 {
		if current > 0 {
			return Trend{Value: 100, Type: TrendPositive}
		}
		return Trend{Value: 0, Type: TrendNeutral}
	}

	change := round1((current - previous) / previous * 100)
	switch {
	case change > 0:
		return Trend{Value: change, Type: TrendPositive}
	case change < 0:
		return Trend{Value: change, Type: TrendNegative}
	default:
		return Trend{Value: 0, Type: TrendNeutral}
	}
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
