// Package chain generates the tradable contract space for an underlying:
// the strike ladder around spot and the candidate expiration dates inside a
// days-to-expiry window.
//
// Both generators are pure functions of their inputs (the calendar takes an
// explicit "today"), so they are fully deterministic and golden-testable.
package chain

import "math"

// strikeInterval returns the ladder spacing for a given spot price.
// Spacing widens with price the way listed equity option chains do.
func strikeInterval(spot float64) float64 {
	switch {
	case spot < 50:
		return 2.5
	case spot < 100:
		return 5
	case spot < 200:
		return 5
	case spot < 500:
		return 10
	default:
		return 25
	}
}

// Strikes returns an ascending, evenly spaced ladder of candidate strikes
// around spot: the nearest interval multiple plus six steps each side.
// Non-positive candidates are dropped, so very small spot prices can yield a
// ladder shorter than 13 entries.
func Strikes(spot float64) []float64 {
	interval := strikeInterval(spot)
	base := math.Round(spot/interval) * interval

	strikes := make([]float64, 0, 13)
	for i := -6; i <= 6; i++ {
		k := base + float64(i)*interval
		if k > 0 {
			strikes = append(strikes, k)
		}
	}
	return strikes
}
