package strategy

import "sort"

// Risk profiles accepted by Select. An unrecognized profile falls through
// to aggressive (no filtering).
const (
	ProfileConservative       = "conservative"
	ProfileModerate           = "moderate"
	ProfileModerateAggressive = "moderate_aggressive"
	ProfileAggressive         = "aggressive"
)

// DefaultMaxStrategies bounds the ranked result when the caller does not
// ask for a specific count.
const DefaultMaxStrategies = 5

// minConfidence returns the confidence floor of a risk profile.
func minConfidence(profile string) float64 {
	switch profile {
	case ProfileConservative:
		return 65
	case ProfileModerate:
		return 60
	case ProfileModerateAggressive:
		return 55
	default:
		return 0
	}
}

// Select filters the catalog by risk profile, ranks it by confidence, and
// truncates to maxCount entries.
//
// The conservative profile additionally excludes pure-volatility structures
// regardless of their confidence. Sorting is stable, so equal-confidence
// strategies keep their catalog order.
func Select(strategies []Strategy, profile string, maxCount int) []Strategy {
	if maxCount <= 0 {
		maxCount = DefaultMaxStrategies
	}

	floor := minConfidence(profile)
	out := make([]Strategy, 0, len(strategies))
	for _, st := range strategies {
		if st.Confidence < floor {
			continue
		}
		if profile == ProfileConservative && st.Category == Volatility {
			continue
		}
		out = append(out, st)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})

	if len(out) > maxCount {
		out = out[:maxCount]
	}
	return out
}
