package strategy

// scoreSpec holds the heuristic presentation scores of one template:
// a base confidence (percent) and base probability of profit (0..1), each
// widened by an independent uniform jitter drawn per invocation.
//
// These constants are tuning knobs with no derivation from market data.
// They are kept in one table so tests can assert jitter ranges without
// recomputing formulas, and so the risk-profile thresholds (55/60/65)
// stay discriminating across the catalog.
type scoreSpec struct {
	BaseConfidence    float64
	ConfidenceJitter  float64
	BaseProbability   float64
	ProbabilityJitter float64
}

var scoreTable = map[string]scoreSpec{
	"Bull Put Spread":  {BaseConfidence: 72, ConfidenceJitter: 6, BaseProbability: 0.70, ProbabilityJitter: 0.08},
	"Iron Condor":      {BaseConfidence: 65, ConfidenceJitter: 8, BaseProbability: 0.68, ProbabilityJitter: 0.07},
	"Cash Secured Put": {BaseConfidence: 70, ConfidenceJitter: 8, BaseProbability: 0.74, ProbabilityJitter: 0.06},
	"Long Straddle":    {BaseConfidence: 55, ConfidenceJitter: 10, BaseProbability: 0.42, ProbabilityJitter: 0.10},
	"Covered Call":     {BaseConfidence: 68, ConfidenceJitter: 8, BaseProbability: 0.70, ProbabilityJitter: 0.08},
	"Bear Call Spread": {BaseConfidence: 62, ConfidenceJitter: 8, BaseProbability: 0.64, ProbabilityJitter: 0.08},
	"Bull Call Spread": {BaseConfidence: 64, ConfidenceJitter: 8, BaseProbability: 0.52, ProbabilityJitter: 0.10},
}

// score draws the jittered confidence and probability for a template.
func (s *Synthesizer) score(name string) (confidence, probability float64) {
	spec := scoreTable[name]
	confidence = clamp(spec.BaseConfidence+s.rng.Float64()*spec.ConfidenceJitter, 0, 100)
	probability = clamp(spec.BaseProbability+s.rng.Float64()*spec.ProbabilityJitter, 0, 1)
	return confidence, probability
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
