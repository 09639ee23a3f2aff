package strategy

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/contactkeval/option-scan/internal/chain"
	"github.com/contactkeval/option-scan/internal/pricing"
)

const (
	// baseVol is the floor of the synthetic implied-volatility draw; the
	// draw adds up to volJitter on top. The straddle prices with an extra
	// volPremium since long-volatility entries assume an expansion.
	baseVol    = 0.35
	volJitter  = 0.15
	volPremium = 0.05

	expiryFormat = "2006-01-02"
)

// Synthesizer builds the strategy catalog for a single underlying.
//
// One Generate call computes the ladder, the expiration list, and the
// implied-volatility draw exactly once; every template prices against that
// shared context.
type Synthesizer struct {
	model *pricing.Model
	rng   *rand.Rand
	rate  float64
	now   func() time.Time
	log   zerolog.Logger
}

// NewSynthesizer wires a catalog builder.
//
// rng feeds both the implied-volatility draw and the per-template score
// jitter; the pricing model should share the same source so a seeded run is
// reproducible end to end. now supplies "today" for the expiration calendar.
func NewSynthesizer(model *pricing.Model, rng *rand.Rand, riskFreeRate float64, now func() time.Time, log zerolog.Logger) *Synthesizer {
	if now == nil {
		now = time.Now
	}
	return &Synthesizer{model: model, rng: rng, rate: riskFreeRate, now: now, log: log}
}

// buildContext is the shared per-invocation state handed to every template
// builder.
type buildContext struct {
	ticker  string
	spot    float64
	strikes []float64
	expiry  time.Time
	dte     float64
	iv      float64
}

// Generate assembles the full catalog for ticker at the given spot price.
//
// The result is unsorted and unfiltered: templates that fail their
// profitability inclusion test are simply absent, so the catalog holds
// between zero and seven strategies.
func (s *Synthesizer) Generate(ticker string, spot float64, minDte, maxDte int) []Strategy {
	today := s.now()
	strikes := chain.Strikes(spot)
	expirations := chain.Expirations(today, minDte, maxDte)

	expiry := s.primaryExpiry(today, expirations, minDte, maxDte)
	dte := float64(chain.DaysUntil(today, expiry))
	iv := baseVol + s.rng.Float64()*volJitter

	s.log.Debug().
		Str("ticker", ticker).
		Float64("spot", spot).
		Int("strikes", len(strikes)).
		Str("expiry", expiry.Format(expiryFormat)).
		Float64("dte", dte).
		Float64("iv", iv).
		Msg("synthesizing strategy catalog")

	ctx := buildContext{
		ticker:  ticker,
		spot:    spot,
		strikes: strikes,
		expiry:  expiry,
		dte:     dte,
		iv:      iv,
	}

	builders := []func(buildContext) (Strategy, bool){
		s.bullPutSpread,
		s.ironCondor,
		s.cashSecuredPut,
		s.longStraddle,
		s.coveredCall,
		s.bearCallSpread,
		s.bullCallSpread,
	}

	var out []Strategy
	for _, build := range builders {
		if st, ok := build(ctx); ok {
			out = append(out, st)
		}
	}
	return out
}

// primaryExpiry picks the first calendar candidate, or falls back to the
// Friday on or after the midpoint of the DTE window when the calendar comes
// back empty (extreme windows).
func (s *Synthesizer) primaryExpiry(today time.Time, expirations []time.Time, minDte, maxDte int) time.Time {
	if len(expirations) > 0 {
		return expirations[0]
	}
	mid := today.AddDate(0, 0, (minDte+maxDte)/2)
	return chain.NextFridayOnOrAfter(mid)
}

//
// ==========================
// Strike selection
// ==========================
//

// pickBelow returns the first ladder strike below the threshold, scanning
// in ladder order, or the fallback index when nothing qualifies. Fallback
// indices are defined against the canonical 13-strike ladder and clamped
// for ladders truncated by the positivity filter.
func pickBelow(strikes []float64, threshold float64, fallback int) float64 {
	for _, k := range strikes {
		if k < threshold {
			return k
		}
	}
	return strikes[clampIndex(fallback, len(strikes))]
}

// pickAbove returns the first ladder strike above the threshold, or the
// fallback index when nothing qualifies.
func pickAbove(strikes []float64, threshold float64, fallback int) float64 {
	for _, k := range strikes {
		if k > threshold {
			return k
		}
	}
	return strikes[clampIndex(fallback, len(strikes))]
}

// pickNear returns the first strike within tolerance of the target, or the
// fallback index when nothing qualifies.
func pickNear(strikes []float64, target, tolerance float64, fallback int) float64 {
	for _, k := range strikes {
		if math.Abs(k-target) < tolerance {
			return k
		}
	}
	return strikes[clampIndex(fallback, len(strikes))]
}

func clampIndex(i, n int) int {
	if i >= n {
		return n - 1
	}
	if i < 0 {
		return 0
	}
	return i
}

//
// ==========================
// Template builders
// ==========================
//

func (s *Synthesizer) bullPutSpread(ctx buildContext) (Strategy, bool) {
	shortK := pickBelow(ctx.strikes, 0.93*ctx.spot, 2)
	longK := pickBelow(ctx.strikes, shortK-10, 1)

	shortQ := s.model.Price(false, ctx.spot, shortK, ctx.dte, ctx.iv, s.rate)
	longQ := s.model.Price(false, ctx.spot, longK, ctx.dte, ctx.iv, s.rate)

	credit := shortQ.Price - longQ.Price
	if credit <= 0.05 {
		return Strategy{}, false
	}

	width := shortK - longK
	risk := math.Max(width-credit, 0)
	confidence, probability := s.score("Bull Put Spread")

	return Strategy{
		ID:                  strategyID("Bull Put Spread", ctx.ticker),
		Name:                "Bull Put Spread",
		Category:            Bullish,
		Confidence:          confidence,
		MaxProfit:           roundCurrency(credit * ContractMultiplier),
		MaxLoss:             -roundCurrency(risk * ContractMultiplier),
		CapitalRequired:     roundCurrency(risk * ContractMultiplier),
		ProbabilityOfProfit: probability,
		Description: fmt.Sprintf("Sell 1 put at $%.2f, buy 1 put at $%.2f, expiring %s",
			shortK, longK, ctx.expiry.Format(expiryFormat)),
		Legs: []Leg{
			newLeg(Put, Sell, shortK, ctx.expiry, shortQ),
			newLeg(Put, Buy, longK, ctx.expiry, longQ),
		},
		Greeks:          aggregateGreeks(legGreeks{shortQ.Greeks, -1}, legGreeks{longQ.Greeks, 1}),
		BreakEvenPoints: []float64{shortK - credit},
	}, true
}

func (s *Synthesizer) ironCondor(ctx buildContext) (Strategy, bool) {
	shortCall := pickAbove(ctx.strikes, 1.07*ctx.spot, 6)
	longCall := pickAbove(ctx.strikes, shortCall+10, 7)
	shortPut := pickBelow(ctx.strikes, 0.93*ctx.spot, 2)
	longPut := pickBelow(ctx.strikes, shortPut-10, 1)

	shortCallQ := s.model.Price(true, ctx.spot, shortCall, ctx.dte, ctx.iv, s.rate)
	longCallQ := s.model.Price(true, ctx.spot, longCall, ctx.dte, ctx.iv, s.rate)
	shortPutQ := s.model.Price(false, ctx.spot, shortPut, ctx.dte, ctx.iv, s.rate)
	longPutQ := s.model.Price(false, ctx.spot, longPut, ctx.dte, ctx.iv, s.rate)

	credit := shortCallQ.Price + shortPutQ.Price - longCallQ.Price - longPutQ.Price
	if credit <= 0.10 {
		return Strategy{}, false
	}

	width := math.Max(longCall-shortCall, shortPut-longPut)
	risk := math.Max(width-credit, 0)
	confidence, probability := s.score("Iron Condor")

	return Strategy{
		ID:                  strategyID("Iron Condor", ctx.ticker),
		Name:                "Iron Condor",
		Category:            Neutral,
		Confidence:          confidence,
		MaxProfit:           roundCurrency(credit * ContractMultiplier),
		MaxLoss:             -roundCurrency(risk * ContractMultiplier),
		CapitalRequired:     roundCurrency(risk * ContractMultiplier),
		ProbabilityOfProfit: probability,
		Description: fmt.Sprintf("Profit zone between $%.2f and $%.2f, expiring %s",
			shortPut-credit, shortCall+credit, ctx.expiry.Format(expiryFormat)),
		Legs: []Leg{
			newLeg(Call, Sell, shortCall, ctx.expiry, shortCallQ),
			newLeg(Call, Buy, longCall, ctx.expiry, longCallQ),
			newLeg(Put, Sell, shortPut, ctx.expiry, shortPutQ),
			newLeg(Put, Buy, longPut, ctx.expiry, longPutQ),
		},
		Greeks: aggregateGreeks(
			legGreeks{shortCallQ.Greeks, -1},
			legGreeks{longCallQ.Greeks, 1},
			legGreeks{shortPutQ.Greeks, -1},
			legGreeks{longPutQ.Greeks, 1},
		),
		BreakEvenPoints: []float64{shortPut - credit, shortCall + credit},
	}, true
}

func (s *Synthesizer) cashSecuredPut(ctx buildContext) (Strategy, bool) {
	strike := pickBelow(ctx.strikes, 0.95*ctx.spot, 3)
	q := s.model.Price(false, ctx.spot, strike, ctx.dte, ctx.iv, s.rate)
	confidence, probability := s.score("Cash Secured Put")

	return Strategy{
		ID:                  strategyID("Cash Secured Put", ctx.ticker),
		Name:                "Cash Secured Put",
		Category:            Bullish,
		Confidence:          confidence,
		MaxProfit:           roundCurrency(q.Price * ContractMultiplier),
		MaxLoss:             -roundCurrency((strike - q.Price) * ContractMultiplier),
		CapitalRequired:     roundCurrency(strike * ContractMultiplier),
		ProbabilityOfProfit: probability,
		Description: fmt.Sprintf("Sell 1 put at $%.2f strike, secured with $%.0f cash, expiring %s",
			strike, strike*ContractMultiplier, ctx.expiry.Format(expiryFormat)),
		Legs: []Leg{
			newLeg(Put, Sell, strike, ctx.expiry, q),
		},
		Greeks:          aggregateGreeks(legGreeks{q.Greeks, -1}),
		BreakEvenPoints: []float64{strike - q.Price},
	}, true
}

func (s *Synthesizer) longStraddle(ctx buildContext) (Strategy, bool) {
	strike := pickNear(ctx.strikes, ctx.spot, 5, 4)

	// Long-volatility entry prices with a vol premium over the shared draw.
	iv := ctx.iv + volPremium
	callQ := s.model.Price(true, ctx.spot, strike, ctx.dte, iv, s.rate)
	putQ := s.model.Price(false, ctx.spot, strike, ctx.dte, iv, s.rate)

	debit := callQ.Price + putQ.Price
	confidence, probability := s.score("Long Straddle")

	return Strategy{
		ID:                  strategyID("Long Straddle", ctx.ticker),
		Name:                "Long Straddle",
		Category:            Volatility,
		Confidence:          confidence,
		MaxProfit:           UnboundedProfit,
		MaxLoss:             -roundCurrency(debit * ContractMultiplier),
		CapitalRequired:     roundCurrency(debit * ContractMultiplier),
		ProbabilityOfProfit: probability,
		Description: fmt.Sprintf("Buy 1 call and 1 put at $%.2f strike, expiring %s",
			strike, ctx.expiry.Format(expiryFormat)),
		Legs: []Leg{
			newLeg(Call, Buy, strike, ctx.expiry, callQ),
			newLeg(Put, Buy, strike, ctx.expiry, putQ),
		},
		Greeks:          aggregateGreeks(legGreeks{callQ.Greeks, 1}, legGreeks{putQ.Greeks, 1}),
		BreakEvenPoints: []float64{strike - debit, strike + debit},
	}, true
}

func (s *Synthesizer) coveredCall(ctx buildContext) (Strategy, bool) {
	strike := pickAbove(ctx.strikes, 1.05*ctx.spot, 6)
	q := s.model.Price(true, ctx.spot, strike, ctx.dte, ctx.iv, s.rate)
	confidence, probability := s.score("Covered Call")

	// The owned 100 shares add one synthetic delta on top of the short call.
	greeks := aggregateGreeks(legGreeks{q.Greeks, -1})
	greeks.Delta = round2(greeks.Delta + 1)

	return Strategy{
		ID:                  strategyID("Covered Call", ctx.ticker),
		Name:                "Covered Call",
		Category:            Bullish,
		Confidence:          confidence,
		MaxProfit:           roundCurrency(((strike - ctx.spot) + q.Price) * ContractMultiplier),
		MaxLoss:             -roundCurrency((ctx.spot - q.Price) * ContractMultiplier),
		CapitalRequired:     roundCurrency(ctx.spot * ContractMultiplier),
		ProbabilityOfProfit: probability,
		Description: fmt.Sprintf("Own 100 shares, sell 1 call at $%.2f strike, expiring %s",
			strike, ctx.expiry.Format(expiryFormat)),
		Legs: []Leg{
			newLeg(Call, Sell, strike, ctx.expiry, q),
		},
		Greeks:          greeks,
		BreakEvenPoints: []float64{ctx.spot - q.Price},
	}, true
}

func (s *Synthesizer) bearCallSpread(ctx buildContext) (Strategy, bool) {
	shortK := pickAbove(ctx.strikes, 1.02*ctx.spot, 5)
	longK := pickAbove(ctx.strikes, shortK+10, 6)

	shortQ := s.model.Price(true, ctx.spot, shortK, ctx.dte, ctx.iv, s.rate)
	longQ := s.model.Price(true, ctx.spot, longK, ctx.dte, ctx.iv, s.rate)

	credit := shortQ.Price - longQ.Price
	if credit <= 0.05 {
		return Strategy{}, false
	}

	width := longK - shortK
	risk := math.Max(width-credit, 0)
	confidence, probability := s.score("Bear Call Spread")

	return Strategy{
		ID:                  strategyID("Bear Call Spread", ctx.ticker),
		Name:                "Bear Call Spread",
		Category:            Bearish,
		Confidence:          confidence,
		MaxProfit:           roundCurrency(credit * ContractMultiplier),
		MaxLoss:             -roundCurrency(risk * ContractMultiplier),
		CapitalRequired:     roundCurrency(risk * ContractMultiplier),
		ProbabilityOfProfit: probability,
		Description: fmt.Sprintf("Sell 1 call at $%.2f, buy 1 call at $%.2f, expiring %s",
			shortK, longK, ctx.expiry.Format(expiryFormat)),
		Legs: []Leg{
			newLeg(Call, Sell, shortK, ctx.expiry, shortQ),
			newLeg(Call, Buy, longK, ctx.expiry, longQ),
		},
		Greeks:          aggregateGreeks(legGreeks{shortQ.Greeks, -1}, legGreeks{longQ.Greeks, 1}),
		BreakEvenPoints: []float64{shortK + credit},
	}, true
}

func (s *Synthesizer) bullCallSpread(ctx buildContext) (Strategy, bool) {
	longK := pickAbove(ctx.strikes, 1.02*ctx.spot, 5)
	shortK := pickAbove(ctx.strikes, longK+10, 6)

	longQ := s.model.Price(true, ctx.spot, longK, ctx.dte, ctx.iv, s.rate)
	shortQ := s.model.Price(true, ctx.spot, shortK, ctx.dte, ctx.iv, s.rate)

	debit := longQ.Price - shortQ.Price
	width := shortK - longK
	maxProfit := width - debit
	if debit <= 0 || maxProfit <= 0.10 {
		return Strategy{}, false
	}

	confidence, probability := s.score("Bull Call Spread")

	return Strategy{
		ID:                  strategyID("Bull Call Spread", ctx.ticker),
		Name:                "Bull Call Spread",
		Category:            Bullish,
		Confidence:          confidence,
		MaxProfit:           roundCurrency(maxProfit * ContractMultiplier),
		MaxLoss:             -roundCurrency(debit * ContractMultiplier),
		CapitalRequired:     roundCurrency(debit * ContractMultiplier),
		ProbabilityOfProfit: probability,
		Description: fmt.Sprintf("Buy 1 call at $%.2f, sell 1 call at $%.2f, expiring %s",
			longK, shortK, ctx.expiry.Format(expiryFormat)),
		Legs: []Leg{
			newLeg(Call, Buy, longK, ctx.expiry, longQ),
			newLeg(Call, Sell, shortK, ctx.expiry, shortQ),
		},
		Greeks:          aggregateGreeks(legGreeks{longQ.Greeks, 1}, legGreeks{shortQ.Greeks, -1}),
		BreakEvenPoints: []float64{longK + debit},
	}, true
}

//
// ==========================
// Leg and Greek helpers
// ==========================
//

func newLeg(kind Kind, action Side, strike float64, expiry time.Time, q pricing.Quote) Leg {
	return Leg{
		Kind:     kind,
		Action:   action,
		Strike:   strike,
		Expiry:   expiry.Format(expiryFormat),
		Quantity: 1,
		Premium:  q.Price,
		Greeks:   q.Greeks,
	}
}

// legGreeks pairs a leg's Greeks with its position sign: +1 for bought legs,
// -1 for sold legs.
type legGreeks struct {
	g    pricing.Greeks
	sign float64
}

// aggregateGreeks sums leg Greeks under the position sign convention and
// re-rounds to the presentation precision of the pricing package.
func aggregateGreeks(legs ...legGreeks) pricing.Greeks {
	var out pricing.Greeks
	for _, l := range legs {
		out.Delta += l.sign * l.g.Delta
		out.Gamma += l.sign * l.g.Gamma
		out.Theta += l.sign * l.g.Theta
		out.Vega += l.sign * l.g.Vega
	}
	out.Delta = round2(out.Delta)
	out.Gamma = round3(out.Gamma)
	out.Theta = round2(out.Theta)
	out.Vega = round2(out.Vega)
	return out
}

func strategyID(name, ticker string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_") + "_" + ticker
}

func roundCurrency(v float64) float64 { return math.Round(v) }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
