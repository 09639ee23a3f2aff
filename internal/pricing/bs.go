// Package pricing implements closed-form European option valuation.
//
// Responsibilities:
//   - Black-Scholes theoretical price for calls and puts
//   - First-order Greeks (delta, gamma, theta, vega)
//   - A bounded bid/ask-style perturbation applied to quoted prices
//
// Design notes:
//   - The standard normal CDF uses a rational error-function approximation
//     (Abramowitz & Stegun 7.1.26, |error| <= 1.5e-7) rather than math.Erf,
//     so the numeric behavior is identical across platforms and matches the
//     reference implementation digit for digit.
//   - Quote prices are deliberately non-deterministic: every evaluation draws
//     an independent multiplier from [0.95, 1.05]. Callers that need
//     reproducible output inject a seeded rand.Rand into the Model.
package pricing

import (
	"math"
	"math/rand"
)

const sqrt2Pi = 2.5066282746310002

const (
	// MinTick floors every quoted premium. Deep OTM contracts never quote
	// below a nickel.
	MinTick = 0.05

	// noiseBand is the half-width of the uniform multiplier applied to the
	// theoretical price to mimic bid/ask spread noise.
	noiseBand = 0.05

	// DaysPerYear converts calendar days to year fractions for the
	// time-scaled terms of the model.
	DaysPerYear = 365.0
)

// Greeks holds the first-order sensitivities of an option price.
//
// Theta is quoted per calendar day (annual theta / 365); vega is quoted per
// one percentage point of volatility. Values are rounded for presentation:
// delta and vega to 2 decimals, gamma to 3, and theta to 2 decimals before
// the per-day division.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
}

// Quote is a single evaluation of the pricing model: a perturbed premium
// plus the Greeks of the theoretical price.
//
// Quotes are not cacheable. Two calls with identical inputs may legitimately
// return different premiums because of the market-noise multiplier.
type Quote struct {
	Price  float64 `json:"price"`
	Greeks Greeks  `json:"greeks"`
}

// Model evaluates option quotes using an injected source of randomness.
type Model struct {
	rng *rand.Rand
}

// NewModel returns a Model drawing market noise from rng.
// Tests substitute a fixed-seed source to obtain reproducible quotes.
func NewModel(rng *rand.Rand) *Model {
	return &Model{rng: rng}
}

// Price evaluates a European option and returns a perturbed quote.
//
// Parameters:
//   - isCall: true for a call, false for a put
//   - spot: underlying price
//   - strike: option strike
//   - daysToExpiry: calendar days until expiration
//   - sigma: annualized volatility (decimal)
//   - rate: annual risk-free rate (decimal)
//
// Expired or same-day contracts (daysToExpiry <= 0) are valued at intrinsic
// with a binary delta and zero gamma/theta/vega; this avoids the division by
// zero in the time-scaled terms of the closed-form model.
func (m *Model) Price(isCall bool, spot, strike, daysToExpiry, sigma, rate float64) Quote {
	if daysToExpiry <= 0 {
		return intrinsicQuote(isCall, spot, strike)
	}

	T := daysToExpiry / DaysPerYear
	d1 := (math.Log(spot/strike) + (rate+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
	d2 := d1 - sigma*math.Sqrt(T)

	var price, delta, annualTheta float64
	decay := -(spot * normPDF(d1) * sigma) / (2 * math.Sqrt(T))
	if isCall {
		price = spot*normCDF(d1) - strike*math.Exp(-rate*T)*normCDF(d2)
		delta = normCDF(d1)
		annualTheta = decay - rate*strike*math.Exp(-rate*T)*normCDF(d2)
	} else {
		price = strike*math.Exp(-rate*T)*normCDF(-d2) - spot*normCDF(-d1)
		delta = normCDF(d1) - 1
		annualTheta = decay + rate*strike*math.Exp(-rate*T)*normCDF(-d2)
	}

	gamma := normPDF(d1) / (spot * sigma * math.Sqrt(T))
	vega := spot * normPDF(d1) * math.Sqrt(T) / 100

	// Bid/ask noise: one independent draw per evaluation, then the tick floor.
	price *= 1 - noiseBand + m.rng.Float64()*2*noiseBand
	price = math.Max(price, MinTick)

	return Quote{
		Price: price,
		Greeks: Greeks{
			Delta: round2(delta),
			Gamma: round3(gamma),
			Theta: round2(annualTheta) / DaysPerYear,
			Vega:  round2(vega),
		},
	}
}

// intrinsicQuote values a zero-time contract. Delta is 1 (call) or -1 (put)
// when the contract is in the money and 0 otherwise.
func intrinsicQuote(isCall bool, spot, strike float64) Quote {
	var price, delta float64
	if isCall {
		price = math.Max(spot-strike, 0)
		if spot > strike {
			delta = 1
		}
	} else {
		price = math.Max(strike-spot, 0)
		if strike > spot {
			delta = -1
		}
	}
	return Quote{Price: price, Greeks: Greeks{Delta: delta}}
}

// BlackScholesPrice returns the un-perturbed theoretical value of a European
// option. Exposed separately so invariants such as put-call parity can be
// checked before the market-noise multiplier is applied.
func BlackScholesPrice(isCall bool, spot, strike, T, rate, sigma float64) float64 {
	if T <= 0 || sigma <= 0 {
		if isCall {
			return math.Max(spot-strike, 0)
		}
		return math.Max(strike-spot, 0)
	}

	d1 := (math.Log(spot/strike) + (rate+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
	d2 := d1 - sigma*math.Sqrt(T)

	if isCall {
		return spot*normCDF(d1) - strike*math.Exp(-rate*T)*normCDF(d2)
	}
	return strike*math.Exp(-rate*T)*normCDF(-d2) - spot*normCDF(-d1)
}

// normPDF is the standard normal probability density at x.
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / sqrt2Pi
}

// normCDF is the standard normal cumulative distribution at x, computed via
// the Abramowitz & Stegun 7.1.26 rational approximation of erf.
// Maximum absolute error is about 1.5e-7, well inside the rounding applied
// to every Greek before it leaves this package.
func normCDF(x float64) float64 {
	return 0.5 * (1 + erfApprox(x/math.Sqrt2))
}

// erfApprox approximates the error function with a five-term rational
// polynomial (Abramowitz & Stegun, Handbook of Mathematical Functions,
// formula 7.1.26).
func erfApprox(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1.0
		x = -x
	}

	const (
		a1 = 0.254829592
		a2 = -0.284496736
		a3 = 1.421413741
		a4 = -1.453152027
		a5 = 1.061405429
		p  = 0.3275911
	)

	t := 1 / (1 + p*x)
	y := 1 - ((((a5*t+a4)*t+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)
	return sign * y
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
