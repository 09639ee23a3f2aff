// Package strategy composes priced option legs into named multi-leg
// strategies, computes aggregate risk metrics and break-even points, and
// filters the result by profitability and risk profile.
//
// Responsibilities:
//   - A fixed catalog of strategy templates (single-leg, spreads, combos)
//   - Template-specific strike selection against the chain ladder
//   - Premium, payoff, Greek, and break-even aggregation per structure
//   - Confidence-based ranking with risk-profile thresholds
//
// Design notes:
//   - All strategies in one Generate call share one ladder, one primary
//     expiry, and one implied-volatility draw, so the catalog is internally
//     consistent even though individual premiums carry market noise.
//   - Confidence and probability-of-profit are heuristic presentation
//     scores drawn from the scoreTable, not model outputs.
package strategy

import (
	"github.com/contactkeval/option-scan/internal/pricing"
)

// Category classifies the directional bias of a strategy.
type Category string

const (
	Bullish    Category = "bullish"
	Bearish    Category = "bearish"
	Neutral    Category = "neutral"
	Volatility Category = "volatility"
)

// Side is the order action of a leg.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Kind is the option contract type of a leg.
type Kind string

const (
	Call Kind = "call"
	Put  Kind = "put"
)

// UnboundedProfit is the sentinel reported for structures whose payoff has
// no upper bound (long straddle).
const UnboundedProfit = 99999.0

// ContractMultiplier scales per-share option values to per-contract
// currency amounts.
const ContractMultiplier = 100.0

// Leg is one option contract within a strategy. The Greeks of the leg's
// pricing quote are flattened into the leg itself.
type Leg struct {
	Kind     Kind    `json:"type"`
	Action   Side    `json:"action"`
	Strike   float64 `json:"strike"`
	Expiry   string  `json:"expiry"`
	Quantity int     `json:"quantity"`
	Premium  float64 `json:"premium"`
	pricing.Greeks
}

// Strategy is a fully assembled multi-leg position with its risk metrics.
//
// Invariants: Legs is non-empty, MaxLoss <= 0, CapitalRequired >= 0, and
// BreakEvenPoints is non-empty and ascending. All strikes come from the same
// ladder and all legs share the primary expiry.
type Strategy struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Category            Category       `json:"type"`
	Confidence          float64        `json:"confidence"`
	MaxProfit           float64        `json:"maxProfit"`
	MaxLoss             float64        `json:"maxLoss"`
	CapitalRequired     float64        `json:"capitalRequired"`
	ProbabilityOfProfit float64        `json:"probabilityOfProfit"`
	Description         string         `json:"description"`
	Legs                []Leg          `json:"legs"`
	Greeks              pricing.Greeks `json:"greeks"`
	BreakEvenPoints     []float64      `json:"breakEvenPoints"`
}
