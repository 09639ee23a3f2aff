// Package scan orchestrates the pricing pipeline for one request: resolve
// the spot price, synthesize the strategy catalog, apply screens, and rank
// by risk profile.
package scan

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/contactkeval/option-scan/internal/data"
	"github.com/contactkeval/option-scan/internal/strategy"
)

// Request is the core-facing scan input. Ticker is mandatory; zero-valued
// fields take the service defaults.
type Request struct {
	Ticker        string  `json:"ticker" binding:"required"`
	RiskProfile   string  `json:"riskProfile"`
	MinDte        int     `json:"minDte"`
	MaxDte        int     `json:"maxDte"`
	MaxStrategies int     `json:"maxStrategies"`
	MaxCapital    float64 `json:"maxCapital,omitempty"`
	Filter        string  `json:"filter,omitempty"`
}

// Response is the scan output returned to the request layer.
type Response struct {
	Success      bool                `json:"success"`
	Strategies   []strategy.Strategy `json:"strategies"`
	CurrentPrice float64             `json:"currentPrice"`
	Ticker       string              `json:"ticker"`
	Error        string              `json:"error,omitempty"`
	Timestamp    string              `json:"timestamp"`
}

// Defaults are the values substituted for omitted request fields.
type Defaults struct {
	RiskProfile   string
	MinDte        int
	MaxDte        int
	MaxStrategies int
}

// Service runs the scan pipeline.
type Service struct {
	prov     data.Provider
	synth    *strategy.Synthesizer
	defaults Defaults
	log      zerolog.Logger
}

// NewService wires a scan service. synth must share its RNG with the
// pricing model it prices through (see strategy.NewSynthesizer).
func NewService(prov data.Provider, synth *strategy.Synthesizer, defaults Defaults, log zerolog.Logger) *Service {
	if defaults.RiskProfile == "" {
		defaults.RiskProfile = strategy.ProfileModerateAggressive
	}
	if defaults.MinDte == 0 {
		defaults.MinDte = 30
	}
	if defaults.MaxDte == 0 {
		defaults.MaxDte = 45
	}
	if defaults.MaxStrategies == 0 {
		defaults.MaxStrategies = strategy.DefaultMaxStrategies
	}
	return &Service{prov: prov, synth: synth, defaults: defaults, log: log}
}

// Scan executes the full pipeline for one request.
//
// Quote-source failures are absorbed by the provider chain and never
// surface here. The only error returned is an invalid screen expression,
// which the request layer maps to a client error.
func (s *Service) Scan(ctx context.Context, req Request) (Response, error) {
	ticker := data.NormalizeTicker(req.Ticker)
	s.applyDefaults(&req)

	spot, err := data.FetchSpotPrice(ctx, s.prov, ticker)
	if err != nil {
		// Unreachable with a fallback-terminated chain; treated as a
		// whole-request failure per the error taxonomy.
		return Response{}, err
	}

	s.log.Info().
		Str("ticker", ticker).
		Float64("spot", spot).
		Str("profile", req.RiskProfile).
		Int("min_dte", req.MinDte).
		Int("max_dte", req.MaxDte).
		Msg("scanning strategies")

	catalog := s.synth.Generate(ticker, spot, req.MinDte, req.MaxDte)

	if req.Filter != "" {
		catalog, err = strategy.Screen(catalog, req.Filter)
		if err != nil {
			return Response{}, err
		}
	}
	if req.MaxCapital > 0 {
		catalog = capCapital(catalog, req.MaxCapital)
	}

	ranked := strategy.Select(catalog, req.RiskProfile, req.MaxStrategies)

	resp := Response{
		Success:      len(ranked) > 0,
		Strategies:   ranked,
		CurrentPrice: spot,
		Ticker:       ticker,
		Timestamp:    time.Now().Format(time.RFC3339),
	}
	if len(ranked) == 0 {
		resp.Strategies = []strategy.Strategy{}
		resp.Error = "no viable strategies found"
	}
	return resp, nil
}

// Quote resolves just the spot price for a ticker.
func (s *Service) Quote(ctx context.Context, ticker string) (float64, error) {
	return data.FetchSpotPrice(ctx, s.prov, ticker)
}

func (s *Service) applyDefaults(req *Request) {
	if req.RiskProfile == "" {
		req.RiskProfile = s.defaults.RiskProfile
	}
	if req.MinDte == 0 {
		req.MinDte = s.defaults.MinDte
	}
	if req.MaxDte == 0 {
		req.MaxDte = s.defaults.MaxDte
	}
	if req.MaxStrategies == 0 {
		req.MaxStrategies = s.defaults.MaxStrategies
	}
}

func capCapital(strategies []strategy.Strategy, maxCapital float64) []strategy.Strategy {
	out := make([]strategy.Strategy, 0, len(strategies))
	for _, st := range strategies {
		if st.CapitalRequired <= maxCapital {
			out = append(out, st)
		}
	}
	return out
}
