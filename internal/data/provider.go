// Package data provides spot-price providers for the scan pipeline.
//
// A Provider answers one question: the current (prior-session close) price
// of an underlying. Providers chain through Secondary(): when the primary
// source fails, the caller walks down the chain, so a scan always ends up
// with a usable price and quote-source failures never surface as errors.
package data

import (
	"context"
	"strings"
)

// Provider supplies underlying spot prices by ticker symbol.
type Provider interface {
	// Secondary returns the fallback provider, or nil at the end of the chain.
	Secondary() Provider

	// SpotPrice returns the prior-session closing price for ticker.
	SpotPrice(ctx context.Context, ticker string) (float64, error)
}

// FetchSpotPrice resolves a price by walking the provider chain. The last
// provider in the chain is expected to be infallible (the static fallback),
// so a non-nil error here means the chain was misconfigured.
func FetchSpotPrice(ctx context.Context, prov Provider, ticker string) (float64, error) {
	ticker = NormalizeTicker(ticker)

	var lastErr error
	for p := prov; p != nil; p = p.Secondary() {
		price, err := p.SpotPrice(ctx, ticker)
		if err == nil {
			return price, nil
		}
		lastErr = err
	}
	return 0, lastErr
}

// NormalizeTicker upper-cases and trims a user-supplied ticker symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
