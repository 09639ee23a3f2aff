package data

import (
	"context"
	"math/rand"
)

// fallbackPrices is the static table of known-ticker closes used when no
// live provider is reachable. The values are fixed reference prices, not
// live data; tests rely on them being stable.
var fallbackPrices = map[string]float64{
	"AAPL":  175.50,
	"MSFT":  378.25,
	"GOOGL": 142.75,
	"TSLA":  248.90,
	"SPY":   443.20,
	"QQQ":   376.85,
	"IWM":   192.30,
	"NVDA":  498.75,
}

// fallbackProvider terminates the provider chain. Known tickers resolve
// from the static table; unknown tickers get a pseudo-random price in
// [100, 300), so a second call for the same unknown ticker may differ.
type fallbackProvider struct {
	rng *rand.Rand
}

// NewFallbackProvider returns the infallible end-of-chain provider.
func NewFallbackProvider(rng *rand.Rand) Provider {
	return &fallbackProvider{rng: rng}
}

func (p *fallbackProvider) Secondary() Provider { return nil }

func (p *fallbackProvider) SpotPrice(_ context.Context, ticker string) (float64, error) {
	if price, ok := fallbackPrices[NormalizeTicker(ticker)]; ok {
		return price, nil
	}
	return 100 + p.rng.Float64()*200, nil
}
