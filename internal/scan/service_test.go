package scan

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-scan/internal/data"
	"github.com/contactkeval/option-scan/internal/pricing"
	"github.com/contactkeval/option-scan/internal/strategy"
	"github.com/contactkeval/option-scan/internal/testutil"
)

type stubProvider struct {
	price float64
}

func (s stubProvider) Secondary() data.Provider { return nil }

func (s stubProvider) SpotPrice(context.Context, string) (float64, error) {
	return s.price, nil
}

func newTestService(spot float64, seed int64) *Service {
	rng := testutil.NewRand(seed)
	model := pricing.NewModel(rng)
	now := func() time.Time { return time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC) }
	synth := strategy.NewSynthesizer(model, rng, 0.05, now, zerolog.Nop())
	return NewService(stubProvider{price: spot}, synth, Defaults{}, zerolog.Nop())
}

// End-to-end shape check at spot 200 with the widest profile.
func TestScanSpot200Aggressive(t *testing.T) {
	svc := newTestService(200, 1)

	resp, err := svc.Scan(context.Background(), Request{
		Ticker:        "aapl",
		RiskProfile:   strategy.ProfileAggressive,
		MinDte:        30,
		MaxDte:        45,
		MaxStrategies: 7,
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "AAPL", resp.Ticker, "ticker is uppercased")
	assert.Equal(t, 200.0, resp.CurrentPrice)
	assert.NotEmpty(t, resp.Timestamp)

	require.NotEmpty(t, resp.Strategies)
	assert.LessOrEqual(t, len(resp.Strategies), 7)
	for _, st := range resp.Strategies {
		assert.GreaterOrEqual(t, st.CapitalRequired, 0.0)
		assert.Contains(t, []int{1, 2, 4}, len(st.Legs))
	}
	for i := 1; i < len(resp.Strategies); i++ {
		assert.GreaterOrEqual(t, resp.Strategies[i-1].Confidence, resp.Strategies[i].Confidence)
	}
}

func TestScanAppliesDefaults(t *testing.T) {
	svc := newTestService(175.50, 2)

	resp, err := svc.Scan(context.Background(), Request{Ticker: "AAPL"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.LessOrEqual(t, len(resp.Strategies), strategy.DefaultMaxStrategies)
}

func TestScanConservativeExcludesVolatility(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		svc := newTestService(200, seed)

		resp, err := svc.Scan(context.Background(), Request{
			Ticker:      "SPY",
			RiskProfile: strategy.ProfileConservative,
		})
		require.NoError(t, err)

		for _, st := range resp.Strategies {
			assert.NotEqual(t, strategy.Volatility, st.Category)
		}
	}
}

func TestScanMaxCapital(t *testing.T) {
	svc := newTestService(200, 3)

	resp, err := svc.Scan(context.Background(), Request{
		Ticker:      "TSLA",
		RiskProfile: strategy.ProfileAggressive,
		MaxCapital:  5000,
	})
	require.NoError(t, err)

	for _, st := range resp.Strategies {
		assert.LessOrEqual(t, st.CapitalRequired, 5000.0)
	}
}

func TestScanFilterExpression(t *testing.T) {
	svc := newTestService(200, 4)

	resp, err := svc.Scan(context.Background(), Request{
		Ticker:      "QQQ",
		RiskProfile: strategy.ProfileAggressive,
		Filter:      "legs <= 2",
	})
	require.NoError(t, err)

	for _, st := range resp.Strategies {
		assert.LessOrEqual(t, len(st.Legs), 2)
	}
}

func TestScanInvalidFilter(t *testing.T) {
	svc := newTestService(200, 5)

	_, err := svc.Scan(context.Background(), Request{
		Ticker: "QQQ",
		Filter: "&&&",
	})
	assert.ErrorIs(t, err, strategy.ErrInvalidScreenExpression)
}

// The serve wiring shares one generator across request goroutines, so a
// service built on a locked source must survive parallel scans. Run under
// the race detector this catches any unsynchronized-source regression.
func TestScanConcurrent(t *testing.T) {
	rng := pricing.NewLockedRand(1)
	model := pricing.NewModel(rng)
	now := func() time.Time { return time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC) }
	synth := strategy.NewSynthesizer(model, rng, 0.05, now, zerolog.Nop())
	svc := NewService(data.NewFallbackProvider(rng), synth, Defaults{}, zerolog.Nop())

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				resp, err := svc.Scan(context.Background(), Request{
					Ticker:      "SPY",
					RiskProfile: strategy.ProfileAggressive,
				})
				assert.NoError(t, err)
				assert.Equal(t, 443.20, resp.CurrentPrice)
			}
		}()
	}
	wg.Wait()
}

// Screening everything away yields the original "no viable strategies"
// failure shape rather than an empty success.
func TestScanNoViableStrategies(t *testing.T) {
	svc := newTestService(200, 6)

	resp, err := svc.Scan(context.Background(), Request{
		Ticker: "IWM",
		Filter: "confidence > 1000",
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, "no viable strategies found", resp.Error)
	assert.NotNil(t, resp.Strategies)
	assert.Empty(t, resp.Strategies)
	assert.Equal(t, 200.0, resp.CurrentPrice)
}
