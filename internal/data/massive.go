package data

import (
	"context"
	"fmt"

	massive "github.com/massive-com/client-go/v2/rest"
	"github.com/massive-com/client-go/v2/rest/models"
	"github.com/rs/zerolog"
)

// massiveProvider implements Provider against the Massive REST API using
// the official SDK's previous-close aggregates, which return the prior
// trading session's OHLC for a ticker. Only the close is consumed. Any
// transport, auth, or empty-result condition is reported as an error so the
// caller can fall through to the secondary provider.
type massiveProvider struct {
	client    *massive.Client
	secondary Provider
	log       zerolog.Logger
}

// NewMassiveProvider constructs a Massive-backed provider with the given
// fallback chain. The API key is typically read from POLYGON_API_KEY.
func NewMassiveProvider(apiKey string, secondary Provider, log zerolog.Logger) Provider {
	return &massiveProvider{
		client:    massive.New(apiKey),
		secondary: secondary,
		log:       log,
	}
}

func (p *massiveProvider) Secondary() Provider { return p.secondary }

func (p *massiveProvider) SpotPrice(ctx context.Context, ticker string) (float64, error) {
	params := models.GetPreviousCloseAggParams{
		Ticker: ticker,
	}.WithAdjusted(true)

	res, err := p.client.GetPreviousCloseAgg(ctx, params)
	if err != nil {
		p.log.Warn().Str("ticker", ticker).Err(err).Msg("massive previous close failed")
		return 0, fmt.Errorf("massive previous close for %s: %w", ticker, err)
	}
	if len(res.Results) == 0 {
		return 0, fmt.Errorf("massive previous close for %s: empty result set", ticker)
	}

	prevClose := res.Results[0].Close
	p.log.Debug().Str("ticker", ticker).Float64("close", prevClose).Msg("massive previous close")
	return prevClose, nil
}
