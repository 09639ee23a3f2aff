package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-scan/internal/scan"
	"github.com/contactkeval/option-scan/internal/strategy"
)

func sampleResponse() *scan.Response {
	return &scan.Response{
		Success:      true,
		CurrentPrice: 200,
		Ticker:       "AAPL",
		Timestamp:    "2026-01-07T00:00:00Z",
		Strategies: []strategy.Strategy{
			{
				ID:                  "cash_secured_put_AAPL",
				Name:                "Cash Secured Put",
				Category:            strategy.Bullish,
				Confidence:          72.5,
				MaxProfit:           310,
				MaxLoss:             -13690,
				CapitalRequired:     14000,
				ProbabilityOfProfit: 0.76,
				Description:         "Sell 1 put at $140.00 strike",
				Legs: []strategy.Leg{
					{Kind: strategy.Put, Action: strategy.Sell, Strike: 140, Expiry: "2026-02-06", Quantity: 1, Premium: 3.1},
				},
				BreakEvenPoints: []float64{136.9},
			},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	res := sampleResponse()
	require.NoError(t, WriteJSON(res, dir))

	b, err := os.ReadFile(filepath.Join(dir, "strategies.json"))
	require.NoError(t, err)

	var got scan.Response
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, res.Ticker, got.Ticker)
	require.Len(t, got.Strategies, 1)
	assert.Equal(t, "Cash Secured Put", got.Strategies[0].Name)
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	res := sampleResponse()
	require.NoError(t, WriteCSV(res.Strategies, dir))

	f, err := os.Open(filepath.Join(dir, "strategies.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one strategy row")

	header, row := rows[0], rows[1]
	assert.Equal(t, "id", header[0])
	assert.Equal(t, "cash_secured_put_AAPL", row[0])
	assert.Equal(t, "bullish", row[2])
	assert.Equal(t, "136.90", row[8])

	// The legs column is itself JSON and must round-trip.
	var legs []strategy.Leg
	require.NoError(t, json.Unmarshal([]byte(row[len(row)-1]), &legs))
	require.Len(t, legs, 1)
	assert.Equal(t, 140.0, legs[0].Strike)
}
