package chain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/contactkeval/option-scan/internal/testutil"
)

func TestStrikesSpot200(t *testing.T) {
	testutil.CompareWithGolden(t, "strikes_200", Strikes(200))
}

func TestStrikeIntervalBands(t *testing.T) {
	cases := []struct {
		spot     float64
		interval float64
	}{
		{25, 2.5},
		{49.99, 2.5},
		{50, 5},
		{99, 5},
		{150, 5},
		{200, 10},
		{499, 10},
		{500, 25},
		{1200, 25},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.interval, strikeInterval(tc.spot), "spot=%f", tc.spot)
	}
}

func TestStrikesCentering(t *testing.T) {
	strikes := Strikes(152.30)
	assert.Len(t, strikes, 13)
	// Base is the nearest interval multiple of spot.
	assert.Equal(t, 150.0, strikes[6])
	assert.Equal(t, 120.0, strikes[0])
	assert.Equal(t, 180.0, strikes[12])
}

// Tiny spot prices lose the non-positive wing but stay valid.
func TestStrikesTruncatedForSmallSpot(t *testing.T) {
	strikes := Strikes(5)
	assert.NotEmpty(t, strikes)
	assert.Less(t, len(strikes), 13)
	for _, k := range strikes {
		assert.Greater(t, k, 0.0)
	}
}

// Property: for any positive spot, the ladder is non-empty, strictly
// ascending, evenly spaced by the band interval, positive throughout, and
// spans spot when not truncated.
func TestProperty_StrikeLadderShape(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("ladder is ascending, evenly spaced, positive", prop.ForAll(
		func(spot float64) bool {
			strikes := Strikes(spot)
			if len(strikes) == 0 || len(strikes) > 13 {
				return false
			}
			interval := strikeInterval(spot)
			for i, k := range strikes {
				if k <= 0 {
					return false
				}
				if i > 0 && strikes[i]-strikes[i-1] != interval {
					return false
				}
			}
			if len(strikes) == 13 && (spot < strikes[0] || spot > strikes[12]) {
				return false
			}
			return true
		},
		gen.Float64Range(0.5, 10000),
	))

	properties.TestingRun(t)
}
