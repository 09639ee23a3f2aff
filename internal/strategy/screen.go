package strategy

import (
	"errors"
	"fmt"

	"github.com/Knetic/govaluate"
)

// ErrInvalidScreenExpression reports a screen expression that failed to
// parse or did not evaluate to a boolean.
var ErrInvalidScreenExpression = errors.New("invalid screen expression")

// Screen keeps the strategies for which the boolean expression evaluates
// true. Expressions reference strategy metrics by name, e.g.
//
//	"confidence > 70 && capitalRequired < 5000"
//	"category != 'volatility' && probabilityOfProfit >= 0.6"
//
// Available identifiers: confidence, maxProfit, maxLoss, capitalRequired,
// probabilityOfProfit, legs (leg count), category, name.
func Screen(strategies []Strategy, expression string) ([]Strategy, error) {
	expr, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScreenExpression, err)
	}

	out := make([]Strategy, 0, len(strategies))
	for _, st := range strategies {
		params := map[string]interface{}{
			"confidence":          st.Confidence,
			"maxProfit":           st.MaxProfit,
			"maxLoss":             st.MaxLoss,
			"capitalRequired":     st.CapitalRequired,
			"probabilityOfProfit": st.ProbabilityOfProfit,
			"legs":                float64(len(st.Legs)),
			"category":            string(st.Category),
			"name":                st.Name,
		}

		res, err := expr.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScreenExpression, err)
		}
		keep, ok := res.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: expression is not boolean", ErrInvalidScreenExpression)
		}
		if keep {
			out = append(out, st)
		}
	}
	return out, nil
}
