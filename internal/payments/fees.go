package payments

import (
	"fmt"

	"github.com/Knetic/govaluate"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

// FeeTable estimates processing fees per payment method from configurable
// formulas. A formula is evaluated with a single "amount" parameter, e.g.
// "amount * 0.029 + 0.30". Fees are informational: they appear on quotes
// and reports and never change what the donor is charged.
type FeeTable struct {
	exprs map[models.PaymentMethod]*govaluate.EvaluableExpression
}

// NewFeeTable compiles the formula set. An invalid formula fails loudly at
// startup rather than at quote time.
func NewFeeTable(formulas map[string]string) (*FeeTable, error) {
	t := &FeeTable{exprs: make(map[models.PaymentMethod]*govaluate.EvaluableExpression)}
	for method, formula := range formulas {
		expr, err := govaluate.NewEvaluableExpression(formula)
		if err != nil {
			return nil, fmt.Errorf("fee formula for %s (%q): %w", method, formula, err)
		}
		t.exprs[models.PaymentMethod(method)] = expr
	}
	return t, nil
}

// Estimate computes the fee for an amount under the given method. The
// second return is false when no formula is configured for the method.
func (t *FeeTable) Estimate(method models.PaymentMethod, amount float64) (float64, bool) {
	if t == nil {
		return 0, false
	}
	expr, found := t.exprs[method]
	if !found {
		return 0, false
	}

	result, err := expr.Evaluate(map[string]interface{}{"amount": amount})
	if err != nil {
		return 0, false
	}
	fee, ok := result.(float64)
	if !ok {
		return 0, false
	}
	return fee, true
}
