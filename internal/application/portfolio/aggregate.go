// Package portfolio derives display-ready financial figures from investment
// records. Every function here is pure: inputs are never mutated and absent
// data resolves to zero, nil or an empty slice instead of an error.
package portfolio

import (
	"rmclub-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Summary is the portfolio header shown on the customer and admin screens.
type Summary struct {
	Invested decimal.Decimal `json:"invested"`
	Current  decimal.Decimal `json:"current"`
	PnL      decimal.Decimal `json:"pnl"`
}

// Aggregate sums analytics over all investments. Missing analytics, or a
// missing figure inside them, contributes zero.
func Aggregate(investments []domain.Investment) Summary {
	invested, current := decimal.Zero, decimal.Zero
	for i := range investments {
		a := investments[i].Analytics
		invested = invested.Add(a.Invested())
		current = current.Add(a.Current())
	}
	return Summary{
		Invested: invested,
		Current:  current,
		PnL:      current.Sub(invested),
	}
}
