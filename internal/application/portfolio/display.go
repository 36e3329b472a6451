package portfolio

import "rmclub-backend/internal/pkg/moneyfmt"

// SummaryDisplay carries Summary as formatted strings. The app renders
// these and keeps the exact decimals for arithmetic.
type SummaryDisplay struct {
	Invested string `json:"invested"`
	Current  string `json:"current"`
	PnL      string `json:"pnl"`
}

// Display formats s in currency code.
func (s Summary) Display(code string) SummaryDisplay {
	return SummaryDisplay{
		Invested: moneyfmt.Format(s.Invested, code),
		Current:  moneyfmt.Format(s.Current, code),
		PnL:      moneyfmt.Signed(s.PnL, code),
	}
}
