// Package moneyfmt turns exact decimal amounts into the display strings the
// mobile app renders next to them.
package moneyfmt

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Format renders d in the currency's notation, e.g. ₹1,500.00 for INR.
// Unknown codes fall back to "<amount> <code>" with two decimals, and so do
// amounts whose minor units overflow int64.
func Format(d decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return d.StringFixed(2) + " " + code
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	if !minor.BigInt().IsInt64() {
		return d.StringFixed(int32(cur.Fraction)) + " " + cur.Code
	}
	return money.New(minor.IntPart(), cur.Code).Display()
}

// Signed is Format with an explicit "+" for gains, used for P&L.
func Signed(d decimal.Decimal, code string) string {
	if d.IsPositive() {
		return "+" + Format(d, code)
	}
	return Format(d, code)
}
