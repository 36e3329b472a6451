package moneyfmt

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "₹1,500.00", Format(decimal.NewFromInt(1500), "INR"))
	assert.Equal(t, "$0.10", Format(decimal.RequireFromString("0.1"), "USD"))
	assert.Equal(t, "12.50 XYZ", Format(decimal.RequireFromString("12.5"), "XYZ"))
}

func TestFormat_Overflow(t *testing.T) {
	huge := decimal.RequireFromString("100000000000000000000")
	assert.Equal(t, "100000000000000000000.00 INR", Format(huge, "INR"))
	assert.Equal(t, "-100000000000000000000.00 INR", Format(huge.Neg(), "INR"))
}

func TestSigned(t *testing.T) {
	assert.Equal(t, "+₹100.00", Signed(decimal.NewFromInt(100), "INR"))
	assert.Equal(t, "-₹100.00", Signed(decimal.NewFromInt(-100), "INR"))
	assert.Equal(t, "₹0.00", Signed(decimal.Zero, "INR"))
}
