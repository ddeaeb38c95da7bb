package etl

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func assertAmount(t *testing.T, expected string, p Price) {
	t.Helper()
	if assert.NotNil(t, p.Amount) {
		assert.True(t, p.Amount.Equal(decimal.RequireFromString(expected)),
			"amount %s != %s", p.Amount, expected)
	}
}

func TestParsePriceWithSymbolAndUnit(t *testing.T) {
	p := ParsePrice(strPtr("₹ 1,200.50/Meter"))
	assertAmount(t, "1200.50", p)
	assert.Equal(t, "Meter", *p.Unit)
	assert.Equal(t, "INR", *p.Currency)

	p = ParsePrice(strPtr("Rs. 499/Piece"))
	assertAmount(t, "499", p)
	assert.Equal(t, "Piece", *p.Unit)
	assert.Equal(t, "INR", *p.Currency)
}

func TestParsePriceSymbolOnly(t *testing.T) {
	p := ParsePrice(strPtr("$50"))
	assertAmount(t, "50", p)
	assert.Nil(t, p.Unit)
	assert.Equal(t, "USD", *p.Currency)

	p = ParsePrice(strPtr("€75.25"))
	assertAmount(t, "75.25", p)
	assert.Nil(t, p.Unit)
	assert.Equal(t, "EUR", *p.Currency)
}

func TestParsePriceNoAmount(t *testing.T) {
	p := ParsePrice(strPtr("Contact for Price"))
	assert.Nil(t, p.Amount)
	assert.Nil(t, p.Unit)
	assert.Nil(t, p.Currency)
}

func TestParsePriceDefaultCurrency(t *testing.T) {
	// No symbol at all still defaults to INR once an amount parsed
	p := ParsePrice(strPtr("1500"))
	assertAmount(t, "1500", p)
	assert.Nil(t, p.Unit)
	assert.Equal(t, "INR", *p.Currency)
}

func TestParsePriceNilInput(t *testing.T) {
	p := ParsePrice(nil)
	assert.Nil(t, p.Amount)
	assert.Nil(t, p.Unit)
	assert.Nil(t, p.Currency)
}

func TestParsePriceVariants(t *testing.T) {
	p := ParsePrice(strPtr("Rs 250 / Kg"))
	assertAmount(t, "250", p)
	assert.Equal(t, "Kg", *p.Unit)
	assert.Equal(t, "INR", *p.Currency)

	// Amount embedded in surrounding text
	p = ParsePrice(strPtr("Approx. Price: ₹ 85/Meter"))
	assertAmount(t, "85", p)
	assert.Equal(t, "Meter", *p.Unit)
	assert.Equal(t, "INR", *p.Currency)
}
