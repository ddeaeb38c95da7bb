package etl

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Price is the parsed form of a free-text price string. All fields are
// nil when no numeric amount could be found.
type Price struct {
	Amount   *decimal.Decimal
	Unit     *string
	Currency *string
}

// priceRegex captures an optional currency symbol, a numeric amount
// with thousands-separator commas and an optional decimal fraction,
// and an optional letters-only unit after a slash.
// Example: "₹ 1,200.50/Meter"
var priceRegex = regexp.MustCompile(`(₹|Rs\.?|\$|€)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)(?:\s*/\s*([A-Za-z]+))?`)

// currencyMap maps a captured symbol to its ISO-like code
var currencyMap = map[string]string{
	"₹":   "INR",
	"Rs.": "INR",
	"Rs":  "INR",
	"$":   "USD",
	"€":   "EUR",
}

// defaultCurrency applies when an amount parsed but no symbol mapped
const defaultCurrency = "INR"

// ParsePrice parses a raw price string. A nil input, a string without a
// numeric amount, or an unparseable amount all yield a fully nil Price;
// price text that cannot be parsed is normal data, not an error.
func ParsePrice(raw *string) Price {
	if raw == nil {
		return Price{}
	}

	m := priceRegex.FindStringSubmatch(*raw)
	if m == nil {
		return Price{}
	}
	symbol, amountText, unitText := m[1], m[2], m[3]

	amount, err := decimal.NewFromString(strings.ReplaceAll(amountText, ",", ""))
	if err != nil {
		return Price{}
	}

	price := Price{Amount: &amount}

	if unitText != "" {
		price.Unit = &unitText
	}

	currency, ok := currencyMap[symbol]
	if !ok {
		currency = defaultCurrency
	}
	price.Currency = &currency

	return price
}
