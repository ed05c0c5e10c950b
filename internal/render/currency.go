package render

import (
	"github.com/shopspring/decimal"
)

// currencySymbols is the closed lookup table of supported display symbols.
// Unknown codes fall back to "$".
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "C$",
	"AUD": "A$",
	"JPY": "¥",
	"INR": "₹",
	"CNY": "¥",
}

// Symbol returns the display symbol for a currency code.
func Symbol(code string) string {
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return "$"
}

// FormatAmount renders a monetary amount with the currency's symbol and
// exactly two decimal places, including zero-decimal currencies like JPY.
// Negative amounts carry a leading minus sign.
func FormatAmount(code string, amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + Symbol(code) + amount.Neg().StringFixed(2)
	}
	return Symbol(code) + amount.StringFixed(2)
}
