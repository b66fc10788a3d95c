package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatWithCurrency formats an amount for display using the currency's
// symbol, grouping and fraction rules.
// Example: amount 1234.5 with USD returns "$1,234.50"
// Example: amount 1234.5 with JPY (0 fraction digits) returns "¥1,235"
// Unknown currency codes fall back to "<amount> <code>".
func FormatWithCurrency(amount decimal.Decimal, currencyCode string) string {
	currency := money.GetCurrency(currencyCode)
	if currency == nil {
		return amount.Round(2).String() + " " + currencyCode
	}
	minorUnits := amount.Shift(int32(currency.Fraction)).Round(0).IntPart()
	return money.New(minorUnits, currency.Code).Display()
}
