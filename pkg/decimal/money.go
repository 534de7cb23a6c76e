package decimal

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the unit of account used when none is configured.
const DefaultCurrency = "INR"

// Money is a display wrapper around an exact amount in the unit of account.
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

var monthsPerYear = decimal.NewFromInt(12)

// Annual converts a monthly amount to its yearly equivalent.
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(monthsPerYear)}
}

// Monthly converts a yearly amount to its monthly equivalent.
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(monthsPerYear)}
}

// Round rounds the amount to minor units (2 places).
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// String returns the amount with two decimals and no symbol.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// FormatIn renders the amount with the symbol and grouping of the given ISO
// currency code. Unknown codes fall back to DefaultCurrency.
func (m Money) FormatIn(code string) string {
	cur := gomoney.GetCurrency(code)
	if cur == nil {
		cur = gomoney.GetCurrency(DefaultCurrency)
	}
	minor := m.Decimal.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}
