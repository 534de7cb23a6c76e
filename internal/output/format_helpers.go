package output

import (
	"strconv"

	rates "github.com/rpgo/dignity-planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount with the symbol and digit grouping of the
// ISO currency code. An empty or unknown code uses the default currency.
func FormatCurrency(amount decimal.Decimal, code string) string {
	if code == "" {
		code = rates.DefaultCurrency
	}
	return rates.NewMoneyFromDecimal(amount).FormatIn(code)
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
