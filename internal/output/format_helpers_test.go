package output

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount decimal.Decimal
		code   string
		want   string
	}{
		{decimal.NewFromFloat(1234.567), "USD", "$1,234.57"},
		{decimal.NewFromInt(-175), "USD", "-$175.00"},
		{decimal.NewFromInt(1500), "EUR", "€1,500.00"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.amount, tt.code); got != tt.want {
			t.Errorf("FormatCurrency(%v, %s) = %q, want %q", tt.amount, tt.code, got, tt.want)
		}
	}
	if FormatCurrency(decimal.NewFromInt(1), "") != FormatCurrency(decimal.NewFromInt(1), "INR") {
		t.Error("empty currency code should use the default currency")
	}
}

func TestFormatPercentage(t *testing.T) {
	v := decimal.NewFromFloat(12.3456)
	if got, want := FormatPercentage(v), "12.35%"; got != want {
		t.Errorf("FormatPercentage(%v) = %q, want %q", v, got, want)
	}
}

func TestIntAndBoolToString(t *testing.T) {
	if got := intToString(42); got != "42" {
		t.Errorf("intToString(42) = %q", got)
	}
	if boolToString(true) != "true" || boolToString(false) != "false" {
		t.Error("boolToString mismatch")
	}
}
