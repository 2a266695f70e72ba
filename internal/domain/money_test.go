package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"123", "123.00"},
		{"123.4", "123.40"},
		{" 0.125 ", "0.13"},
		{"-12.344", "-12.34"},
	}

	for _, tt := range tests {
		m, err := ParseMoney(tt.input)
		if err != nil {
			t.Fatalf("ParseMoney(%q) returned error: %v", tt.input, err)
		}
		if m.String() != tt.expected {
			t.Errorf("ParseMoney(%q) = %s, want %s", tt.input, m.String(), tt.expected)
		}
		if m.Currency() != DefaultCurrency {
			t.Errorf("ParseMoney(%q) currency = %s, want %s", tt.input, m.Currency(), DefaultCurrency)
		}
	}
}

func TestParseMoney_Invalid(t *testing.T) {
	_, err := ParseMoney("12,50")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestMoneyRoundingModes(t *testing.T) {
	m := MoneyFromCents(1000) // 10.00
	third := decimal.NewFromInt(1).Div(decimal.NewFromInt(3))

	tests := []struct {
		name     string
		mode     RoundingMode
		factor   decimal.Decimal
		expected string
	}{
		{"ceiling rounds up", RoundCeiling, third, "3.34"},
		{"floor rounds down", RoundFloor, third, "3.33"},
		{"half up rounds to nearest", RoundHalfUp, third, "3.33"},
		{"half up rounds a half away from zero", RoundHalfUp, decimal.RequireFromString("0.0005"), "0.01"},
		{"floor keeps exact values", RoundFloor, decimal.RequireFromString("1.1"), "11.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.MultipliedBy(tt.factor, tt.mode)
			if got.String() != tt.expected {
				t.Errorf("MultipliedBy(%s) = %s, want %s", tt.factor, got, tt.expected)
			}
		})
	}
}

func TestMoneyDividedBy(t *testing.T) {
	m := MoneyFromCents(100) // 1.00
	if got := m.DividedBy(decimal.NewFromInt(3), RoundCeiling).String(); got != "0.34" {
		t.Errorf("1.00 / 3 (ceiling) = %s, want 0.34", got)
	}
	if got := m.DividedBy(decimal.NewFromInt(3), RoundFloor).String(); got != "0.33" {
		t.Errorf("1.00 / 3 (floor) = %s, want 0.33", got)
	}
}

func TestMoneyDividedBy_ZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on division by zero")
		}
	}()
	MoneyFromCents(100).DividedBy(decimal.Zero, RoundCeiling)
}

func TestMoneyMulDiv_SingleRounding(t *testing.T) {
	// 10.00 * 2 / 3 is rounded once at the end
	m := MoneyFromCents(1000)
	got := m.MulDiv(decimal.NewFromInt(2), decimal.NewFromInt(3), RoundCeiling)
	if got.String() != "6.67" {
		t.Errorf("MulDiv = %s, want 6.67", got)
	}
}

func TestZeroMoneyAdoptsCurrency(t *testing.T) {
	usd := MoneyFromCentsIn(250, "usd")
	sum := ZeroMoney().Plus(usd)

	if sum.Currency() != "USD" {
		t.Errorf("Expected currency USD, got %s", sum.Currency())
	}
	if sum.String() != "2.50" {
		t.Errorf("Expected 2.50, got %s", sum)
	}
}

func TestMoneyCurrencyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic when adding EUR to USD")
		}
	}()
	MoneyFromCentsIn(100, "EUR").Plus(MoneyFromCentsIn(100, "USD"))
}

func TestMoneyRatio(t *testing.T) {
	spent := MoneyFromCents(120000)
	budget := MoneyFromCents(1000000)

	ratio := spent.Ratio(budget, 2)
	if ratio.StringFixed(2) != "0.12" {
		t.Errorf("Ratio = %s, want 0.12", ratio.StringFixed(2))
	}

	// 1/3 rounds up
	third := MoneyFromCents(100).Ratio(MoneyFromCents(300), 2)
	if third.StringFixed(2) != "0.34" {
		t.Errorf("Ratio = %s, want 0.34", third.StringFixed(2))
	}
}

func TestMoneyCents(t *testing.T) {
	if got := MoneyFromCents(12345).Cents(); got != 12345 {
		t.Errorf("Cents() = %d, want 12345", got)
	}
	if got := MoneyFromCents(-5).Cents(); got != -5 {
		t.Errorf("Cents() = %d, want -5", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(MoneyFromCents(12340))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"123.40"` {
		t.Errorf("Marshal = %s, want \"123.40\"", data)
	}

	var bare Money
	if err := json.Unmarshal([]byte(`99.9`), &bare); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if bare.String() != "99.90" {
		t.Errorf("Unmarshal = %s, want 99.90", bare)
	}
}

func TestSumMoney(t *testing.T) {
	if got := SumMoney(nil); !got.IsZero() {
		t.Errorf("SumMoney(nil) = %s, want 0.00", got)
	}

	got := SumMoney([]Money{MoneyFromCents(100), MoneyFromCents(250), MoneyFromCents(-50)})
	if got.String() != "3.00" {
		t.Errorf("SumMoney = %s, want 3.00", got)
	}
}

func TestMoneyEqualAndCmp(t *testing.T) {
	a := MoneyFromCents(500)
	b, _ := ParseMoney("5")

	if !a.Equal(b) {
		t.Errorf("Expected %s to equal %s", a, b)
	}
	if a.Cmp(MoneyFromCents(499)) != 1 {
		t.Error("Expected 5.00 > 4.99")
	}
	if !a.Negated().IsNegative() {
		t.Error("Expected negated value to be negative")
	}
	if a.Equal(MoneyFromCentsIn(500, "USD")) {
		t.Error("Expected different currencies not to be equal")
	}
}
