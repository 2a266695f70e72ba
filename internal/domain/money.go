package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used whenever a money value is created without an explicit currency
const DefaultCurrency = "EUR"

// MinorUnitPlaces is the number of decimal places of the currency's minor unit (cents)
const MinorUnitPlaces = 2

// RoundingMode selects how a lossy money operation is rounded to the minor unit
type RoundingMode int

const (
	RoundCeiling RoundingMode = iota
	RoundFloor
	RoundHalfUp
)

func (m RoundingMode) apply(d decimal.Decimal) decimal.Decimal {
	switch m {
	case RoundCeiling:
		return d.RoundCeil(MinorUnitPlaces)
	case RoundFloor:
		return d.RoundFloor(MinorUnitPlaces)
	default:
		return d.Round(MinorUnitPlaces)
	}
}

// Money is a fixed-point amount in a single currency, always held at minor unit precision.
// The zero value is a currency-neutral zero that adopts the currency of whatever it is
// combined with.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// ZeroMoney returns a currency-neutral zero
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney creates a money value, rounding half-up to cents
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(MinorUnitPlaces), currency: DefaultCurrency}
}

// NewMoneyIn creates a money value in the given currency
func NewMoneyIn(amount decimal.Decimal, currency string) Money {
	return Money{amount: amount.Round(MinorUnitPlaces), currency: strings.ToUpper(currency)}
}

// MoneyFromCents creates a money value from an amount in minor units
func MoneyFromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -MinorUnitPlaces), currency: DefaultCurrency}
}

// MoneyFromCentsIn creates a money value in the given currency from minor units
func MoneyFromCentsIn(cents int64, currency string) Money {
	return Money{amount: decimal.New(cents, -MinorUnitPlaces), currency: strings.ToUpper(currency)}
}

// ParseMoney parses a decimal string such as "123.45"
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("%w: amount %q", ErrInvalidInput, s)
	}
	return NewMoney(d), nil
}

// Currency returns the ISO currency code
func (m Money) Currency() string {
	if m.currency == "" {
		return DefaultCurrency
	}
	return m.currency
}

// Amount returns the amount in major units
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Cents returns the amount in minor units
func (m Money) Cents() int64 {
	return m.amount.Shift(MinorUnitPlaces).IntPart()
}

// sameCurrency returns the currency shared by m and o and panics on a mismatch
func (m Money) sameCurrency(o Money) string {
	switch {
	case m.currency == "":
		return o.currency
	case o.currency == "" || o.currency == m.currency:
		return m.currency
	}
	panic(fmt.Sprintf("money: currency mismatch %s != %s", m.currency, o.currency))
}

// Plus adds two amounts of the same currency
func (m Money) Plus(o Money) Money {
	return Money{amount: m.amount.Add(o.amount), currency: m.sameCurrency(o)}
}

// Minus subtracts o from m
func (m Money) Minus(o Money) Money {
	return Money{amount: m.amount.Sub(o.amount), currency: m.sameCurrency(o)}
}

// MultipliedBy multiplies by an arbitrary factor and rounds to cents with the given mode
func (m Money) MultipliedBy(factor decimal.Decimal, mode RoundingMode) Money {
	return Money{amount: mode.apply(m.amount.Mul(factor)), currency: m.currency}
}

// DividedBy divides by a non-zero divisor and rounds to cents with the given mode
func (m Money) DividedBy(divisor decimal.Decimal, mode RoundingMode) Money {
	if divisor.IsZero() {
		panic("money: division by zero")
	}
	return Money{amount: mode.apply(m.amount.Div(divisor)), currency: m.currency}
}

// MulDiv returns m*num/den with a single rounding step at the end
func (m Money) MulDiv(num, den decimal.Decimal, mode RoundingMode) Money {
	if den.IsZero() {
		panic("money: division by zero")
	}
	return Money{amount: mode.apply(m.amount.Mul(num).Div(den)), currency: m.currency}
}

// Ratio returns m / o rounded up to the given number of places.
// The caller guards against a zero divisor.
func (m Money) Ratio(o Money, places int32) decimal.Decimal {
	m.sameCurrency(o)
	return m.amount.Div(o.amount).RoundCeil(places)
}

func (m Money) IsZero() bool     { return m.amount.IsZero() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// Cmp compares two amounts of the same currency
func (m Money) Cmp(o Money) int {
	m.sameCurrency(o)
	return m.amount.Cmp(o.amount)
}

// Equal reports whether both amounts and currencies match
func (m Money) Equal(o Money) bool {
	return m.Currency() == o.Currency() && m.amount.Equal(o.amount)
}

// Negated returns -m
func (m Money) Negated() Money {
	return Money{amount: m.amount.Neg(), currency: m.currency}
}

// String renders the amount with two decimals, e.g. "123.40"
func (m Money) String() string {
	return m.amount.StringFixed(MinorUnitPlaces)
}

// MarshalJSON renders money as a fixed two-decimal string
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted and bare decimal amounts
func (m *Money) UnmarshalJSON(data []byte) error {
	parsed, err := ParseMoney(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// SumMoney adds up a list of amounts, returning zero for an empty list
func SumMoney(values []Money) Money {
	total := ZeroMoney()
	for _, v := range values {
		total = total.Plus(v)
	}
	return total
}
