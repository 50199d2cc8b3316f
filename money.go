package finsheet

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a monetary value in a budget currency. It exists for the
// transaction tabs, where outflow and inflow cells are written in the
// currency's own display format.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M returns a Money of the given major-unit value and ISO currency code.
func M(value float64, currency string) Money {
	return Money{value: decimal.NewFromFloat(value), cur: currency}
}

// currency resolves the full currency definition; the Money constructor is
// the only way to get a never-nil currency out of go-money.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String formats the value with the currency's symbol, fraction digits and
// separators.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string  { return m.cur }
func (m Money) IsZero() bool      { return m.value.IsZero() }
func (m Money) IsNegative() bool  { return m.value.IsNegative() }
func (m Money) Neg() Money        { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: m.cur} }
