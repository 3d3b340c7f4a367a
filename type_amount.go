package wealth

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount represents a monetary value in the implied profile currency.
type Amount struct {
	value decimal.Decimal // as major unit value
}

func A[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

// Format returns the amount formatted in the given currency, e.g. "₹550,000.00".
// An empty or unknown currency code formats the bare number with two digits.
func (a Amount) Format(currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	if cur.Template == "" {
		return a.value.StringFixed(2)
	}
	dec := a.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (a Amount) String() string           { return a.value.String() }
func (a Amount) Decimal() decimal.Decimal { return a.value }
func (a Amount) Equal(b Amount) bool      { return a.value.Equal(b.value) }
func (a Amount) IsZero() bool             { return a.value.IsZero() }
func (a Amount) IsNegative() bool         { return a.value.IsNegative() }
func (a Amount) Neg() Amount              { return Amount{value: a.value.Neg()} }
func (a Amount) Add(b Amount) Amount      { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount      { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Mul(q Quantity) Amount    { return Amount{value: a.value.Mul(q.value)} }
func (a Amount) InexactFloat64() float64  { return a.value.InexactFloat64() }

// Share returns a as a percentage of total. A zero total gives 0%.
func (a Amount) Share(total Amount) Percent {
	if total.IsZero() {
		return 0
	}
	return Percent(a.value.Div(total.value).Mul(decimal.NewFromInt(100)).InexactFloat64())
}

// MarshalJSON writes the amount as a bare JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.String()), nil
}

// UnmarshalJSON accepts numbers, quoted numbers and null (zero).
func (a *Amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		a.value = decimal.Zero
		return nil
	}
	return a.value.UnmarshalJSON(b)
}

// sum adds up the amounts returned by f for each item.
func sum[T any](items []T, f func(T) Amount) Amount {
	var total Amount
	for _, it := range items {
		total = total.Add(f(it))
	}
	return total
}
