package kernel

import (
	"fmt"

	"foodorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits kept for prices, matching
// the numeric(10,2) columns of the dish and order line tables.
const moneyScale = 2

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney or MoneyFromString")

// Money is an immutable, non-negative decimal amount rounded to cents.
// Prices are copied into order lines as Money so later menu changes never
// alter an existing order.
type Money struct {
	amount        decimal.Decimal
	isConstructed bool
}

// NewMoney creates Money from a decimal amount. Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("money", amount.String(), "0", "unbounded")
	}
	return Money{amount: amount.Round(moneyScale), isConstructed: true}, nil
}

// MoneyFromString parses amounts such as "12.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%q is not a decimal: %w", s, err))
	}
	return NewMoney(amount)
}

// ZeroMoney returns a constructed amount of 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, isConstructed: true}
}

// Mul returns the amount multiplied by a non-negative quantity.
func (m Money) Mul(qty int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(qty))), isConstructed: true}
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), isConstructed: true}
}

// IsEqual compares amounts numerically, so 1.5 equals 1.50.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal exposes the amount for persistence.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	return nil
}
