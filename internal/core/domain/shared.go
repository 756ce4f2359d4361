package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ID string

func NewID() ID {
	return ID(uuid.NewString())
}

func ValidateID(id string) bool {
	return uuid.Validate(id) == nil
}

// Amount is money in cents.
type Amount int64

// MaxAmount bounds parsed amounts. With MaxOrderQuantity and at most 100 lines
// per order, a total stays well inside int64.
const MaxAmount Amount = 10_000_000_000

// MaxOrderQuantity bounds the quantity of a single order line.
const MaxOrderQuantity = 1_000_000

var maxAmountDecimal = decimal.New(int64(MaxAmount), -2)

func NewAmountFromCents(cents int64) Amount {
	return Amount(cents)
}

func NewAmountFromValue(value int64) Amount {
	return Amount(value * 100)
}

// ParseAmount reads a decimal string such as "45.00" or "99.99".
func ParseAmount(value string) (Amount, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return 0, fmt.Errorf("invalid amount %q: more than two decimal places", value)
	}
	if d.Abs().GreaterThan(maxAmountDecimal) {
		return 0, fmt.Errorf("invalid amount %q: exceeds %s", value, MaxAmount.Fixed())
	}
	return Amount(d.Shift(2).IntPart()), nil
}

func (a Amount) Add(b Amount) Amount {
	return a + b
}

func (a Amount) Multiply(b int) Amount {
	return a * Amount(b)
}

func (a Amount) ToValue() int64 {
	return int64(a) / 100
}

func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// String renders the shortest decimal form: 4500 -> "45", 9999 -> "99.99".
func (a Amount) String() string {
	return a.Decimal().String()
}

// Fixed renders exactly two decimals: 4500 -> "45.00".
func (a Amount) Fixed() string {
	return a.Decimal().StringFixed(2)
}

type Event interface {
	GetName() string
	GetEntityName() string
}

// FormatNumber renders human-readable sequence numbers such as SAL-001.
func FormatNumber(prefix string, n int) string {
	return fmt.Sprintf("%s-%03d", prefix, n)
}
