package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DepositPercent is the share of a contract total due up front.
const DepositPercent = 20

// Cents is an amount in the currency's minor unit.
type Cents int64

var hundred = decimal.NewFromInt(100)

// FromDecimal converts a major-unit amount (e.g. 1234.56) to cents, rounding half away from zero.
func FromDecimal(amount decimal.Decimal) Cents {
	return Cents(amount.Mul(hundred).Round(0).IntPart())
}

// Decimal returns the amount in major units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// IsNegative reports whether the amount is below zero.
func (c Cents) IsNegative() bool {
	return c < 0
}

// String renders the amount with two fixed decimals and no locale formatting.
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// SplitDeposit divides total into the up-front deposit and the remaining balance.
// The deposit is rounded half up to the nearest cent and the remainder absorbs the
// difference, so deposit+remainder always equals total.
func SplitDeposit(total Cents) (deposit, remainder Cents, err error) {
	if total < 0 {
		return 0, 0, fmt.Errorf("negative total %d", total)
	}
	share := decimal.NewFromInt(int64(total)).
		Mul(decimal.NewFromInt(DepositPercent)).
		Div(hundred).
		Round(0)
	deposit = Cents(share.IntPart())
	return deposit, total - deposit, nil
}
