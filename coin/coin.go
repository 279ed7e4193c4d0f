/*
Package coin holds helpers for the amounts moved around by the wallet.

Amounts are unsigned integers of arbitrary size represented as *big.Int,
the same way go-ethereum represents wei values. A 64 bit integer is not
enough: two deposits of 10^19 units already overflow it.
*/
package coin

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/iov-one/vault/errors"
	"github.com/shopspring/decimal"
)

// MaxAmount is the largest amount accepted anywhere, 2^256-1.
var MaxAmount = math.MaxBig256

// Validate returns an error if the amount is missing, negative or greater
// than MaxAmount.
func Validate(a *big.Int) error {
	switch {
	case a == nil:
		return errors.Wrap(errors.ErrAmount, "missing")
	case a.Sign() < 0:
		return errors.Wrapf(errors.ErrAmount, "negative value %s", a)
	case a.Cmp(MaxAmount) > 0:
		return errors.Wrapf(errors.ErrOverflow, "value %s exceeds 256 bits", a)
	}
	return nil
}

// IsPositive returns true if the amount is set and greater than zero.
func IsPositive(a *big.Int) bool {
	return a != nil && a.Sign() > 0
}

// Parse reads an amount written either in decimal or as a 0x prefixed
// hexadecimal number.
func Parse(s string) (*big.Int, error) {
	a, ok := math.ParseBig256(s)
	if !ok {
		return nil, errors.Wrapf(errors.ErrAmount, "cannot parse %q", s)
	}
	if err := Validate(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Add returns a new integer holding a + b. It fails if the result does not
// fit in 256 bits.
func Add(a, b *big.Int) (*big.Int, error) {
	if err := Validate(a); err != nil {
		return nil, errors.Wrap(err, "left operand")
	}
	if err := Validate(b); err != nil {
		return nil, errors.Wrap(err, "right operand")
	}
	sum := new(big.Int).Add(a, b)
	if sum.Cmp(MaxAmount) > 0 {
		return nil, errors.Wrapf(errors.ErrOverflow, "%s + %s", a, b)
	}
	return sum, nil
}

// Sub returns a new integer holding a - b. It fails with ErrAmount when b is
// greater than a, as amounts are never negative.
func Sub(a, b *big.Int) (*big.Int, error) {
	if err := Validate(a); err != nil {
		return nil, errors.Wrap(err, "left operand")
	}
	if err := Validate(b); err != nil {
		return nil, errors.Wrap(err, "right operand")
	}
	if a.Cmp(b) < 0 {
		return nil, errors.Wrapf(errors.ErrAmount, "cannot subtract %s from %s", b, a)
	}
	return new(big.Int).Sub(a, b), nil
}

// Format renders an amount of base units as a decimal number of whole
// units, given how many decimals a whole unit has. Format(1500, 3) is "1.5".
func Format(a *big.Int, decimals int32) string {
	if a == nil {
		return "0"
	}
	return decimal.NewFromBigInt(a, -decimals).String()
}
