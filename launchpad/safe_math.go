package launchpad

import (
	"errors"
	"math"
	"math/big"
	"math/bits"
)

// Checked u64 arithmetic for counter updates. Any overflow or underflow aborts
// the surrounding operation before state is committed.

func CheckedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrArithmeticOverflow
	}
	return sum, nil
}

func CheckedSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrArithmeticUnderflow
	}
	return diff, nil
}

func CheckedMul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrArithmeticOverflow
	}
	return lo, nil
}

// MulDivU64 computes a*b/denominator with a 128-bit intermediate product,
// truncating toward zero.
func MulDivU64(a, b, denominator uint64) (uint64, error) {
	if denominator == 0 {
		return 0, errors.New("SafeMath: division by zero")
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= denominator {
		return 0, ErrArithmeticOverflow
	}
	quo, _ := bits.Div64(hi, lo, denominator)
	return quo, nil
}

// MulDiv computes x*y/denominator over big integers with the requested
// rounding.
func MulDiv(x, y, denominator *big.Int, rounding Rounding) (*big.Int, error) {
	if denominator.Sign() == 0 {
		return nil, errors.New("SafeMath: division by zero")
	}
	prod := new(big.Int).Mul(x, y)
	if rounding == RoundingUp {
		numerator := new(big.Int).Add(prod, new(big.Int).Sub(denominator, big.NewInt(1)))
		return new(big.Int).Div(numerator, denominator), nil
	}
	return new(big.Int).Div(prod, denominator), nil
}

var maxUint64 = new(big.Int).SetUint64(math.MaxUint64)

// ToUint64 narrows a non-negative big integer back into a u64 counter.
func ToUint64(v *big.Int) (uint64, error) {
	if v.Sign() < 0 {
		return 0, ErrArithmeticUnderflow
	}
	if v.Cmp(maxUint64) > 0 {
		return 0, ErrArithmeticOverflow
	}
	return v.Uint64(), nil
}
