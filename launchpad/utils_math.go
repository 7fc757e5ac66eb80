package launchpad

import (
	"math/big"
)

// Numeric primitives kept available for a future true-integral curve. None of
// the shipped pricing formulas invoke them.

// Sqrt computes the integer square root using Newton's method.
func Sqrt(value *big.Int) *big.Int {
	if value.Sign() == 0 {
		return big.NewInt(0)
	}

	z := new(big.Int).Set(value)
	x := new(big.Int).Add(new(big.Int).Div(value, big.NewInt(2)), big.NewInt(1))

	for x.Cmp(z) < 0 {
		z = new(big.Int).Set(x)
		x = new(big.Int).Add(new(big.Int).Div(value, x), x)
		x = x.Div(x, big.NewInt(2))
	}
	return z
}

// LnApprox approximates the natural logarithm scaled by 1e6, counting ln(2)
// per halving.
func LnApprox(x *big.Int) *big.Int {
	if x.Cmp(big.NewInt(1)) <= 0 {
		return big.NewInt(0)
	}

	ln2 := big.NewInt(693_147) // ln(2) * 1e6
	result := big.NewInt(0)
	temp := new(big.Int).Set(x)
	two := big.NewInt(2)

	for temp.Cmp(two) > 0 {
		temp = new(big.Int).Div(temp, two)
		result = new(big.Int).Add(result, ln2)
	}
	return result
}

// ExpApprox approximates e^x for a 1e6-scaled argument with the first four
// Taylor terms.
func ExpApprox(x *big.Int) *big.Int {
	one := big.NewInt(PriceScale)
	if x.Sign() == 0 {
		return one
	}

	term3 := new(big.Int).Mul(x, x)
	term3 = term3.Div(term3, big.NewInt(2_000_000))

	term4 := new(big.Int).Mul(x, x)
	term4 = term4.Mul(term4, x)
	term4 = term4.Div(term4, big.NewInt(6_000_000_000_000))

	result := new(big.Int).Add(one, x)
	result = result.Add(result, term3)
	return result.Add(result, term4)
}
