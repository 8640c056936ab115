package egypt

import (
	"fmt"
	"math/big"
)

// Symbolic decomposes x0/y0 (x0 >= 0, y0 > 0) into symbolic terms whose values
// sum exactly to x0/y0.
//
// The integer part, if any, comes first as a whole marker. The runs follow in
// ascending order of denominator. Each step of the recurrence takes v with
// x*v ≡ -1 (mod y), which makes x*v+1 = m*y for an integer m, and peels off
// the t = floor(x/m) unit fractions
//
//	1/((y'-v+v*k)(y'+v*k)), k = 1..t, where y' = y - t*v
//
// leaving the residue (x mod m)/y'. Denominators shrink like the Euclidean
// algorithm, so there are O(log y) runs.
func Symbolic(x0, y0 *big.Int) []Term {
	x := new(big.Int).Set(x0)
	y := new(big.Int).Set(y0)
	if g := new(big.Int).GCD(nil, nil, x, y); g.Cmp(bigOne) > 0 {
		x.Quo(x, g)
		y.Quo(y, g)
	}

	var out []Term
	if x.Cmp(y) >= 0 {
		q, r := new(big.Int).QuoRem(x, y, new(big.Int))
		out = append(out, Whole(q))
		x = r
	}

	var runs []Term
	for x.Sign() > 0 && y.Cmp(bigOne) > 0 {
		v := negInverse(x, y)

		m := new(big.Int).Mul(x, v)
		m.Add(m, bigOne).Quo(m, y)

		t, r := new(big.Int).QuoRem(x, m, new(big.Int))
		base := new(big.Int).Mul(t, v)
		base.Sub(y, base)

		runs = append(runs, Term{Base: base, Step: v, Start: big.NewInt(1), End: t})
		x, y = r, base
	}

	// Every step keeps 0 <= x < y with gcd(x, y) = 1, so y = 1 forces x = 0.
	if x.Sign() != 0 {
		panic(fmt.Sprintf("egypt: residue %s/%s left after symbolic decomposition of %s/%s", x, y, x0, y0))
	}

	for i := len(runs) - 1; i >= 0; i-- {
		out = append(out, runs[i])
	}
	return out
}

// negInverse returns v in [1, y-1] with x*v ≡ -1 (mod y), taken from the
// Bézout coefficient s of s*x + t*y = 1. x and y must be coprime and y > 1.
func negInverse(x, y *big.Int) *big.Int {
	s := new(big.Int)
	new(big.Int).GCD(s, nil, x, y)
	s.Neg(s)
	return s.Mod(s, y)
}
