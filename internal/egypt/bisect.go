package egypt

import (
	"math/big"
	"slices"
)

// MinLimit is the smallest accepted bisection limit.
const MinLimit = 2

// Bisect rewrites every run longer than limit into runs of at most limit unit
// fractions with the same total value. Whole markers and short runs pass
// through unchanged. A limit below MinLimit is treated as MinLimit.
//
// A long run is replaced by its reduced aggregate a/b split into two nearly
// equal halves, each decomposed again with Symbolic. A decomposition of c/b
// never yields a run longer than c, so the run lengths strictly shrink and
// the loop terminates. Work is kept on an explicit stack.
func Bisect(terms []Term, limit int) []Term {
	out, _ := bisect(terms, limit)
	return out
}

// bisect is Bisect that also reports how many runs were split.
func bisect(terms []Term, limit int) ([]Term, int) {
	bound := big.NewInt(int64(max(limit, MinLimit)))

	// Reversed so that pops come out in input order.
	stack := slices.Clone(terms)
	slices.Reverse(stack)

	out := make([]Term, 0, len(terms))
	splits := 0
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if t.IsWhole() || t.Len().Cmp(bound) <= 0 {
			out = append(out, t)
			continue
		}

		splits++
		num, den := t.Aggregate()
		g := new(big.Int).GCD(nil, nil, num, den)
		num.Quo(num, g)
		den.Quo(den, g)

		var parts []*big.Int
		if num.Cmp(bigTwo) <= 0 {
			// Every run of num/den is at most num <= 2 long.
			parts = []*big.Int{num}
		} else {
			parts = halve(num)
		}

		// Pushed in reverse so the first half is processed first.
		for i := len(parts) - 1; i >= 0; i-- {
			sub := Symbolic(parts[i], den)
			slices.Reverse(sub)
			stack = append(stack, sub...)
		}
	}
	return out, splits
}

// halve splits a >= 3 into two positive parts summing to a: (a-1)/2 and
// (a+1)/2 when a is odd, a/2-1 and a/2+1 when a is even. The parts differ so
// that the two decompositions do not repeat each other.
func halve(a *big.Int) []*big.Int {
	half, rem := new(big.Int).QuoRem(a, bigTwo, new(big.Int))
	if rem.Sign() != 0 {
		return []*big.Int{half, new(big.Int).Add(half, bigOne)}
	}
	lo := new(big.Int).Sub(half, bigOne)
	hi := new(big.Int).Add(half, bigOne)
	return []*big.Int{lo, hi}
}
