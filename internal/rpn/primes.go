package rpn

import (
	"math"
	"math/big"
)

// primeRounds is the Miller-Rabin round count passed to ProbablyPrime. The
// test is exact below 2^64.
const primeRounds = 20

// nthPrime returns the n-th prime, with p(1) = 2.
func nthPrime(a *big.Int) (*big.Int, error) {
	n, err := bounded(a, 1, MaxPrimeIndex, "prime index")
	if err != nil {
		return nil, err
	}

	// Rosser's bound: p(n) < n(ln n + ln ln n) for n >= 6.
	limit := int64(15)
	if n >= 6 {
		fn := float64(n)
		limit = int64(fn*(math.Log(fn)+math.Log(math.Log(fn)))) + 1
	}

	composite := make([]bool, limit+1)
	count := int64(0)
	for i := int64(2); i <= limit; i++ {
		if composite[i] {
			continue
		}
		count++
		if count == n {
			return big.NewInt(i), nil
		}
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}
	// Unreachable while Rosser's bound holds.
	panic("rpn: prime sieve too small")
}

// nextPrime returns the smallest prime greater than a.
func nextPrime(a *big.Int) (*big.Int, error) {
	two := big.NewInt(2)
	if a.Cmp(two) < 0 {
		return two, nil
	}
	c := new(big.Int).Add(a, big.NewInt(1))
	if c.Bit(0) == 0 && c.Cmp(two) != 0 {
		c.Add(c, big.NewInt(1))
	}
	for !c.ProbablyPrime(primeRounds) {
		c.Add(c, two)
	}
	return c, nil
}

// prevPrime returns the largest prime less than a.
func prevPrime(a *big.Int) (*big.Int, error) {
	if a.Cmp(big.NewInt(3)) < 0 {
		return nil, outOfRange("no prime below %s", a)
	}
	c := new(big.Int).Sub(a, big.NewInt(1))
	for !c.ProbablyPrime(primeRounds) {
		c.Sub(c, big.NewInt(1))
	}
	return c, nil
}
