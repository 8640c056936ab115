// Package rational provides an immutable, always-reduced arbitrary-precision
// rational number.
package rational

import (
	"math/big"

	"github.com/Iron-Ham/egypt/internal/errors"
)

// Rational is an exact p/q with q > 0, kept in lowest terms.
// The zero value is 0/1. Values are never mutated after construction,
// so a Rational can be copied and shared freely.
type Rational struct {
	r *big.Rat
}

var one = big.NewInt(1)

// New returns num/den reduced to lowest terms.
// It returns an error wrapping errors.ErrZeroDenominator when den is zero.
func New(num, den *big.Int) (Rational, error) {
	if den.Sign() == 0 {
		return Rational{}, errors.NewValidationError("denominator must be non-zero").
			WithField("denominator").
			WithValue(den.String()).
			WithCause(errors.ErrZeroDenominator)
	}
	return Rational{r: new(big.Rat).SetFrac(num, den)}, nil
}

// MustNew is like New but panics on a zero denominator.
func MustNew(num, den *big.Int) Rational {
	r, err := New(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// FromInt64 returns num/den. It panics if den is zero.
func FromInt64(num, den int64) Rational {
	return MustNew(big.NewInt(num), big.NewInt(den))
}

// FromInt returns the integer n as a rational.
func FromInt(n *big.Int) Rational {
	return Rational{r: new(big.Rat).SetInt(n)}
}

// Unit returns 1/n. It panics if n is zero.
func Unit(n *big.Int) Rational {
	return MustNew(one, n)
}

func (a Rational) rat() *big.Rat {
	if a.r == nil {
		return new(big.Rat)
	}
	return a.r
}

// Num returns a copy of the reduced numerator.
func (a Rational) Num() *big.Int {
	return new(big.Int).Set(a.rat().Num())
}

// Den returns a copy of the reduced denominator (always positive).
func (a Rational) Den() *big.Int {
	return new(big.Int).Set(a.rat().Denom())
}

// Add returns a + b.
func (a Rational) Add(b Rational) Rational {
	return Rational{r: new(big.Rat).Add(a.rat(), b.rat())}
}

// Sub returns a - b.
func (a Rational) Sub(b Rational) Rational {
	return Rational{r: new(big.Rat).Sub(a.rat(), b.rat())}
}

// Cmp compares a and b and returns -1, 0 or +1.
func (a Rational) Cmp(b Rational) int {
	return a.rat().Cmp(b.rat())
}

// Equal reports whether a == b.
func (a Rational) Equal(b Rational) bool {
	return a.Cmp(b) == 0
}

// Sign returns -1, 0 or +1.
func (a Rational) Sign() int {
	return a.rat().Sign()
}

// IsZero reports whether a == 0.
func (a Rational) IsZero() bool {
	return a.Sign() == 0
}

// IsInteger reports whether the reduced denominator is 1.
func (a Rational) IsInteger() bool {
	return a.rat().IsInt()
}

// IsUnit reports whether the reduced numerator is 1, i.e. a is 1/n.
func (a Rational) IsUnit() bool {
	return a.rat().Num().Cmp(one) == 0
}

// Rat returns a copy of a as a *big.Rat.
func (a Rational) Rat() *big.Rat {
	return new(big.Rat).Set(a.rat())
}

// String returns "p/q", or "p" when q is 1.
func (a Rational) String() string {
	return a.rat().RatString()
}

// Sum returns the exact sum of xs. The sum of no values is 0.
func Sum(xs ...Rational) Rational {
	acc := new(big.Rat)
	for _, x := range xs {
		acc.Add(acc, x.rat())
	}
	return Rational{r: acc}
}
