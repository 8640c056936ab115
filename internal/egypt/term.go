package egypt

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/Iron-Ham/egypt/internal/rational"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// Term is a symbolic sum: a contiguous run of unit fractions
//
//	1/((b-v+v*k)(b+v*k))   for k = i..j
//
// whose total telescopes to (j-i+1)/((b-v+v*i)(b+v*j)).
// When Step, Start and End are all zero the term is a whole marker for the
// integer Base instead.
//
// Terms are treated as immutable once built; functions in this package never
// modify the big.Int values of a Term they receive.
type Term struct {
	Base  *big.Int
	Step  *big.Int
	Start *big.Int
	End   *big.Int
}

// Whole returns the whole marker for n.
func Whole(n *big.Int) Term {
	return Term{Base: n, Step: new(big.Int), Start: new(big.Int), End: new(big.Int)}
}

// NewTerm builds the run (b, v, i, j) from small integers.
func NewTerm(b, v, i, j int64) Term {
	return Term{Base: big.NewInt(b), Step: big.NewInt(v), Start: big.NewInt(i), End: big.NewInt(j)}
}

// IsWhole reports whether t is a whole marker.
func (t Term) IsWhole() bool {
	return t.Step.Sign() == 0 && t.Start.Sign() == 0 && t.End.Sign() == 0
}

// Len returns the number of unit fractions in the run, j-i+1.
func (t Term) Len() *big.Int {
	n := new(big.Int).Sub(t.End, t.Start)
	return n.Add(n, bigOne)
}

// Denominator returns (b-v+v*k)(b+v*k), the denominator of the k-th unit
// fraction of the run.
func (t Term) Denominator(k *big.Int) *big.Int {
	vk := new(big.Int).Mul(t.Step, k)
	hi := new(big.Int).Add(t.Base, vk)
	lo := new(big.Int).Sub(hi, t.Step)
	return lo.Mul(lo, hi)
}

// Aggregate returns the unreduced closed form of the run's value as
// numerator j-i+1 and denominator (b-v+v*i)(b+v*j).
func (t Term) Aggregate() (num, den *big.Int) {
	lo := new(big.Int).Mul(t.Step, t.Start)
	lo.Add(lo, t.Base).Sub(lo, t.Step)
	hi := new(big.Int).Mul(t.Step, t.End)
	hi.Add(hi, t.Base)
	return t.Len(), lo.Mul(lo, hi)
}

// Value returns the exact value of t.
func (t Term) Value() rational.Rational {
	if t.IsWhole() {
		return rational.FromInt(t.Base)
	}
	return rational.MustNew(t.Aggregate())
}

// String formats t as "b,v,i,j".
func (t Term) String() string {
	return fmt.Sprintf("%s,%s,%s,%s", t.Base, t.Step, t.Start, t.End)
}

// Fraction is a concrete term: the whole number Num when Den is 1, otherwise
// the unit fraction 1/Den.
type Fraction struct {
	Num *big.Int
	Den *big.Int
}

// WholeFraction returns the concrete whole term n.
func WholeFraction(n *big.Int) Fraction {
	return Fraction{Num: n, Den: big.NewInt(1)}
}

// UnitFraction returns 1/den.
func UnitFraction(den *big.Int) Fraction {
	return Fraction{Num: big.NewInt(1), Den: den}
}

// IsWhole reports whether f is a whole number rather than a unit fraction.
func (f Fraction) IsWhole() bool {
	return f.Den.Cmp(bigOne) == 0
}

// Value returns the exact value of f.
func (f Fraction) Value() rational.Rational {
	return rational.MustNew(f.Num, f.Den)
}

// String formats f as "n" for a whole term or "1/d" for a unit fraction.
func (f Fraction) String() string {
	if f.IsWhole() {
		return f.Num.String()
	}
	return fmt.Sprintf("%s/%s", f.Num, f.Den)
}

// fromRational converts a whole number or a unit fraction back to a Fraction.
func fromRational(r rational.Rational) Fraction {
	if r.IsInteger() {
		return WholeFraction(r.Num())
	}
	return Fraction{Num: r.Num(), Den: r.Den()}
}

// compareFractions orders whole terms first, then ascending denominator.
func compareFractions(a, b Fraction) int {
	aw, bw := a.IsWhole(), b.IsWhole()
	switch {
	case aw && !bw:
		return -1
	case !aw && bw:
		return 1
	}
	if c := a.Den.Cmp(b.Den); c != 0 {
		return c
	}
	return a.Num.Cmp(b.Num)
}

// sortFractions sorts fs in place into output order and returns it.
func sortFractions(fs []Fraction) []Fraction {
	slices.SortStableFunc(fs, compareFractions)
	return fs
}

// foldWholes replaces every whole term in fs with a single whole term holding
// their sum, dropping it when the sum is zero. The result is sorted.
func foldWholes(fs []Fraction) []Fraction {
	total := new(big.Int)
	out := make([]Fraction, 0, len(fs))
	for _, f := range fs {
		if f.IsWhole() {
			total.Add(total, f.Num)
			continue
		}
		out = append(out, f)
	}
	if total.Sign() != 0 {
		out = append(out, WholeFraction(total))
	}
	return sortFractions(out)
}

// Sum returns the exact total of fs.
func Sum(fs []Fraction) rational.Rational {
	vals := make([]rational.Rational, len(fs))
	for i, f := range fs {
		vals[i] = f.Value()
	}
	return rational.Sum(vals...)
}

// SymbolicSum returns the exact total of ts.
func SymbolicSum(ts []Term) rational.Rational {
	vals := make([]rational.Rational, len(ts))
	for i, t := range ts {
		vals[i] = t.Value()
	}
	return rational.Sum(vals...)
}
