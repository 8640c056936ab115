package egypt

import "math/big"

// Expand materializes symbolic terms as concrete terms: a whole marker becomes
// one whole Fraction and a run (b, v, i, j) becomes j-i+1 unit fractions in
// ascending order of denominator.
//
// The output length is the total run length, so callers bound it with Bisect
// before expanding untrusted input.
func Expand(terms []Term) []Fraction {
	var out []Fraction
	for _, t := range terms {
		if t.IsWhole() {
			out = append(out, WholeFraction(new(big.Int).Set(t.Base)))
			continue
		}
		for k := new(big.Int).Set(t.Start); k.Cmp(t.End) <= 0; k.Add(k, bigOne) {
			out = append(out, UnitFraction(t.Denominator(k)))
		}
	}
	return out
}
