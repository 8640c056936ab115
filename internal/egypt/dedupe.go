package egypt

import (
	"math/big"
	"slices"
)

// Dedupe returns a list with the same total as fs in which no unit fraction
// appears twice. Whole terms are folded into one.
//
// Each pass sorts the list, finds the first run of c >= 2 copies of 1/n and
// replaces it with the expansion of Symbolic(c, n). A replacement can collide
// with terms that were already unique, so passes repeat until one finds no
// duplicate.
func Dedupe(fs []Fraction) []Fraction {
	out, _ := dedupe(fs)
	return out
}

// dedupe is Dedupe that also reports how many replacements were made.
func dedupe(fs []Fraction) ([]Fraction, int) {
	cur := foldWholes(slices.Clone(fs))
	passes := 0
	for {
		next, changed := dedupePass(cur)
		if !changed {
			return cur, passes
		}
		passes++
		cur = next
	}
}

// dedupePass replaces the first run of equal unit fractions in the sorted
// list fs. It reports false when fs has no duplicate.
func dedupePass(fs []Fraction) ([]Fraction, bool) {
	for i := 0; i < len(fs); {
		j := i + 1
		for j < len(fs) && !fs[i].IsWhole() && fs[j].Den.Cmp(fs[i].Den) == 0 {
			j++
		}
		if j-i < 2 {
			i = j
			continue
		}

		count := big.NewInt(int64(j - i))
		next := make([]Fraction, 0, len(fs))
		next = append(next, fs[:i]...)
		next = append(next, fs[j:]...)
		next = append(next, Expand(Symbolic(count, fs[i].Den))...)
		return foldWholes(next), true
	}
	return fs, false
}
