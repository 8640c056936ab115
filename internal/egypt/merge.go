package egypt

import "slices"

// Merge coalesces consecutive unit fractions whose partial sum is itself a
// unit fraction. Walking the denominator-sorted list from index i, it keeps
// the furthest j for which terms i..j add up to 1/m, replaces that span with
// 1/m and continues after j. With reverse set the walk starts from the
// largest denominator instead, which can give a different term count.
//
// The heuristic is O(n²) in the number of terms. The result is sorted and
// has the same total, but the new unit fractions may collide with others;
// run Dedupe afterwards when distinct denominators are required.
func Merge(fs []Fraction, reverse bool) []Fraction {
	out, _ := merge(fs, reverse)
	return out
}

// merge is Merge that also reports how many spans were coalesced.
func merge(fs []Fraction, reverse bool) ([]Fraction, int) {
	units := make([]Fraction, 0, len(fs))
	var out []Fraction
	for _, f := range fs {
		if f.IsWhole() {
			out = append(out, f)
			continue
		}
		units = append(units, f)
	}
	sortFractions(units)
	if reverse {
		slices.Reverse(units)
	}

	merged := 0
	for i := 0; i < len(units); {
		sum := units[i].Value()
		last, lastSum := i, sum
		for j := i + 1; j < len(units); j++ {
			sum = sum.Add(units[j].Value())
			if sum.IsUnit() {
				last, lastSum = j, sum
			}
		}

		if last == i {
			out = append(out, units[i])
		} else {
			out = append(out, fromRational(lastSum))
			merged++
		}
		i = last + 1
	}
	return foldWholes(out), merged
}

