// Package egypt writes positive rationals as Egyptian fractions: sums of
// distinct unit fractions, plus a whole part when the value is at least one.
//
// The engine never walks the greedy (Fibonacci–Sylvester) expansion. Instead
// a modular-inverse recurrence produces a handful of symbolic terms, each
// standing for a whole arithmetic-progression run of unit fractions whose sum
// telescopes:
//
//	1/((b-v+vk)(b+vk)) = (1/v) * (1/(b-v+vk) - 1/(b+vk))
//
// The pipeline is
//
//	Symbolic -> Bisect -> Expand -> Dedupe -> [Merge -> Dedupe]
//
// Symbolic runs the recurrence. Bisect splits runs longer than a limit so the
// expansion stays small. Expand materializes the unit fractions. Dedupe
// repairs repeated denominators, and Merge optionally coalesces spans whose
// partial sum is a unit fraction.
//
// Every stage preserves the exact value, which is what the tests check; the
// particular denominators are an artifact of the recurrence.
//
// # Usage
//
//	res, err := egypt.Decompose(big.NewInt(7), big.NewInt(11), egypt.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	for _, f := range res.Terms {
//	    fmt.Println(f) // 1/2, 1/10, 1/40, 1/88
//	}
//
// All functions are synchronous and allocate their own working lists; a
// Decomposer may be shared between goroutines.
package egypt
