// Package testutil provides testing utilities for egypt tests.
package testutil

import (
	"math/big"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

// BigInt parses a base-10 integer, failing the test on malformed input.
func BigInt(t testing.TB, s string) *big.Int {
	t.Helper()

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("invalid integer literal %q", s)
	}
	return n
}

// Pair is a numerator/denominator pair used by property tests.
type Pair struct {
	Num *big.Int
	Den *big.Int
}

// RandomPairs returns n deterministic pseudo-random pairs with
// 1 <= Den <= maxDen and 1 <= Num <= maxNum. The same seed always yields the
// same pairs.
func RandomPairs(seed uint64, n int, maxNum, maxDen int64) []Pair {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pairs := make([]Pair, n)
	for i := range pairs {
		pairs[i] = Pair{
			Num: big.NewInt(rng.Int64N(maxNum) + 1),
			Den: big.NewInt(rng.Int64N(maxDen) + 1),
		}
	}
	return pairs
}

// EdgePairs returns hand-picked pairs that exercise whole parts, unit
// fractions, large primes and highly composite denominators.
func EdgePairs(t testing.TB) []Pair {
	t.Helper()

	raw := [][2]string{
		{"0", "7"},
		{"1", "1"},
		{"5", "1"},
		{"1", "2"},
		{"2", "3"},
		{"7", "11"},
		{"4", "13"},
		{"5", "121"},
		{"12", "4"},
		{"17", "5"},
		{"99", "100"},
		{"101", "360"},
		{"999999", "1000000"},
		{"3", "1000003"},
		{"123456789", "987654321"},
		{"2", "170141183460469231731687303715884105727"},
		{"31415926535897932384626", "10000000000000000000000"},
	}
	pairs := make([]Pair, len(raw))
	for i, r := range raw {
		pairs[i] = Pair{Num: BigInt(t, r[0]), Den: BigInt(t, r[1])}
	}
	return pairs
}

// WriteFile creates a file with content under a fresh temporary directory
// and returns its path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
