package egypt

import (
	"math/big"
	"testing"

	"github.com/Iron-Ham/egypt/internal/rational"
	"github.com/Iron-Ham/egypt/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSymbolic(t *testing.T) {
	tests := []struct {
		name     string
		num, den int64
		want     []string
	}{
		{"two thirds", 2, 3, []string{"1,1,1,2"}},
		{"seven elevenths", 7, 11, []string{"1,1,1,1", "2,3,1,3"}},
		{"reducible", 14, 22, []string{"1,1,1,1", "2,3,1,3"}},
		{"whole only", 5, 1, []string{"5,0,0,0"}},
		{"reducible whole", 12, 4, []string{"3,0,0,0"}},
		{"whole then run", 17, 5, []string{"3,0,0,0", "1,2,1,2"}},
		{"zero", 0, 7, nil},
		{"nearly one", 999999, 1000000, []string{"1,1,1,999999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := termStrings(Symbolic(big.NewInt(tt.num), big.NewInt(tt.den)))
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Symbolic(%d, %d) mismatch (-want +got):\n%s", tt.num, tt.den, diff)
			}
		})
	}
}

func TestSymbolic_DoesNotMutateInput(t *testing.T) {
	x, y := big.NewInt(14), big.NewInt(22)
	Symbolic(x, y)
	if x.Int64() != 14 || y.Int64() != 22 {
		t.Errorf("inputs mutated to %s/%s", x, y)
	}
}

func TestSymbolic_UnitFractions(t *testing.T) {
	for n := int64(2); n <= 300; n++ {
		terms := Symbolic(big.NewInt(1), big.NewInt(n))
		if len(terms) != 1 {
			t.Fatalf("Symbolic(1, %d) returned %d terms, want 1", n, len(terms))
		}
		if got := terms[0].Len().Int64(); got != 1 {
			t.Errorf("Symbolic(1, %d) run length = %d, want 1", n, got)
		}
		if got := terms[0].Value(); !got.Equal(rational.FromInt64(1, n)) {
			t.Errorf("Symbolic(1, %d) value = %s", n, got)
		}
	}
}

func TestSymbolic_PreservesValue(t *testing.T) {
	pairs := append(testutil.EdgePairs(t), testutil.RandomPairs(1, 500, 10000, 10000)...)
	for _, p := range pairs {
		want := rational.MustNew(p.Num, p.Den)
		terms := Symbolic(p.Num, p.Den)
		if got := SymbolicSum(terms); !got.Equal(want) {
			t.Errorf("Symbolic(%s, %s) sums to %s", p.Num, p.Den, got)
		}
		for i, term := range terms {
			if term.IsWhole() && i != 0 {
				t.Errorf("Symbolic(%s, %s): whole marker at index %d", p.Num, p.Den, i)
			}
		}
	}
}

func TestSymbolic_FewTerms(t *testing.T) {
	// 7/11 needs only two symbolic terms, where greedy expansion needs four
	// unit fractions with a largest denominator of 1540.
	terms := Symbolic(big.NewInt(7), big.NewInt(11))
	if len(terms) >= 11 {
		t.Errorf("Symbolic(7, 11) returned %d terms", len(terms))
	}
}

func TestNegInverse(t *testing.T) {
	for y := int64(2); y <= 60; y++ {
		for x := int64(1); x < y; x++ {
			if new(big.Int).GCD(nil, nil, big.NewInt(x), big.NewInt(y)).Int64() != 1 {
				continue
			}
			v := negInverse(big.NewInt(x), big.NewInt(y)).Int64()
			if v < 1 || v >= y {
				t.Fatalf("negInverse(%d, %d) = %d, out of [1, %d]", x, y, v, y-1)
			}
			if (x*v+1)%y != 0 {
				t.Errorf("negInverse(%d, %d) = %d: %d*%d+1 not divisible by %d", x, y, v, x, v, y)
			}
		}
	}
}
