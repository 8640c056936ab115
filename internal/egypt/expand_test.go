package egypt

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name  string
		terms []Term
		want  []string
	}{
		{
			name:  "seven elevenths",
			terms: []Term{NewTerm(1, 1, 1, 1), NewTerm(2, 3, 1, 3)},
			want:  []string{"1/2", "1/10", "1/40", "1/88"},
		},
		{
			name:  "whole marker",
			terms: []Term{Whole(big.NewInt(5))},
			want:  []string{"5"},
		},
		{
			name:  "offset run",
			terms: []Term{NewTerm(1, 1, 2, 4)},
			want:  []string{"1/6", "1/12", "1/20"},
		},
		{
			name:  "empty",
			terms: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fractionStrings(Expand(tt.terms))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Expand() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpand_DoesNotAliasWhole(t *testing.T) {
	base := big.NewInt(5)
	fs := Expand([]Term{Whole(base)})
	fs[0].Num.SetInt64(9)
	if base.Int64() != 5 {
		t.Errorf("Expand aliased the whole marker's base: %s", base)
	}
}
