package egypt

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDedupe(t *testing.T) {
	tests := []struct {
		name string
		in   []Fraction
		want []string
	}{
		{
			name: "no duplicates",
			in:   units(6, 2, 3),
			want: []string{"1/2", "1/3", "1/6"},
		},
		{
			name: "pair of odd denominators",
			in:   units(5, 5),
			want: []string{"1/3", "1/15"},
		},
		{
			name: "pair of even denominators",
			in:   units(8, 8),
			want: []string{"1/4"},
		},
		{
			name: "pair of halves becomes whole",
			in:   units(2, 2),
			want: []string{"1"},
		},
		{
			name: "whole absorbs new whole",
			in:   append([]Fraction{WholeFraction(big.NewInt(1))}, units(2, 2)...),
			want: []string{"2"},
		},
		{
			name: "triple",
			in:   units(5, 5, 5),
			want: []string{"1/2", "1/10"},
		},
		{
			name: "cascading collisions",
			in:   units(3, 3, 2, 6),
			want: []string{"1", "1/3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedupe(tt.in)
			if diff := cmp.Diff(tt.want, fractionStrings(got)); diff != "" {
				t.Errorf("Dedupe() mismatch (-want +got):\n%s", diff)
			}
			if !Sum(got).Equal(Sum(tt.in)) {
				t.Errorf("Dedupe() sums to %s, want %s", Sum(got), Sum(tt.in))
			}
		})
	}
}

func TestDedupe_CountsPasses(t *testing.T) {
	_, passes := dedupe(units(3, 3, 2, 6))
	if passes != 3 {
		t.Errorf("passes = %d, want 3", passes)
	}
	_, passes = dedupe(units(2, 3, 6))
	if passes != 0 {
		t.Errorf("passes = %d, want 0", passes)
	}
}

func TestDedupe_DoesNotModifyInput(t *testing.T) {
	in := units(5, 3, 5)
	Dedupe(in)
	if diff := cmp.Diff([]string{"1/5", "1/3", "1/5"}, fractionStrings(in)); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
}
