package rational

import (
	"math/big"
	"testing"

	"github.com/Iron-Ham/egypt/internal/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		num, den int64
		wantNum  int64
		wantDen  int64
	}{
		{"simple fraction", 3, 4, 3, 4},
		{"reduces to lowest terms", 6, 8, 3, 4},
		{"negative denominator", 3, -4, -3, 4},
		{"zero numerator", 0, 5, 0, 1},
		{"integer", 10, 2, 5, 1},
		{"already reduced", 7, 11, 7, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(big.NewInt(tt.num), big.NewInt(tt.den))
			if err != nil {
				t.Fatalf("New(%d, %d) error = %v", tt.num, tt.den, err)
			}
			if r.Num().Int64() != tt.wantNum || r.Den().Int64() != tt.wantDen {
				t.Errorf("New(%d, %d) = %s, want %d/%d", tt.num, tt.den, r, tt.wantNum, tt.wantDen)
			}
		})
	}
}

func TestNew_ZeroDenominator(t *testing.T) {
	_, err := New(big.NewInt(1), big.NewInt(0))
	if err == nil {
		t.Fatal("New(1, 0) error = nil, want error")
	}
	if !errors.Is(err, errors.ErrZeroDenominator) {
		t.Errorf("New(1, 0) error = %v, want ErrZeroDenominator", err)
	}
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("New(1, 0) error = %v, want ErrInvalidInput", err)
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustNew(1, 0) did not panic")
		}
	}()
	MustNew(big.NewInt(1), big.NewInt(0))
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Rational
		wantAdd string
		wantSub string
		wantCmp int
	}{
		{"halves and thirds", FromInt64(1, 2), FromInt64(1, 3), "5/6", "1/6", 1},
		{"same denominator", FromInt64(1, 4), FromInt64(2, 4), "3/4", "-1/4", -1},
		{"equal", FromInt64(2, 6), FromInt64(1, 3), "2/3", "0", 0},
		{"integers", FromInt64(2, 1), FromInt64(3, 1), "5", "-1", -1},
		{"zero value", Rational{}, FromInt64(3, 4), "3/4", "-3/4", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Add(tt.b).String(); got != tt.wantAdd {
				t.Errorf("%s + %s = %s, want %s", tt.a, tt.b, got, tt.wantAdd)
			}
			if got := tt.a.Sub(tt.b).String(); got != tt.wantSub {
				t.Errorf("%s - %s = %s, want %s", tt.a, tt.b, got, tt.wantSub)
			}
			if got := tt.a.Cmp(tt.b); got != tt.wantCmp {
				t.Errorf("Cmp(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.wantCmp)
			}
		})
	}
}

func TestImmutability(t *testing.T) {
	a := FromInt64(1, 2)
	b := FromInt64(1, 3)
	_ = a.Add(b)
	_ = a.Sub(b)
	if a.String() != "1/2" || b.String() != "1/3" {
		t.Errorf("operands mutated: a = %s, b = %s", a, b)
	}

	n := a.Num()
	n.SetInt64(99)
	if a.String() != "1/2" {
		t.Errorf("Num() leaked internal state: a = %s", a)
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name        string
		r           Rational
		wantZero    bool
		wantInteger bool
		wantUnit    bool
	}{
		{"zero", Rational{}, true, true, false},
		{"unit", FromInt64(1, 7), false, false, true},
		{"reducible unit", FromInt64(3, 21), false, false, true},
		{"one", FromInt64(1, 1), false, true, true},
		{"proper", FromInt64(2, 7), false, false, false},
		{"whole", FromInt64(5, 1), false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsZero(); got != tt.wantZero {
				t.Errorf("IsZero() = %v, want %v", got, tt.wantZero)
			}
			if got := tt.r.IsInteger(); got != tt.wantInteger {
				t.Errorf("IsInteger() = %v, want %v", got, tt.wantInteger)
			}
			if got := tt.r.IsUnit(); got != tt.wantUnit {
				t.Errorf("IsUnit() = %v, want %v", got, tt.wantUnit)
			}
		})
	}
}

func TestSum(t *testing.T) {
	if got := Sum().String(); got != "0" {
		t.Errorf("Sum() = %s, want 0", got)
	}
	got := Sum(Unit(big.NewInt(2)), Unit(big.NewInt(3)), Unit(big.NewInt(6)))
	if !got.Equal(FromInt64(1, 1)) {
		t.Errorf("1/2 + 1/3 + 1/6 = %s, want 1", got)
	}
}
