// Package rpn evaluates reverse-Polish integer expressions such as
// "2 127 ^ 1 -" into a single big integer.
//
// Tokens are separated by whitespace. Integer literals (with an optional
// sign) are pushed; every other token must name an operator:
//
//	+ - * ^ / %        binary arithmetic (/ and % floor towards -inf)
//	sum prod lcm       fold the whole stack into one value
//	seq                a b -> a, a+1, ..., b
//	! p np pp sqrt fib factorial, nth prime, next/previous prime,
//	                   integer square root, Fibonacci number
//
// The value of an expression is the top of the stack once every token has
// been consumed.
package rpn

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/Iron-Ham/egypt/internal/errors"
)

// Operand bounds. Operators refuse arguments past these, and no value on the
// stack may exceed MaxBits, so evaluation memory grows at most linearly with
// the expression length.
const (
	MaxBits       = 1 << 24
	MaxExponent   = 1 << 20
	MaxSeqLen     = 1 << 16
	MaxFactorial  = 20000
	MaxPrimeIndex = 1 << 18
	MaxFib        = 1 << 22
)

type stack struct {
	items []*big.Int
}

func (s *stack) push(vs ...*big.Int) {
	s.items = append(s.items, vs...)
}

func (s *stack) pop() *big.Int {
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v
}

// drain removes and returns every item, top first.
func (s *stack) drain() []*big.Int {
	out := make([]*big.Int, len(s.items))
	for i, v := range s.items {
		out[len(out)-1-i] = v
	}
	s.items = s.items[:0]
	return out
}

// op is one entry of the operator table. Exactly one of unary, binary or
// fold is set.
type op struct {
	unary  func(a *big.Int) ([]*big.Int, error)
	binary func(a, b *big.Int) ([]*big.Int, error)
	fold   func(vs []*big.Int) (*big.Int, error)
}

var ops map[string]op

func init() {
	ops = map[string]op{
		"+":    {binary: single(func(a, b *big.Int) (*big.Int, error) { return new(big.Int).Add(a, b), nil })},
		"-":    {binary: single(func(a, b *big.Int) (*big.Int, error) { return new(big.Int).Sub(a, b), nil })},
		"*":    {binary: single(func(a, b *big.Int) (*big.Int, error) { return new(big.Int).Mul(a, b), nil })},
		"^":    {binary: single(pow)},
		"/":    {binary: single(floorDiv)},
		"%":    {binary: single(floorMod)},
		"seq":  {binary: seq},
		"sum":  {fold: sum},
		"prod": {fold: prod},
		"lcm":  {fold: lcm},
		"!":    {unary: one(factorial)},
		"p":    {unary: one(nthPrime)},
		"np":   {unary: one(nextPrime)},
		"pp":   {unary: one(prevPrime)},
		"sqrt": {unary: one(isqrt)},
		"fib":  {unary: one(fib)},
	}
}

func single(f func(a, b *big.Int) (*big.Int, error)) func(a, b *big.Int) ([]*big.Int, error) {
	return func(a, b *big.Int) ([]*big.Int, error) {
		v, err := f(a, b)
		if err != nil {
			return nil, err
		}
		return []*big.Int{v}, nil
	}
}

func one(f func(a *big.Int) (*big.Int, error)) func(a *big.Int) ([]*big.Int, error) {
	return func(a *big.Int) ([]*big.Int, error) {
		v, err := f(a)
		if err != nil {
			return nil, err
		}
		return []*big.Int{v}, nil
	}
}

// Operators returns the names of all supported operators.
func Operators() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Eval evaluates expr and returns the value left on top of the stack.
func Eval(expr string) (*big.Int, error) {
	tokens := strings.Fields(expr)
	if len(tokens) == 0 {
		return nil, errors.NewExpressionError("nothing to evaluate", errors.ErrEmptyExpression).
			WithExpr(expr)
	}

	s := &stack{}
	for pos, tok := range tokens {
		if err := s.apply(tok); err != nil {
			var ee *errors.ExpressionError
			if errors.As(err, &ee) {
				return nil, ee.WithExpr(expr).WithToken(tok).WithPosition(pos)
			}
			return nil, err
		}
	}
	if len(s.items) == 0 {
		return nil, errors.NewExpressionError("expression leaves nothing on the stack", errors.ErrStackUnderflow).
			WithExpr(expr)
	}
	return s.pop(), nil
}

// MustEval is like Eval but panics on error. It is meant for constants in
// tests and examples.
func MustEval(expr string) *big.Int {
	v, err := Eval(expr)
	if err != nil {
		panic(err)
	}
	return v
}

func (s *stack) apply(tok string) error {
	if v, ok := parseInt(tok); ok {
		s.push(v)
		return nil
	}

	o, ok := ops[tok]
	if !ok {
		return errors.NewExpressionError("not a number or operator", errors.ErrUnknownToken)
	}

	var (
		out []*big.Int
		err error
	)
	switch {
	case o.fold != nil:
		var v *big.Int
		v, err = o.fold(s.drain())
		out = []*big.Int{v}
	case o.binary != nil:
		if len(s.items) < 2 {
			return errors.NewExpressionError("operator needs two operands", errors.ErrStackUnderflow)
		}
		b := s.pop()
		a := s.pop()
		out, err = o.binary(a, b)
	default:
		if len(s.items) < 1 {
			return errors.NewExpressionError("operator needs an operand", errors.ErrStackUnderflow)
		}
		out, err = o.unary(s.pop())
	}
	if err != nil {
		return err
	}
	for _, v := range out {
		if err := checkBits(int64(v.BitLen())); err != nil {
			return err
		}
	}
	s.push(out...)
	return nil
}

func parseInt(tok string) (*big.Int, bool) {
	digits := strings.TrimLeft(tok, "+-")
	if len(tok)-len(digits) > 1 || digits == "" {
		return nil, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return nil, false
		}
	}
	return new(big.Int).SetString(tok, 10)
}

func outOfRange(format string, args ...any) error {
	return errors.NewExpressionError(fmt.Sprintf(format, args...), errors.ErrOperandOutOfRange)
}

// bounded returns a as an int if lo <= a <= hi.
func bounded(a *big.Int, lo, hi int64, what string) (int64, error) {
	if !a.IsInt64() || a.Int64() < lo || a.Int64() > hi {
		return 0, outOfRange("%s must be in [%d, %d], got %s", what, lo, hi, a)
	}
	return a.Int64(), nil
}

// checkBits rejects a value, or a group of values, of more than MaxBits bits.
func checkBits(bits int64) error {
	if bits > MaxBits {
		return outOfRange("result would have about %d bits, more than %d", bits, MaxBits)
	}
	return nil
}

func pow(a, b *big.Int) (*big.Int, error) {
	e, err := bounded(b, 0, MaxExponent, "exponent")
	if err != nil {
		return nil, err
	}
	// |a|^e has at most BitLen(a)*e bits
	if err := checkBits(int64(a.BitLen()) * e); err != nil {
		return nil, err
	}
	return new(big.Int).Exp(a, big.NewInt(e), nil), nil
}

// floorDivMod returns q and r with a = q*b + r and r taking the sign of b.
func floorDivMod(a, b *big.Int) (q, r *big.Int, err error) {
	if b.Sign() == 0 {
		return nil, nil, errors.NewExpressionError("divisor is zero", errors.ErrDivisionByZero)
	}
	q, r = new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && r.Sign() != b.Sign() {
		q.Sub(q, big.NewInt(1))
		r.Add(r, b)
	}
	return q, r, nil
}

func floorDiv(a, b *big.Int) (*big.Int, error) {
	q, _, err := floorDivMod(a, b)
	return q, err
}

func floorMod(a, b *big.Int) (*big.Int, error) {
	_, r, err := floorDivMod(a, b)
	return r, err
}

func seq(a, b *big.Int) ([]*big.Int, error) {
	n := new(big.Int).Sub(b, a)
	if n.Sign() < 0 {
		return nil, nil
	}
	if n.Cmp(big.NewInt(MaxSeqLen-1)) > 0 {
		return nil, outOfRange("seq may produce at most %d values", MaxSeqLen)
	}
	width := int64(max(a.BitLen(), b.BitLen()))
	if err := checkBits((n.Int64() + 1) * width); err != nil {
		return nil, err
	}
	out := make([]*big.Int, 0, n.Int64()+1)
	for v := new(big.Int).Set(a); v.Cmp(b) <= 0; v = new(big.Int).Add(v, big.NewInt(1)) {
		out = append(out, v)
	}
	return out, nil
}

func sum(vs []*big.Int) (*big.Int, error) {
	total := new(big.Int)
	for _, v := range vs {
		total.Add(total, v)
	}
	return total, nil
}

// totalBits bounds the size of a product or lcm of vs.
func totalBits(vs []*big.Int) int64 {
	var bits int64
	for _, v := range vs {
		bits += int64(v.BitLen())
	}
	return bits
}

func prod(vs []*big.Int) (*big.Int, error) {
	if err := checkBits(totalBits(vs)); err != nil {
		return nil, err
	}
	total := big.NewInt(1)
	for _, v := range vs {
		total.Mul(total, v)
	}
	return total, nil
}

// lcm folds the least common multiple of |v| over vs. A zero operand makes
// the result zero.
func lcm(vs []*big.Int) (*big.Int, error) {
	if err := checkBits(totalBits(vs)); err != nil {
		return nil, err
	}
	total := big.NewInt(1)
	for _, v := range vs {
		if v.Sign() == 0 {
			return new(big.Int), nil
		}
		av := new(big.Int).Abs(v)
		g := new(big.Int).GCD(nil, nil, total, av)
		total.Mul(total, av.Quo(av, g))
	}
	return total, nil
}

func factorial(a *big.Int) (*big.Int, error) {
	if a.Sign() <= 0 {
		return big.NewInt(1), nil
	}
	n, err := bounded(a, 0, MaxFactorial, "factorial operand")
	if err != nil {
		return nil, err
	}
	return new(big.Int).MulRange(1, n), nil
}

func isqrt(a *big.Int) (*big.Int, error) {
	if a.Sign() < 0 {
		return nil, outOfRange("square root of negative %s", a)
	}
	return new(big.Int).Sqrt(a), nil
}

// fib returns F(n) by fast doubling:
//
//	F(2k)   = F(k) * (2F(k+1) - F(k))
//	F(2k+1) = F(k)² + F(k+1)²
func fib(a *big.Int) (*big.Int, error) {
	n, err := bounded(a, 0, MaxFib, "fib index")
	if err != nil {
		return nil, err
	}
	x, y := new(big.Int), big.NewInt(1)
	for bit := 62; bit >= 0; bit-- {
		// x, y = F(k), F(k+1)
		t := new(big.Int).Lsh(y, 1)
		t.Sub(t, x).Mul(t, x)
		u := new(big.Int).Mul(x, x)
		u.Add(u, new(big.Int).Mul(y, y))
		x, y = t, u
		if n>>uint(bit)&1 == 1 {
			x, y = y, new(big.Int).Add(t, u)
		}
	}
	return x, nil
}
