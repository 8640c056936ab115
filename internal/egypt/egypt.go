package egypt

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/Iron-Ham/egypt/internal/errors"
	"github.com/Iron-Ham/egypt/internal/logging"
	"github.com/Iron-Ham/egypt/internal/rational"
)

// DefaultLimit is the default maximum run length kept by Bisect.
const DefaultLimit = 8

// Options controls a decomposition.
type Options struct {
	// Reverse walks the merge from the largest denominator, and in raw mode
	// emits the symbolic terms in reverse order (whole marker last).
	Reverse bool
	// Merge enables the O(n²) merge pass that may reduce the term count.
	Merge bool
	// Raw returns symbolic terms instead of concrete unit fractions.
	Raw bool
	// Bisect applies Bisect in raw mode. Concrete output is always bisected.
	Bisect bool
	// Limit is the maximum run length kept by Bisect (>= MinLimit).
	Limit int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{Limit: DefaultLimit}
}

// Validate checks that the options are usable.
func (o Options) Validate() error {
	if o.Limit < MinLimit {
		return errors.NewValidationError(fmt.Sprintf("limit must be at least %d", MinLimit)).
			WithField("limit").
			WithValue(o.Limit).
			WithCause(errors.ErrInvalidLimit)
	}
	return nil
}

// Stats describes the work done by one decomposition.
type Stats struct {
	// SymbolicTerms is the number of terms produced by the recurrence.
	SymbolicTerms int `json:"symbolic_terms" yaml:"symbolic_terms"`
	// Splits is the number of runs Bisect divided.
	Splits int `json:"splits" yaml:"splits"`
	// DedupePasses is the number of duplicate runs replaced.
	DedupePasses int `json:"dedupe_passes" yaml:"dedupe_passes"`
	// MergedSpans is the number of spans the merge pass collapsed.
	MergedSpans int `json:"merged_spans" yaml:"merged_spans"`
}

// Result is the outcome of a decomposition.
type Result struct {
	// Numerator and Denominator are the input as given.
	Numerator   *big.Int
	Denominator *big.Int
	// Raw is set when Symbolic holds the answer instead of Terms.
	Raw bool
	// Terms holds the concrete terms, whole term first, then ascending
	// distinct denominators.
	Terms []Fraction
	// Symbolic holds the symbolic terms in raw mode.
	Symbolic []Term
	Stats    Stats
}

// Value returns the exact total of the result's terms.
func (r *Result) Value() rational.Rational {
	if r.Raw {
		return SymbolicSum(r.Symbolic)
	}
	return Sum(r.Terms)
}

// Len returns the number of terms in the result.
func (r *Result) Len() int {
	if r.Raw {
		return len(r.Symbolic)
	}
	return len(r.Terms)
}

// Decomposer runs the decomposition pipeline with fixed options.
// A Decomposer holds no mutable state and is safe for concurrent use.
type Decomposer struct {
	opts   Options
	logger *logging.Logger
}

// New creates a Decomposer. A nil logger discards log output.
func New(opts Options, logger *logging.Logger) (*Decomposer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Decomposer{opts: opts, logger: logger}, nil
}

// Options returns the options the Decomposer was created with.
func (d *Decomposer) Options() Options {
	return d.opts
}

// Decompose writes num/den as a sum of a whole term and distinct unit
// fractions, or as symbolic terms when Options.Raw is set. Both arguments
// must be non-negative and den must be non-zero.
func (d *Decomposer) Decompose(num, den *big.Int) (*Result, error) {
	if err := validateInput(num, den); err != nil {
		return nil, err
	}

	res := &Result{
		Numerator:   new(big.Int).Set(num),
		Denominator: new(big.Int).Set(den),
		Raw:         d.opts.Raw,
	}

	terms := Symbolic(num, den)
	res.Stats.SymbolicTerms = len(terms)
	d.logger.WithStage("symbolic").Debug("decomposed", "terms", len(terms))

	if d.opts.Raw {
		if d.opts.Bisect {
			terms, res.Stats.Splits = bisect(terms, d.opts.Limit)
			d.logger.WithStage("bisect").Debug("bisected", "terms", len(terms), "splits", res.Stats.Splits)
		}
		if d.opts.Reverse {
			slices.Reverse(terms)
		}
		res.Symbolic = terms
		return res, nil
	}

	terms, res.Stats.Splits = bisect(terms, d.opts.Limit)
	d.logger.WithStage("bisect").Debug("bisected", "terms", len(terms), "splits", res.Stats.Splits)

	fs := Expand(terms)
	d.logger.WithStage("expand").Debug("expanded", "terms", len(fs))

	var passes int
	fs, passes = dedupe(fs)
	res.Stats.DedupePasses += passes
	d.logger.WithStage("dedupe").Debug("resolved duplicates", "terms", len(fs), "passes", passes)

	if d.opts.Merge {
		fs, res.Stats.MergedSpans = merge(fs, d.opts.Reverse)
		fs, passes = dedupe(fs)
		res.Stats.DedupePasses += passes
		d.logger.WithStage("merge").Debug("merged",
			"terms", len(fs), "spans", res.Stats.MergedSpans, "passes", passes)
	}

	res.Terms = fs
	return res, nil
}

// Decompose is a convenience wrapper running a Decomposer without logging.
func Decompose(num, den *big.Int, opts Options) (*Result, error) {
	d, err := New(opts, nil)
	if err != nil {
		return nil, err
	}
	return d.Decompose(num, den)
}

func validateInput(num, den *big.Int) error {
	if den.Sign() == 0 {
		return errors.NewValidationError("denominator must be non-zero").
			WithField("denominator").
			WithValue(den.String()).
			WithCause(errors.ErrZeroDenominator)
	}
	if den.Sign() < 0 {
		return errors.NewValidationError("denominator must be positive").
			WithField("denominator").
			WithValue(den.String()).
			WithCause(errors.ErrNegativeInput)
	}
	if num.Sign() < 0 {
		return errors.NewValidationError("numerator must not be negative").
			WithField("numerator").
			WithValue(num.String()).
			WithCause(errors.ErrNegativeInput)
	}
	return nil
}
