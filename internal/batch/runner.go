// Package batch decomposes a stream of tab-delimited fractions.
//
// Each input line holds a numerator and a denominator expression separated
// by a tab; further fields are ignored. Lines are read in chunks, the lines
// of a chunk are decomposed concurrently by a bounded worker pool, and the
// results are written in input order before the next chunk is read. A bad
// line produces an error line in the output and never stops the run.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/big"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Iron-Ham/egypt/internal/egypt"
	"github.com/Iron-Ham/egypt/internal/errors"
	"github.com/Iron-Ham/egypt/internal/logging"
	"github.com/Iron-Ham/egypt/internal/output"
	"github.com/Iron-Ham/egypt/internal/rpn"
)

// DefaultChunkSize is the number of lines read before results are flushed.
const DefaultChunkSize = 256

// maxLineSize bounds a single input line.
const maxLineSize = 64 << 20

// Options configures a Runner.
type Options struct {
	// Workers bounds concurrent decompositions. Zero means GOMAXPROCS.
	Workers int
	// ChunkSize is the number of lines decomposed between flushes. Zero
	// means DefaultChunkSize.
	ChunkSize int
}

// Summary counts the lines a run handled.
type Summary struct {
	Lines     int
	Succeeded int
	Failed    int
}

// Runner decomposes batch input. It is safe to call Run from several
// goroutines with different readers and writers.
type Runner struct {
	decomposer *egypt.Decomposer
	formatter  output.Formatter
	workers    int
	chunkSize  int
	logger     *logging.Logger
}

// NewRunner creates a Runner. A nil logger discards log output.
func NewRunner(d *egypt.Decomposer, f output.Formatter, opts Options, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NopLogger()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	return &Runner{
		decomposer: d,
		formatter:  f,
		workers:    workers,
		chunkSize:  chunk,
		logger:     logger,
	}
}

type lineResult struct {
	res *egypt.Result
	err error
}

// Run reads lines from in until EOF and writes one formatted result per line
// to out. The context is checked before each chunk; a canceled run returns
// an error matching both errors.ErrCanceled and the context's error. Only
// read and write failures end a run early.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) (Summary, error) {
	var sum Summary

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	chunk := make([]string, 0, r.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("batch canceled", "lines", sum.Lines)
			return sum, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
		}

		chunk = chunk[:0]
		for len(chunk) < r.chunkSize && scanner.Scan() {
			chunk = append(chunk, scanner.Text())
		}
		if len(chunk) == 0 {
			break
		}

		results := r.decomposeChunk(sum.Lines, chunk)
		for i, lr := range results {
			var err error
			if lr.err != nil {
				sum.Failed++
				err = r.formatter.FormatError(out, lr.err)
			} else {
				sum.Succeeded++
				err = r.formatter.Format(out, lr.res)
			}
			if err != nil {
				return sum, errors.Wrapf(err, "write result for line %d", sum.Lines+i+1)
			}
		}
		sum.Lines += len(chunk)
	}
	if err := scanner.Err(); err != nil {
		return sum, errors.Wrap(err, "read batch input")
	}

	r.logger.Info("batch complete",
		"lines", sum.Lines, "succeeded", sum.Succeeded, "failed", sum.Failed)
	return sum, nil
}

// decomposeChunk decomposes lines concurrently. offset is the number of
// lines before the chunk.
func (r *Runner) decomposeChunk(offset int, lines []string) []lineResult {
	results := make([]lineResult, len(lines))

	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, text := range lines {
		g.Go(func() error {
			results[i] = r.decomposeLine(offset+i+1, text)
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	return results
}

func (r *Runner) decomposeLine(line int, text string) lineResult {
	logger := r.logger.WithLine(line)

	num, den, err := ParseLine(text)
	if err != nil {
		logger.Debug("line rejected", "error", err.Error())
		return lineResult{err: errors.NewBatchError(line, err)}
	}

	res, err := r.decomposer.Decompose(num, den)
	if err != nil {
		logger.Debug("decomposition failed", "error", err.Error())
		return lineResult{err: errors.NewBatchError(line, err)}
	}
	if logger.Enabled(logging.LevelDebug) {
		logger.Debug("line decomposed", "terms", res.Len())
	}
	return lineResult{res: res}
}

// ParseLine splits a batch line into numerator and denominator expressions,
// evaluates both and returns their absolute values. A trailing carriage
// return is ignored.
func ParseLine(text string) (num, den *big.Int, err error) {
	fields := strings.SplitN(strings.TrimSuffix(text, "\r"), "\t", 3)
	if len(fields) < 2 {
		return nil, nil, errors.ErrMalformedLine
	}

	num, err = rpn.Eval(fields[0])
	if err != nil {
		return nil, nil, err
	}
	den, err = rpn.Eval(fields[1])
	if err != nil {
		return nil, nil, err
	}
	return num.Abs(num), den.Abs(den), nil
}
