// Package output renders decomposition results.
//
// A Formatter writes one Result (or one per-line failure in batch mode) at a
// time. Formatters keep no state between calls, so a caller that needs
// ordered output only has to serialize its calls.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/Iron-Ham/egypt/internal/egypt"
	"github.com/Iron-Ham/egypt/internal/errors"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatText   Format = "text"
	FormatBatch  Format = "batch"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatPretty Format = "pretty"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatBatch, FormatJSON, FormatYAML, FormatPretty}
}

// ParseFormat converts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", errors.NewValidationError(fmt.Sprintf("unknown output format %q", s)).
		WithField("output.format").
		WithValue(s)
}

// Formatter writes results.
type Formatter interface {
	// Format writes one result.
	Format(w io.Writer, res *egypt.Result) error
	// FormatError writes a failure that replaces a result, such as a
	// rejected batch line.
	FormatError(w io.Writer, err error) error
}

// Options tunes formatter construction.
type Options struct {
	// Width is the terminal width used by the pretty format. Zero means
	// DefaultWidth.
	Width int
	// Stats includes pipeline statistics in the structured formats.
	Stats bool
}

// DefaultWidth is the pretty format's width when none is known.
const DefaultWidth = 80

// New returns the formatter for f.
func New(f Format, opts Options) (Formatter, error) {
	switch f {
	case FormatText:
		return TextFormatter{}, nil
	case FormatBatch:
		return BatchFormatter{}, nil
	case FormatJSON:
		return JSONFormatter{Stats: opts.Stats}, nil
	case FormatYAML:
		return YAMLFormatter{Stats: opts.Stats}, nil
	case FormatPretty:
		width := opts.Width
		if width <= 0 {
			width = DefaultWidth
		}
		return PrettyFormatter{Width: width}, nil
	default:
		_, err := ParseFormat(string(f))
		return nil, err
	}
}

// Discard is a Formatter that writes nothing. It backs silent mode.
type Discard struct{}

// Format implements Formatter.
func (Discard) Format(io.Writer, *egypt.Result) error { return nil }

// FormatError implements Formatter.
func (Discard) FormatError(io.Writer, error) error { return nil }

// errorText returns the message shown for a failed line: the malformed-line
// notice verbatim, anything else prefixed with "error: ".
func errorText(err error) string {
	if errors.Is(err, errors.ErrMalformedLine) {
		return errors.ErrMalformedLine.Error()
	}
	var be *errors.BatchError
	if errors.As(err, &be) && be.Unwrap() != nil {
		err = be.Unwrap()
	}
	return "error: " + err.Error()
}

// errorLine returns the batch line number carried by err, or 0.
func errorLine(err error) int {
	var be *errors.BatchError
	if errors.As(err, &be) {
		return be.Line
	}
	return 0
}
