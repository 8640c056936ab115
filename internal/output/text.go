package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Iron-Ham/egypt/internal/egypt"
)

// TextFormatter writes one term per line: "num<TAB>den" for concrete terms
// and "b<TAB>v<TAB>i<TAB>j" for symbolic ones.
type TextFormatter struct{}

// Format implements Formatter.
func (TextFormatter) Format(w io.Writer, res *egypt.Result) error {
	bw := bufio.NewWriter(w)
	if res.Raw {
		for _, t := range res.Symbolic {
			fmt.Fprintf(bw, "%s\t%s\t%s\t%s\n", t.Base, t.Step, t.Start, t.End)
		}
	} else {
		for _, f := range res.Terms {
			fmt.Fprintf(bw, "%s\t%s\n", f.Num, f.Den)
		}
	}
	return bw.Flush()
}

// FormatError implements Formatter.
func (TextFormatter) FormatError(w io.Writer, err error) error {
	_, werr := fmt.Fprintln(w, errorText(err))
	return werr
}

// BatchFormatter writes each result on one line:
//
//	num<TAB>den<TAB>whole<TAB>d1 d2 d3 ...
//
// with "0" in the whole column when the value is below one. Symbolic terms
// are written as "b,v,i,j" instead of denominators.
type BatchFormatter struct{}

// Format implements Formatter.
func (BatchFormatter) Format(w io.Writer, res *egypt.Result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\t%s\t", res.Numerator, res.Denominator)

	items, whole := batchItems(res)
	switch {
	case whole != "":
		fmt.Fprintf(bw, "%s\t", whole)
	case len(items) > 0:
		bw.WriteString("0\t")
	}
	for i, item := range items {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(item)
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

// batchItems splits off a leading whole term and renders the rest.
func batchItems(res *egypt.Result) (items []string, whole string) {
	if res.Raw {
		for i, t := range res.Symbolic {
			if i == 0 && t.IsWhole() {
				whole = t.Base.String()
				continue
			}
			items = append(items, t.String())
		}
		return items, whole
	}
	for i, f := range res.Terms {
		if i == 0 && f.IsWhole() {
			whole = f.Num.String()
			continue
		}
		items = append(items, f.Den.String())
	}
	return items, whole
}

// FormatError implements Formatter.
func (BatchFormatter) FormatError(w io.Writer, err error) error {
	_, werr := fmt.Fprintln(w, errorText(err))
	return werr
}
