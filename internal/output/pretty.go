package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/Iron-Ham/egypt/internal/egypt"
	"github.com/Iron-Ham/egypt/internal/util"
)

// digitNoteWidth is the room reserved for a " (N digits)" note.
const digitNoteWidth = 14

// PrettyFormatter writes a styled, numbered listing fitted to Width columns.
// Denominators too long for the line are abbreviated in the middle.
type PrettyFormatter struct {
	Width int
}

// Format implements Formatter.
func (p PrettyFormatter) Format(w io.Writer, res *egypt.Result) error {
	bw := bufio.NewWriter(w)

	header := fmt.Sprintf("%s/%s  %d terms", res.Numerator, res.Denominator, res.Len())
	if res.Raw {
		header = fmt.Sprintf("%s/%s  %d symbolic terms", res.Numerator, res.Denominator, res.Len())
	}
	bw.WriteString(headerStyle.Render(util.TruncateANSI(header, p.Width)))
	bw.WriteByte('\n')

	if res.Len() == 0 {
		p.writeLine(bw, mutedStyle.Render("(zero)"))
	}
	if res.Raw {
		for i, t := range res.Symbolic {
			p.writeLine(bw, indexStyle.Render(fmt.Sprint(i+1))+p.renderTerm(t))
		}
	} else {
		for i, f := range res.Terms {
			p.writeLine(bw, indexStyle.Render(fmt.Sprint(i+1))+p.renderFraction(f))
		}
	}
	return bw.Flush()
}

func (p PrettyFormatter) renderFraction(f egypt.Fraction) string {
	if f.IsWhole() {
		return wholeStyle.Render(p.abbreviate(f.Num.String()))
	}
	den := f.Den.String()
	short := p.abbreviate(den)
	line := unitStyle.Render("1/" + short)
	if short != den {
		line += mutedStyle.Render(fmt.Sprintf(" (%d digits)", util.DigitCount(den)))
	}
	return line
}

func (p PrettyFormatter) renderTerm(t egypt.Term) string {
	if t.IsWhole() {
		return wholeStyle.Render(p.abbreviate(t.Base.String()))
	}
	return unitStyle.Render(t.String()) + mutedStyle.Render(fmt.Sprintf(" x%s", t.Len()))
}

// abbreviate fits a number into the space left after the index column.
func (p PrettyFormatter) abbreviate(s string) string {
	room := p.Width - indexStyle.GetWidth() - len("1/") - digitNoteWidth
	return util.AbbreviateNumber(s, max(room, 7))
}

func (p PrettyFormatter) writeLine(w *bufio.Writer, line string) {
	w.WriteString(util.TruncateANSI(line, p.Width))
	w.WriteByte('\n')
}

// FormatError implements Formatter.
func (p PrettyFormatter) FormatError(w io.Writer, err error) error {
	_, werr := fmt.Fprintln(w, util.TruncateANSI(errorStyle.Render(errorText(err)), p.Width))
	return werr
}

// TerminalWidth returns the width of the terminal behind f, or DefaultWidth
// when f is not a terminal.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}
