// Package util provides string helpers for terminal output.
package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks elided text.
const Ellipsis = "..."

// TruncateANSI truncates a string to maxWidth visual columns, adding "..." if truncated.
// This function properly handles ANSI escape codes and wide characters, making it
// suitable for terminal output with styling.
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth <= len(Ellipsis) {
		return Ellipsis
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	// ansi.Truncate includes the tail in the final width calculation
	return ansi.Truncate(s, maxWidth, Ellipsis)
}

// AbbreviateNumber shortens a decimal string to at most maxWidth columns by
// keeping its leading and trailing digits around "...". Numbers that fit are
// returned unchanged. Plain ASCII is assumed.
func AbbreviateNumber(s string, maxWidth int) string {
	if len(s) <= maxWidth {
		return s
	}
	keep := maxWidth - len(Ellipsis)
	if keep < 2 {
		return TruncateANSI(s, maxWidth)
	}
	head := (keep + 1) / 2
	tail := keep - head
	return s[:head] + Ellipsis + s[len(s)-tail:]
}

// DigitCount returns the number of digits in a decimal string, ignoring a
// leading sign.
func DigitCount(s string) int {
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		return len(s) - 1
	}
	return len(s)
}
