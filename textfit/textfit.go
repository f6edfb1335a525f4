// Package textfit provides pure text-measurement utilities for laying out
// strings inside fixed-width and fixed-height regions: single-line fitting
// with ellipsis, wrap-with-line-limit, and shrink-to-fit font sizing.
//
// All functions operate against a width measurer so they stay independent
// of any particular document engine; *gofpdf.Fpdf satisfies both
// interfaces directly.
package textfit

import "strings"

// Ellipsis terminates truncated text. Three ASCII dots render identically
// across the core PDF fonts.
const Ellipsis = "..."

// Measurer measures the rendered width of a string in the current font.
type Measurer interface {
	GetStringWidth(s string) float64
}

// Sizer is a Measurer whose font size can be changed between measurements.
type Sizer interface {
	Measurer
	SetFontSize(size float64)
}

// FitLine returns the longest prefix of text whose measured width is at
// most maxWidth, appending Ellipsis when the text had to be truncated.
// Text that already fits is returned unchanged. If even the ellipsis alone
// does not fit, the empty string is returned.
//
// The prefix is found by binary search over rune count, since each
// measurement is assumed to be non-trivial cost.
func FitLine(m Measurer, text string, maxWidth float64) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if m.GetStringWidth(text) <= maxWidth {
		return text
	}
	if m.GetStringWidth(Ellipsis) > maxWidth {
		return ""
	}

	runes := []rune(text)

	// Invariant: lo fits, hi does not.
	lo, hi := 0, len(runes)
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if m.GetStringWidth(strings.TrimRight(string(runes[:mid]), " ")+Ellipsis) <= maxWidth {
			lo = mid
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return Ellipsis
	}
	return strings.TrimRight(string(runes[:lo]), " ") + Ellipsis
}

// WrapLines wraps text into at most maxLines lines of at most maxWidth
// each, breaking on spaces and falling back to FitLine for single words
// wider than the line. When the text does not fit the allotted lines, the
// final line is re-fit with a trailing ellipsis.
//
// Empty or whitespace-only input yields a nil slice.
func WrapLines(m Measurer, text string, maxWidth float64, maxLines int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || maxLines <= 0 {
		return nil
	}

	var lines []string
	current := ""
	truncated := false

	for i, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if m.GetStringWidth(candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current == "" {
			// Single word wider than the line.
			current = FitLine(m, word, maxWidth)
			continue
		}
		if len(lines)+1 == maxLines {
			rest := strings.Join(words[i:], " ")
			lines = append(lines, FitLine(m, current+" "+rest, maxWidth))
			truncated = true
			break
		}
		lines = append(lines, current)
		current = word
	}
	if !truncated && current != "" {
		lines = append(lines, current)
	}
	return lines
}

// AutoFitSize decreases the font size from startSize in fixed steps until
// the rendered width of text fits within maxWidth or minSize is reached,
// and returns the chosen size. The measurer is left set to that size.
func AutoFitSize(s Sizer, text string, maxWidth, startSize, minSize, step float64) float64 {
	if step <= 0 {
		step = 0.5
	}
	size := startSize
	for size > minSize {
		s.SetFontSize(size)
		if s.GetStringWidth(text) <= maxWidth {
			return size
		}
		size -= step
	}
	if size < minSize {
		size = minSize
	}
	s.SetFontSize(size)
	return size
}
