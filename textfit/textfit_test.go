package textfit

import (
	"strings"
	"testing"
)

// runeMeasurer charges one unit per rune, which keeps fit arithmetic
// exact in tests.
type runeMeasurer struct {
	size float64
}

func (m *runeMeasurer) GetStringWidth(s string) float64 {
	scale := m.size
	if scale == 0 {
		scale = 1
	}
	return float64(len([]rune(s))) * scale
}

func (m *runeMeasurer) SetFontSize(size float64) { m.size = size }

func TestFitLineNoTruncationWhenFits(t *testing.T) {
	m := &runeMeasurer{}
	if got := FitLine(m, "hello", 10); got != "hello" {
		t.Fatalf("expected text unchanged, got %q", got)
	}
}

func TestFitLineTruncatesWithEllipsis(t *testing.T) {
	m := &runeMeasurer{}
	got := FitLine(m, "hello world", 8)
	if !strings.HasSuffix(got, Ellipsis) {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if m.GetStringWidth(got) > 8 {
		t.Fatalf("fitted line %q wider than limit", got)
	}
	if got != "hello"+Ellipsis {
		t.Fatalf("expected longest fitting prefix, got %q", got)
	}
}

func TestFitLineWidthBound(t *testing.T) {
	m := &runeMeasurer{}
	texts := []string{"a", "some rather long line of text", "word", ""}
	for _, text := range texts {
		for _, max := range []float64{0, 1, 2, 3, 5, 8, 100} {
			got := FitLine(m, text, max)
			if got != "" && m.GetStringWidth(got) > max {
				t.Fatalf("FitLine(%q, %v) = %q exceeds limit", text, max, got)
			}
		}
	}
}

func TestFitLineImpossible(t *testing.T) {
	m := &runeMeasurer{}
	if got := FitLine(m, "hello", 2); got != "" {
		t.Fatalf("expected empty string when even ellipsis cannot fit, got %q", got)
	}
}

func TestFitLineEmptyInput(t *testing.T) {
	m := &runeMeasurer{}
	if got := FitLine(m, "   ", 10); got != "" {
		t.Fatalf("whitespace input should yield empty result, got %q", got)
	}
}

func TestWrapLines(t *testing.T) {
	m := &runeMeasurer{}
	lines := WrapLines(m, "the quick brown fox jumps", 9, 5)
	want := []string{"the quick", "brown fox", "jumps"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %v, want %v", len(lines), lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapLinesTruncatesLastLine(t *testing.T) {
	m := &runeMeasurer{}
	lines := WrapLines(m, "the quick brown fox jumps over the lazy dog", 9, 2)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	last := lines[len(lines)-1]
	if !strings.HasSuffix(last, Ellipsis) {
		t.Fatalf("expected truncation marker on last line, got %q", last)
	}
	for _, l := range lines {
		if m.GetStringWidth(l) > 9 {
			t.Fatalf("line %q exceeds max width", l)
		}
	}
}

func TestWrapLinesLongWord(t *testing.T) {
	m := &runeMeasurer{}
	lines := WrapLines(m, "incomprehensibilities", 10, 3)
	if len(lines) != 1 {
		t.Fatalf("expected single fitted line, got %v", lines)
	}
	if m.GetStringWidth(lines[0]) > 10 {
		t.Fatalf("fitted word %q exceeds max width", lines[0])
	}
}

func TestWrapLinesEmpty(t *testing.T) {
	m := &runeMeasurer{}
	if lines := WrapLines(m, " \t ", 10, 3); lines != nil {
		t.Fatalf("expected nil for blank input, got %v", lines)
	}
}

func TestAutoFitSize(t *testing.T) {
	m := &runeMeasurer{}
	size := AutoFitSize(m, "0123456789", 50, 10, 4, 1)
	if size != 5 {
		t.Fatalf("expected size 5, got %v", size)
	}
	if m.GetStringWidth("0123456789") > 50 {
		t.Fatal("measurer not left at the fitted size")
	}
}

func TestAutoFitSizeFloor(t *testing.T) {
	m := &runeMeasurer{}
	size := AutoFitSize(m, strings.Repeat("x", 100), 10, 9, 6, 1)
	if size != 6 {
		t.Fatalf("expected floor size 6, got %v", size)
	}
}
