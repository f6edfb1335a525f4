// Package shape draws the small vector primitives the sheet composer is
// built from: filled and stroked rounded rectangles, auto-sized pill
// badges, and partially filled rating stars.
//
// Every function mutates the shared graphics state of the document engine
// (fill colour, draw colour, line width), so callers must not interleave
// draw calls from multiple regions. State that is scoped, such as the clip
// region used for partial star fills, is always restored before return.
package shape

import (
	"math"

	"github.com/jung-kurt/gofpdf"
)

// RGB is an 8-bit-per-channel colour.
type RGB struct {
	R, G, B int
}

// FillRoundedRect draws a filled rounded rectangle with radius r on all
// corners.
func FillRoundedRect(pdf *gofpdf.Fpdf, x, y, w, h, r float64, fill RGB) {
	pdf.SetFillColor(fill.R, fill.G, fill.B)
	if r > 0 {
		pdf.RoundedRect(x, y, w, h, r, "1234", "F")
	} else {
		pdf.Rect(x, y, w, h, "F")
	}
}

// StrokeRoundedRect draws the outline of a rounded rectangle with the
// given stroke width.
func StrokeRoundedRect(pdf *gofpdf.Fpdf, x, y, w, h, r float64, stroke RGB, lineWidth float64) {
	pdf.SetDrawColor(stroke.R, stroke.G, stroke.B)
	if lineWidth <= 0 {
		lineWidth = 0.2
	}
	pdf.SetLineWidth(lineWidth)
	if r > 0 {
		pdf.RoundedRect(x, y, w, h, r, "1234", "D")
	} else {
		pdf.Rect(x, y, w, h, "D")
	}
}

// PillStyle controls the appearance of a Pill badge.
type PillStyle struct {
	Fill     RGB
	Border   RGB
	Text     RGB
	FontSize float64 // points
	PadX     float64 // horizontal padding either side of the text
}

// Pill draws a pill-shaped badge at (x, y) with height h, sizing its width
// to the rendered text plus padding. The computed width is returned so the
// caller can lay out subsequent siblings. Empty text draws nothing and
// returns 0.
func Pill(pdf *gofpdf.Fpdf, x, y, h float64, text string, style PillStyle) float64 {
	if text == "" {
		return 0
	}
	if style.FontSize > 0 {
		pdf.SetFontSize(style.FontSize)
	}
	w := pdf.GetStringWidth(text) + 2*style.PadX

	FillRoundedRect(pdf, x, y, w, h, h/2, style.Fill)
	StrokeRoundedRect(pdf, x, y, w, h, h/2, style.Border, 0.2)

	pdf.SetTextColor(style.Text.R, style.Text.G, style.Text.B)
	_, unitSize := pdf.GetFontSize()
	pdf.Text(x+style.PadX, y+h/2+unitSize*0.35, text)
	return w
}

// starPoints returns the ten alternating outer/inner vertices of a
// five-point star centred at (cx, cy) with the given overall size,
// rotated so the first point is up. The inner radius is 0.38 of the outer.
func starPoints(cx, cy, size float64) []gofpdf.PointType {
	outer := size / 2
	inner := outer * 0.38

	pts := make([]gofpdf.PointType, 0, 10)
	for i := 0; i < 5; i++ {
		a := math.Pi/2 + float64(i)*2*math.Pi/5
		pts = append(pts, gofpdf.PointType{X: cx + outer*math.Cos(a), Y: cy - outer*math.Sin(a)})
		b := a + math.Pi/5
		pts = append(pts, gofpdf.PointType{X: cx + inner*math.Cos(b), Y: cy - inner*math.Sin(b)})
	}
	return pts
}

func tracePath(pdf *gofpdf.Fpdf, pts []gofpdf.PointType) {
	pdf.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		pdf.LineTo(p.X, p.Y)
	}
	pdf.ClosePath()
}

// DrawStar draws a single star centred at (cx, cy). frac is the filled
// fraction in [0, 1]: 0 strokes the outline only, 1 fills the whole star,
// anything in between fills left-to-right by clipping to the star's own
// path and filling a rectangle frac wide. The clip region is never
// stroked, so no seam or stray border appears, and it is released before
// return.
func DrawStar(pdf *gofpdf.Fpdf, cx, cy, size, frac float64, filled, empty RGB) {
	frac = math.Max(0, math.Min(1, frac))
	pts := starPoints(cx, cy, size)
	pdf.SetLineWidth(0.25)

	if frac == 1 {
		pdf.SetFillColor(filled.R, filled.G, filled.B)
		pdf.SetDrawColor(filled.R, filled.G, filled.B)
		tracePath(pdf, pts)
		pdf.DrawPath("FD")
		return
	}

	pdf.SetDrawColor(empty.R, empty.G, empty.B)
	tracePath(pdf, pts)
	pdf.DrawPath("D")
	if frac == 0 {
		return
	}

	outer := size / 2
	pdf.ClipPolygon(pts, false)
	pdf.SetFillColor(filled.R, filled.G, filled.B)
	pdf.Rect(cx-outer, cy-outer, frac*2*outer, 2*outer, "F")
	pdf.ClipEnd()
}

// RatingStyle controls the size and colours of a five-star rating row.
type RatingStyle struct {
	Size   float64 // star size in page units
	Gap    float64 // gap between stars
	Filled RGB
	Empty  RGB
}

// DefaultRatingStyle matches the sheet theme: gold on grey.
func DefaultRatingStyle() RatingStyle {
	return RatingStyle{
		Size:   3,
		Gap:    0.7,
		Filled: RGB{255, 215, 0},
		Empty:  RGB{160, 165, 175},
	}
}

// DrawRating draws five stars starting at x, vertically centred on y, for
// a rating already normalized to [0, 5]. It returns the total width drawn.
func DrawRating(pdf *gofpdf.Fpdf, x, y, rating float64, style RatingStyle) float64 {
	rating = math.Max(0, math.Min(5, rating))
	cx := x
	for i := 1; i <= 5; i++ {
		frac := rating - float64(i-1)
		DrawStar(pdf, cx+style.Size/2, y, style.Size, frac, style.Filled, style.Empty)
		cx += style.Size + style.Gap
	}
	return 5*style.Size + 4*style.Gap
}
