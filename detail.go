package fabsheet

import (
	"github.com/jung-kurt/gofpdf"

	"github.com/lvillar/fabsheet/shape"
	"github.com/lvillar/fabsheet/suitability"
	"github.com/lvillar/fabsheet/textfit"
)

// Detail page geometry.
const (
	heroH      = 62.0
	specCardH  = 13.0
	specGap    = 4.0
	qrCardSize = 34.0
)

// drawDetailPage lays the detail page out top-to-bottom: code label, hero
// region, short description, specification table, QR card, and the
// suitability summaries. Content that cannot fit above the footer reserve
// line is truncated or silently dropped, never overflowed.
func (s *sheet) drawDetailPage() {
	y := s.contentTop
	y = s.drawCodeLabel(y)
	y = s.drawHero(y)
	y = s.drawShortDescription(y)
	y = s.drawSpecTable(y)
	s.drawQRAndSuitability(y)
}

// drawCodeLabel draws the fabric code with an accent underline rule.
func (s *sheet) drawCodeLabel(y float64) float64 {
	code := s.product.DisplayCode()
	if code == "" {
		return y
	}
	pdf, th := s.pdf, s.theme

	s.setFont("B", 13, th.Text)
	code = textfit.FitLine(pdf, code, s.contentW)
	pdf.Text(pageMargin, y+4.6, code)

	pdf.SetDrawColor(th.Accent.R, th.Accent.G, th.Accent.B)
	pdf.SetLineWidth(0.8)
	pdf.Line(pageMargin, y+6.4, pageMargin+pdf.GetStringWidth(code), y+6.4)

	return y + 10
}

// drawHero draws the hero panel: square image box with options badge on
// the left, status pills and the auto-shrinking title/tagline block on
// the right.
func (s *sheet) drawHero(y float64) float64 {
	pdf, th := s.pdf, s.theme
	x, w := pageMargin, s.contentW

	shape.FillRoundedRect(pdf, x, y, w, heroH, 10, th.Panel)
	shape.StrokeRoundedRect(pdf, x, y, w, heroH, 10, th.Border, 0.2)

	imgSize := heroH - 12
	imgX, imgY := x+6.0, y+6.0
	s.drawImageBox(s.product.PrimaryImage(), imgX, imgY, imgSize, imgSize, 6)

	if s.optionsCount > 0 {
		badge := shape.PillStyle{
			Fill:     th.PillFill,
			Border:   th.PillBorder,
			Text:     th.PillText,
			FontSize: 7.5,
			PadX:     3,
		}
		shape.Pill(pdf, imgX+3, imgY+imgSize-9, 6.5, formatCount(s.optionsCount), badge)
	}

	rx := imgX + imgSize + 7
	rw := x + w - rx - 6

	// Status pills, then the rating stars beside them.
	pill := shape.PillStyle{
		Fill:     th.PillFill,
		Border:   th.PillBorder,
		Text:     th.PillText,
		FontSize: 8.5,
		PadX:     4,
	}
	px := rx
	pillY := y + 7.0
	for _, label := range []string{s.product.Category, s.product.SupplyModel} {
		if label == "" {
			continue
		}
		s.pdf.SetFont("Helvetica", "B", pill.FontSize)
		label = textfit.FitLine(pdf, label, rw/2)
		if pw := shape.Pill(pdf, px, pillY, 7, label, pill); pw > 0 {
			px += pw + 3
		}
	}
	if rating, ok := shape.NormalizeRating5(s.product.RatingText()); ok {
		style := shape.DefaultRatingStyle()
		style.Size = 4
		style.Filled = th.StarFilled
		style.Empty = th.StarEmpty
		shape.DrawRating(pdf, px, pillY+3.5, rating, style)
	}

	// Title and tagline fill the rest of the hero height.
	titleY := y + 24.0
	s.pdf.SetFont("Helvetica", "B", 15)
	size := textfit.AutoFitSize(pdf, s.product.DisplayTitle(), rw, 15, 9, 0.5)
	pdf.SetFontSize(size)
	s.pdf.SetTextColor(th.Text.R, th.Text.G, th.Text.B)
	title := textfit.FitLine(pdf, s.product.DisplayTitle(), rw)
	if title != "" {
		pdf.Text(rx, titleY, title)
		titleY += size*0.38 + 3
	}

	if s.product.Tagline != "" {
		s.setFont("I", 9.5, th.Muted)
		for _, line := range textfit.WrapLines(pdf, s.product.Tagline, rw, 2) {
			if titleY > y+heroH-4 {
				break
			}
			pdf.Text(rx, titleY, line)
			titleY += 4.6
		}
	}

	return y + heroH + 7
}

// drawImageBox draws a bordered image box, degrading to a muted text
// placeholder when the image is unavailable.
func (s *sheet) drawImageBox(url string, x, y, w, h, radius float64) {
	pdf, th := s.pdf, s.theme

	shape.FillRoundedRect(pdf, x, y, w, h, radius, shape.RGB{R: 255, G: 255, B: 255})
	shape.StrokeRoundedRect(pdf, x, y, w, h, radius, th.Border, 0.2)

	if s.placeImage(url, x+1.5, y+1.5, w-3, h-3) {
		return
	}
	s.setFont("", 7.5, th.Muted)
	label := "No image"
	pdf.Text(x+(w-pdf.GetStringWidth(label))/2, y+h/2+1, label)
}

func (s *sheet) drawShortDescription(y float64) float64 {
	desc := s.product.ShortText(140)
	if desc == "" {
		return y
	}
	pdf, th := s.pdf, s.theme

	s.setFont("", 9.5, th.Muted)
	lines := textfit.WrapLines(pdf, desc, s.contentW, 2)
	for _, line := range lines {
		pdf.Text(pageMargin, y+3.4, line)
		y += 4.8
	}
	return y + 4
}

// drawSpecTable draws the fixed two-column specification table plus the
// full-width finish row. Absent values leave the cell value empty; no
// placeholder is ever printed.
func (s *sheet) drawSpecTable(y float64) float64 {
	p := s.product
	pairs := [][2]string{
		{"Content", p.CompositionText()},
		{"Width", p.WidthText()},
		{"Weight", p.WeightText()},
		{"Design", p.Design},
		{"Structure", p.StructureText()},
		{"Colors", p.ColorText()},
		{"Motif", p.Motif},
		{"MOQ", p.MOQText()},
	}

	colW := (s.contentW - specGap) / 2
	for i := 0; i < len(pairs); i += 2 {
		s.drawKVCard(pageMargin, y, colW, specCardH, pairs[i][0], pairs[i][1])
		s.drawKVCard(pageMargin+colW+specGap, y, colW, specCardH, pairs[i+1][0], pairs[i+1][1])
		y += specCardH + specGap
	}

	s.drawKVCard(pageMargin, y, s.contentW, specCardH, "Finish", p.FinishText())
	return y + specCardH + specGap + 2
}

// drawKVCard draws one labelled value card of the specification table.
func (s *sheet) drawKVCard(x, y, w, h float64, label, value string) {
	pdf, th := s.pdf, s.theme

	shape.FillRoundedRect(pdf, x, y, w, h, 5, th.Panel)
	shape.StrokeRoundedRect(pdf, x, y, w, h, 5, th.Border, 0.2)

	s.setFont("", 7, th.Muted)
	pdf.Text(x+4, y+4.6, label)

	if value == "" {
		return
	}
	s.setFont("B", 9, th.Text)
	pdf.Text(x+4, y+10.2, textfit.FitLine(pdf, value, w-8))
}

// drawQRAndSuitability fills the remaining vertical budget: the QR card
// on the right (only when a product URL resolved) and the aggregated
// suitability sections on the left, stopping silently at the reserve line.
func (s *sheet) drawQRAndSuitability(y float64) {
	listW := s.contentW

	if s.registered["qr"] && y+qrCardSize <= s.reserveY-2 {
		s.drawQRCard(pageMargin+s.contentW-qrCardSize, y)
		listW = s.contentW - qrCardSize - 6
	}

	s.drawSuitability(pageMargin, y, listW)
}

func (s *sheet) drawQRCard(x, y float64) {
	pdf, th := s.pdf, s.theme

	shape.FillRoundedRect(pdf, x, y, qrCardSize, qrCardSize, 6, shape.RGB{R: 255, G: 255, B: 255})
	shape.StrokeRoundedRect(pdf, x, y, qrCardSize, qrCardSize, 6, th.Border, 0.2)

	inset := 4.0
	pdf.ImageOptions("qr", x+inset, y+inset, qrCardSize-2*inset, qrCardSize-2*inset-4, false,
		gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	s.setFont("", 6.5, th.Muted)
	label := "Scan to view"
	pdf.Text(x+(qrCardSize-pdf.GetStringWidth(label))/2, y+qrCardSize-3, label)

	if s.productURL != "" {
		pdf.LinkString(x, y, qrCardSize, qrCardSize, s.productURL)
	}
}

// drawSuitability draws the Apparel and Home & Accessories bullet lists.
// Each bullet is `Segment: fitted sentence`. Enumeration stops once the
// next row would cross the footer reserve line.
func (s *sheet) drawSuitability(x, y, w float64) {
	groups := suitability.Aggregate(suitability.ParseLines(s.product.Suitability), s.cfg.maxUses)
	if len(groups) == 0 {
		return
	}
	apparel, home := suitability.Partition(groups)

	const (
		headingH = 7.0
		rowH     = 5.2
	)
	pdf, th := s.pdf, s.theme

	drawSection := func(heading string, list []suitability.Group) {
		if len(list) == 0 || y+headingH+rowH > s.reserveY-2 {
			return
		}
		s.setFont("B", 10, th.Text)
		pdf.Text(x, y+4, heading)
		pdf.SetDrawColor(th.Accent.R, th.Accent.G, th.Accent.B)
		pdf.SetLineWidth(0.6)
		pdf.Line(x, y+5.6, x+20, y+5.6)
		y += headingH + 1.5

		for _, g := range list {
			if y+rowH > s.reserveY-2 {
				return
			}
			s.setFont("B", 8.5, th.Text)
			label := "• " + g.Segment + ": "
			labelW := pdf.GetStringWidth(label)
			pdf.Text(x, y+3.2, label)

			s.setFont("", 8.5, th.Muted)
			pdf.Text(x+labelW, y+3.2, textfit.FitLine(pdf, g.Sentence, w-labelW))
			y += rowH
		}
		y += 3
	}

	drawSection(suitability.ApparelHeading, apparel)
	drawSection(suitability.HomeHeading, home)
}
