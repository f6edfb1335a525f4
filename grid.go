package fabsheet

import (
	"github.com/lvillar/fabsheet/catalog"
	"github.com/lvillar/fabsheet/shape"
	"github.com/lvillar/fabsheet/textfit"
)

const gridGap = 6.0

// drawGridPage draws one page of collection member cards. The chunk is at
// most gridCols*gridRows long; a short final chunk leaves trailing cells
// empty.
func (s *sheet) drawGridPage(members []catalog.Product) {
	cols, rows := s.cfg.gridCols, s.cfg.gridRows

	areaH := s.reserveY - s.contentTop - 2
	cellW := (s.contentW - gridGap*float64(cols-1)) / float64(cols)
	cellH := (areaH - gridGap*float64(rows-1)) / float64(rows)

	for i, m := range members {
		col := i % cols
		row := i / cols
		x := pageMargin + float64(col)*(cellW+gridGap)
		y := s.contentTop + float64(row)*(cellH+gridGap)
		s.drawGridCell(m, x, y, cellW, cellH)
	}
}

// drawGridCell draws a single member card: image with a fabric-code badge
// overlaid, then a compact two-column spec table filling the rest.
func (s *sheet) drawGridCell(p catalog.Product, x, y, w, h float64) {
	pdf, th := s.pdf, s.theme

	shape.FillRoundedRect(pdf, x, y, w, h, 8, th.Panel)
	shape.StrokeRoundedRect(pdf, x, y, w, h, 8, th.Border, 0.2)

	imgH := h * 0.52
	s.drawImageBox(p.PrimaryImage(), x+4, y+4, w-8, imgH, 5)

	if code := p.DisplayCode(); code != "" {
		badge := shape.PillStyle{
			Fill:     th.PillFill,
			Border:   th.PillBorder,
			Text:     th.PillText,
			FontSize: 7,
			PadX:     2.5,
		}
		pdf.SetFont("Helvetica", "B", badge.FontSize)
		code = textfit.FitLine(pdf, code, w-16)
		shape.Pill(pdf, x+7, y+4+imgH-8.5, 5.5, code, badge)
	}

	s.drawGridSpecs(p, x+4, y+imgH+8, w-8, h-imgH-12)
}

// drawGridSpecs draws the card's mini spec table, two columns by four
// rows, with single-line auto-fitted values.
func (s *sheet) drawGridSpecs(p catalog.Product, x, y, w, h float64) {
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

	pdf, th := s.pdf, s.theme
	colW := w / 2
	rowH := h / 4

	for i, kv := range pairs {
		cx := x + float64(i%2)*colW
		cy := y + float64(i/2)*rowH

		s.setFont("", 5.5, th.Muted)
		pdf.Text(cx, cy+2.4, kv[0])

		if kv[1] == "" {
			continue
		}
		s.setFont("B", 7, th.Text)
		pdf.Text(cx, cy+5.6, textfit.FitLine(pdf, kv[1], colW-3))
	}
}
