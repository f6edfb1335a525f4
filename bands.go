package fabsheet

import (
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/lvillar/fabsheet/shape"
	"github.com/lvillar/fabsheet/textfit"
)

// drawHeaderBand draws the band at the top of every page: panel, logo,
// centered company name, and a double accent rule. All offsets are fixed
// so the band is identical across pages.
func (s *sheet) drawHeaderBand() {
	pdf, th := s.pdf, s.theme
	x, y, w := pageMargin, pageMargin, s.contentW

	shape.FillRoundedRect(pdf, x, y, w, headerBandH, 6, th.Panel)
	shape.StrokeRoundedRect(pdf, x, y, w, headerBandH, 6, th.Border, 0.2)

	if s.registered["logo"] {
		logoW, logoH := 20.0, 9.5
		pdf.ImageOptions("logo", x+6, y+(headerBandH-logoH)/2, logoW, logoH, false,
			gofpdf.ImageOptions{ImageType: s.cfg.logoFormat}, 0, "")
	}

	if s.companyName != "" {
		s.setFont("B", 12, th.Text)
		name := textfit.FitLine(pdf, s.companyName, w-2*26)
		pdf.Text(x+(w-pdf.GetStringWidth(name))/2, y+headerBandH/2+1.5, name)
	}

	ruleY := y + headerBandH + 1.6
	pdf.SetDrawColor(th.Accent.R, th.Accent.G, th.Accent.B)
	pdf.SetLineWidth(0.8)
	pdf.Line(x, ruleY, x+w, ruleY)
	pdf.SetLineWidth(0.3)
	pdf.Line(x, ruleY+1.4, x+w, ruleY+1.4)
}

// drawFooterBand draws the band below the footer reserve line: an accent
// rule, the contact chips with their click targets, and the address line.
func (s *sheet) drawFooterBand() {
	pdf, th := s.pdf, s.theme
	x, w := pageMargin, s.contentW
	top := s.reserveY

	pdf.SetDrawColor(th.Accent.R, th.Accent.G, th.Accent.B)
	pdf.SetLineWidth(0.5)
	pdf.Line(x, top, x+w, top)

	chipStyle := shape.PillStyle{
		Fill:     th.Panel,
		Border:   th.Border,
		Text:     th.Muted,
		FontSize: 7.5,
		PadX:     3,
	}

	const chipH = 6.0
	chipY := top + 2.5
	cx := x

	type chip struct {
		label string
		link  string
	}
	chips := []chip{
		{label: s.phone, link: telLink(s.phone)},
		{label: s.whatsapp, link: waLink(s.whatsapp)},
		{label: s.email, link: mailLink(s.email)},
	}
	for _, c := range chips {
		if c.label == "" {
			continue
		}
		cw := shape.Pill(pdf, cx, chipY, chipH, c.label, chipStyle)
		if c.link != "" {
			pdf.LinkString(cx, chipY, cw, chipH, c.link)
		}
		cx += cw + 3
	}

	if s.address != "" {
		s.setFont("", 7.5, th.Muted)
		y := chipY + chipH + 4.5
		for _, line := range textfit.WrapLines(pdf, s.address, w, 2) {
			pdf.Text(x, y, line)
			y += 3.6
		}
	}
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func telLink(phone string) string {
	if d := digitsOnly(phone); d != "" {
		return "tel:+" + d
	}
	return ""
}

func waLink(number string) string {
	if d := digitsOnly(number); d != "" {
		return "https://wa.me/" + d
	}
	return ""
}

func mailLink(email string) string {
	if strings.Contains(email, "@") {
		return "mailto:" + email
	}
	return ""
}
