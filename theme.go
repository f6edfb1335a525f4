package fabsheet

import "github.com/lvillar/fabsheet/shape"

// Theme is the colour palette applied to every page of a sheet.
type Theme struct {
	Background shape.RGB
	Panel      shape.RGB
	Border     shape.RGB
	Muted      shape.RGB
	Text       shape.RGB
	Accent     shape.RGB

	PillFill   shape.RGB
	PillBorder shape.RGB
	PillText   shape.RGB

	StarFilled shape.RGB
	StarEmpty  shape.RGB
}

// DefaultTheme is the clean white sheet theme.
func DefaultTheme() Theme {
	return Theme{
		Background: shape.RGB{R: 255, G: 255, B: 255},
		Panel:      shape.RGB{R: 248, G: 250, B: 252},
		Border:     shape.RGB{R: 226, G: 232, B: 240},
		Muted:      shape.RGB{R: 71, G: 85, B: 105},
		Text:       shape.RGB{R: 15, G: 23, B: 42},
		Accent:     shape.RGB{R: 45, G: 212, B: 191},

		PillFill:   shape.RGB{R: 237, G: 233, B: 254},
		PillBorder: shape.RGB{R: 221, G: 214, B: 254},
		PillText:   shape.RGB{R: 76, G: 29, B: 149},

		StarFilled: shape.RGB{R: 255, G: 215, B: 0},
		StarEmpty:  shape.RGB{R: 160, G: 165, B: 175},
	}
}
