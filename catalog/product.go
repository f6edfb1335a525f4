// Package catalog defines the product and company records the sheet
// composer consumes, together with the display accessors that pick the
// best available value out of the loosely populated upstream fields.
package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Product is one textile product record as served by the reference-data
// service. It is an immutable input to the engine; the engine never writes
// back to it. JSON tags follow the upstream field names.
type Product struct {
	ID               string `json:"id,omitempty"`
	Name             string `json:"name,omitempty"`
	FabricCode       string `json:"fabricCode,omitempty"`
	VendorFabricCode string `json:"vendorFabricCode,omitempty"`
	Slug             string `json:"productslug,omitempty"`

	Title       string `json:"productTitle,omitempty"`
	Tagline     string `json:"productTagline,omitempty"`
	ShortDesc   string `json:"shortProductDescription,omitempty"`
	Description string `json:"description,omitempty"` // may contain HTML

	Category    string   `json:"category,omitempty"`
	Design      string   `json:"design,omitempty"`
	Structure   string   `json:"structure,omitempty"`
	Weave       string   `json:"weave,omitempty"`
	Motif       string   `json:"motif,omitempty"`
	Content     []string `json:"content,omitempty"`
	Composition string   `json:"composition,omitempty"`
	Color       []string `json:"color,omitempty"`
	Finish      []string `json:"finish,omitempty"`

	GSM      *float64 `json:"gsm,omitempty"`
	WidthCM  *float64 `json:"cm,omitempty"`
	WidthIn  *float64 `json:"inch,omitempty"`
	SalesMOQ *float64 `json:"salesMOQ,omitempty"`
	UOM      string   `json:"uom,omitempty"`

	SupplyModel string `json:"supplyModel,omitempty"`

	// The rating may arrive under any of these names and on an
	// undocumented scale. See shape.NormalizeRating5.
	RatingValue string `json:"ratingValue,omitempty"`
	Rating      string `json:"rating,omitempty"`
	ReviewScore string `json:"reviewScore,omitempty"`

	Suitability []string `json:"suitability,omitempty"`

	Image1CloudURL string `json:"image1CloudUrl,omitempty"`
	Image1ThumbURL string `json:"image1ThumbUrl,omitempty"`
	Image2CloudURL string `json:"image2CloudUrl,omitempty"`
	Image2ThumbURL string `json:"image2ThumbUrl,omitempty"`
	Image3CloudURL string `json:"image3CloudUrl,omitempty"`
	Image3ThumbURL string `json:"image3ThumbUrl,omitempty"`

	CollectionID string `json:"collectionId,omitempty"`

	Deleted bool `json:"deleted,omitempty"`
}

// FirstNonEmpty returns the first value whose trimmed form is non-empty.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// Join joins the non-empty elements of vals with sep.
func Join(vals []string, sep string) string {
	return strings.Join(lo.Filter(vals, func(v string, _ int) bool {
		return strings.TrimSpace(v) != ""
	}), sep)
}

// FormatNumber renders n with up to decimals fraction digits, trimming
// trailing zeros. Values within 1e-6 of an integer render bare.
func FormatNumber(n float64, decimals int) string {
	r := math.Round(n)
	if math.Abs(n-r) < 1e-6 {
		return strconv.FormatInt(int64(r), 10)
	}
	s := strconv.FormatFloat(n, 'f', decimals, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// DisplayCode returns the identifier shown on the sheet and used for the
// output filename.
func (p *Product) DisplayCode() string {
	return FirstNonEmpty(p.FabricCode, p.VendorFabricCode, p.Slug, p.Name, p.ID)
}

// DisplayTitle returns the headline for the hero block.
func (p *Product) DisplayTitle() string {
	return FirstNonEmpty(p.Title, p.Name, p.DisplayCode())
}

// CompositionText prefers the structured content list over the legacy
// free-text composition field.
func (p *Product) CompositionText() string {
	return FirstNonEmpty(Join(p.Content, ", "), p.Composition)
}

// StructureText prefers the structure field over the legacy weave field.
func (p *Product) StructureText() string {
	return FirstNonEmpty(p.Structure, p.Weave)
}

// FinishText joins the finish values.
func (p *Product) FinishText() string {
	return Join(p.Finish, ", ")
}

// ColorText joins the colour values.
func (p *Product) ColorText() string {
	return Join(p.Color, ", ")
}

// WidthText renders the fabric width, combining centimetres and inches when
// both are known, e.g. `152 cm (59.84")`.
func (p *Product) WidthText() string {
	switch {
	case p.WidthCM != nil && p.WidthIn != nil:
		return fmt.Sprintf("%s cm (%s\")", FormatNumber(*p.WidthCM, 0), FormatNumber(*p.WidthIn, 2))
	case p.WidthIn != nil:
		return fmt.Sprintf("%s\"", FormatNumber(*p.WidthIn, 2))
	case p.WidthCM != nil:
		return fmt.Sprintf("%s cm", FormatNumber(*p.WidthCM, 0))
	}
	return ""
}

// WeightText renders the GSM weight.
func (p *Product) WeightText() string {
	if p.GSM == nil {
		return ""
	}
	return FormatNumber(*p.GSM, 2) + " gsm"
}

// MOQText renders the minimum order quantity with its unit of measure.
func (p *Product) MOQText() string {
	if p.SalesMOQ == nil {
		return ""
	}
	s := FormatNumber(*p.SalesMOQ, 0)
	if p.UOM != "" {
		s += " " + p.UOM
	}
	return s
}

// ShortText returns the best available short description: the dedicated
// field, then the tagline, then the stripped HTML description capped at
// maxLen runes.
func (p *Product) ShortText(maxLen int) string {
	if s := FirstNonEmpty(p.ShortDesc, p.Tagline); s != "" {
		return s
	}
	s := StripHTML(p.Description)
	if r := []rune(s); maxLen > 0 && len(r) > maxLen {
		return strings.TrimSpace(string(r[:maxLen]))
	}
	return s
}

// RatingText returns the first populated rating attribute.
func (p *Product) RatingText() string {
	return FirstNonEmpty(p.RatingValue, p.Rating, p.ReviewScore)
}

// PrimaryImage returns the first non-empty image URL, full-size URLs first.
func (p *Product) PrimaryImage() string {
	return FirstNonEmpty(
		p.Image1CloudURL, p.Image1ThumbURL,
		p.Image2CloudURL, p.Image2ThumbURL,
		p.Image3CloudURL, p.Image3ThumbURL,
	)
}

// ImageURLs returns all distinct non-empty image URLs in field order.
func (p *Product) ImageURLs() []string {
	urls := []string{
		p.Image1CloudURL, p.Image1ThumbURL,
		p.Image2CloudURL, p.Image2ThumbURL,
		p.Image3CloudURL, p.Image3ThumbURL,
	}
	return lo.Uniq(lo.Filter(urls, func(u string, _ int) bool { return u != "" }))
}
