package mcp

// RegisterResources adds the static documentation resources. Resources
// use the fabsheet:// scheme.
func RegisterResources(s *Server) {
	s.AddResource(Resource{
		URI:         "fabsheet://docs/layout",
		Name:        "Sheet Layout",
		Description: "How the generated product sheet is laid out page by page",
		MIMEType:    "text/markdown",
		Handler:     staticResource(layoutDoc),
	})

	s.AddResource(Resource{
		URI:         "fabsheet://docs/record",
		Name:        "Product Record Fields",
		Description: "The catalog JSON fields a product record may carry",
		MIMEType:    "text/markdown",
		Handler:     staticResource(recordDoc),
	})

	s.AddResource(Resource{
		URI:         "fabsheet://docs/suitability",
		Name:        "Suitability Line Grammar",
		Description: "The accepted shapes of raw suitability lines and how they aggregate",
		MIMEType:    "text/markdown",
		Handler:     staticResource(suitabilityDoc),
	})
}

func staticResource(text string) ResourceHandler {
	return func(uri string) ([]ResourceContent, error) {
		return []ResourceContent{{URI: uri, MIMEType: "text/markdown", Text: text}}, nil
	}
}

const layoutDoc = `# Sheet Layout

Every page is A4 portrait with a 12 mm margin, a company header band at
the top and a contact footer band at the bottom. The bands are identical
on every page.

## Detail page (always page 1)

1. Fabric code with an accent underline.
2. Hero panel: square product image (with an "N Options" badge when the
   collection has members), category and supply-model pills, a 0-5 star
   rating, and the auto-shrinking title/tagline block.
3. Short description, at most two lines.
4. Fixed spec table, two columns by four rows: Content, Width, Weight,
   Design, Structure, Colors, Motif, MOQ, plus a full-width Finish row.
   Absent values leave the cell empty.
5. QR card linking to the product page (only when a URL is known).
6. Suitability bullets under "Apparel" and "Home & Accessories"
   headings. Bullets that would cross the footer are dropped.

## Grid pages

When the collection holds more than the detail product itself, its
members are laid out as cards, by default 2x2 per page, each card holding
the image, a fabric-code badge and a compact spec table. Page count is
ceil(members / cards-per-page).
`

const recordDoc = `# Product Record Fields

All fields are optional; missing data renders as absent, never as a
placeholder.

| Field | Meaning |
|-------|---------|
| fabricCode, vendorFabricCode | Display code, first non-empty wins |
| productTitle, name | Hero title |
| productTagline | Hero subtitle |
| shortProductDescription, description | Paragraph under the hero (HTML is stripped) |
| category, supplyModel | Hero pills |
| ratingValue, rating, reviewScore | Star rating; 0-5, 0-10 and 0-100 scales are normalised |
| composition / content | Spec table Content cell |
| cm, inch | Width, rendered as '152 cm (59.84")' |
| gsm | Weight |
| design, structure, weave, motif | Spec table cells |
| color, finish | Joined lists |
| salesMOQ, uom | MOQ cell |
| suitability | Raw suitability lines, see the suitability doc |
| image1CloudUrl ... image3ThumbUrl | Hero and card images |
| collectionId | Grid page membership |
`

const suitabilityDoc = `# Suitability Line Grammar

A raw line holds pipe-separated parts: the first part is the market
segment, the middle parts form the use, and an optional trailing part is
a percentage confidence.

    Shirting | Casual shirts | 80%
    Womenswear | Summer dresses

Aggregation groups lines by segment (case-insensitive, discovery order),
de-duplicates uses keeping the highest confidence, sorts uses by
confidence descending, caps them per segment, and joins them into an
English sentence ("Casual shirts and Dresses."). Segments whose name
contains home, accessories, uniform or workwear keywords are listed under
"Home & Accessories"; everything else under "Apparel".
`
