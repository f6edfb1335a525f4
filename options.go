package fabsheet

import "github.com/lvillar/fabsheet/refdata"

// Option is a functional option for configuring Generate.
//
// Any override supplied here always wins over a value resolved from the
// reference-data service; nothing is ever silently replaced with a
// hardcoded brand string.
type Option func(*config)

type config struct {
	companyName string
	phone       string
	whatsapp    string
	email       string
	addressLine string

	collectionID string
	optionsCount int
	hasOptions   bool

	productURL string
	qrImage    []byte // pre-rendered PNG; wins over the encoder
	logo       []byte
	logoFormat string // "PNG", "JPG", "GIF"

	resolver        *refdata.Resolver
	prefetchWorkers int

	outputDir string

	gridCols int
	gridRows int
	maxUses  int

	theme Theme
}

func defaultConfig() *config {
	return &config{
		prefetchWorkers: refdata.DefaultPrefetchWorkers,
		gridCols:        2,
		gridRows:        2,
		maxUses:         3,
		theme:           DefaultTheme(),
	}
}

// WithCompanyName overrides the resolved company name.
func WithCompanyName(name string) Option {
	return func(c *config) { c.companyName = name }
}

// WithPhone overrides the voice contact number.
func WithPhone(phone string) Option {
	return func(c *config) { c.phone = phone }
}

// WithWhatsApp overrides the messaging contact number.
func WithWhatsApp(number string) Option {
	return func(c *config) { c.whatsapp = number }
}

// WithEmail overrides the contact email.
func WithEmail(email string) Option {
	return func(c *config) { c.email = email }
}

// WithAddressLine overrides the footer address line.
func WithAddressLine(line string) Option {
	return func(c *config) { c.addressLine = line }
}

// WithCollectionID overrides the product's collection identifier.
func WithCollectionID(id string) Option {
	return func(c *config) { c.collectionID = id }
}

// WithOptionsCount overrides the "N Options" badge count.
func WithOptionsCount(n int) Option {
	return func(c *config) {
		c.optionsCount = n
		c.hasOptions = true
	}
}

// WithProductURL sets the resolvable product URL encoded into the QR card.
// Without a URL (or a pre-rendered QR image) the QR card is omitted.
func WithProductURL(u string) Option {
	return func(c *config) { c.productURL = u }
}

// WithQRImage supplies a pre-rendered QR code as PNG bytes, bypassing the
// encoder.
func WithQRImage(png []byte) Option {
	return func(c *config) { c.qrImage = png }
}

// WithLogo supplies the header logo image. format is the engine image
// type: "PNG", "JPG", or "GIF".
func WithLogo(data []byte, format string) Option {
	return func(c *config) {
		c.logo = data
		c.logoFormat = format
	}
}

// WithResolver attaches a reference-data resolver used to look up the
// company profile, collection membership, and images. Without one, only
// explicitly supplied values are rendered.
func WithResolver(r *refdata.Resolver) Option {
	return func(c *config) { c.resolver = r }
}

// WithPrefetchWorkers bounds the image prefetch pool.
func WithPrefetchWorkers(n int) Option {
	return func(c *config) { c.prefetchWorkers = n }
}

// WithOutputDir sets the directory Generate writes the PDF into.
func WithOutputDir(dir string) Option {
	return func(c *config) { c.outputDir = dir }
}

// WithGrid sets the card grid dimensions for collection pages.
func WithGrid(cols, rows int) Option {
	return func(c *config) {
		if cols > 0 {
			c.gridCols = cols
		}
		if rows > 0 {
			c.gridRows = rows
		}
	}
}

// WithMaxUsesPerSegment caps how many uses a suitability bullet lists.
func WithMaxUsesPerSegment(n int) Option {
	return func(c *config) { c.maxUses = n }
}

// WithTheme replaces the colour theme.
func WithTheme(t Theme) Option {
	return func(c *config) { c.theme = t }
}
