// Package fabsheet composes print-ready A4 product sheets for textile
// records: a detail page with hero image, specification table, suitability
// summaries and QR artwork, plus card-grid pages for the product's whole
// collection when one resolves.
//
// Reference data (company profile, collection membership, images) is
// gathered concurrently before any drawing begins; drawing itself is
// single-threaded and strictly ordered because every primitive mutates the
// document engine's shared graphics state.
package fabsheet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jung-kurt/gofpdf"

	"github.com/lvillar/fabsheet/catalog"
	"github.com/lvillar/fabsheet/shape"
)

// FallbackFilename is used when the product has no displayable code.
const FallbackFilename = "product-sheet.pdf"

// Page geometry in millimetres.
const (
	pageMargin  = 12.0
	headerBandH = 16.0
	footerBandH = 20.0
	bandGap     = 6.0
)

// Result describes a generated document.
type Result struct {
	Filename  string // output filename, "<code>.pdf" or the fallback
	Pages     int    // total pages emitted
	GridPages int    // collection grid pages among them
}

// sheet carries the gathered data and layout state for one document. All
// drawing goes through its single *gofpdf.Fpdf cursor.
type sheet struct {
	pdf   *gofpdf.Fpdf
	cfg   *config
	theme Theme
	ctx   context.Context

	product *catalog.Product

	companyName string
	phone       string
	whatsapp    string
	email       string
	address     string

	members      []catalog.Product
	optionsCount int
	productURL   string
	qrPNG        []byte

	registered map[string]bool

	pageW, pageH float64
	contentW     float64
	contentTop   float64
	reserveY     float64 // footer reserve line: nothing draws below it
}

// Generate renders the product sheet and writes it to
// "<outputDir>/<fabricCode>.pdf" (or the generic fallback name when the
// record carries no code).
func Generate(ctx context.Context, product *catalog.Product, opts ...Option) (*Result, error) {
	if product == nil {
		return nil, ErrNilProduct
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var buf bytes.Buffer
	res, err := generate(ctx, &buf, product, cfg)
	if err != nil {
		return nil, err
	}

	path := res.Filename
	if cfg.outputDir != "" {
		if err := os.MkdirAll(cfg.outputDir, 0o755); err != nil {
			return nil, renderErr("output", err)
		}
		path = filepath.Join(cfg.outputDir, res.Filename)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, renderErr("output", err)
	}
	return res, nil
}

// GenerateTo renders the product sheet to w.
func GenerateTo(ctx context.Context, w io.Writer, product *catalog.Product, opts ...Option) (*Result, error) {
	if product == nil {
		return nil, ErrNilProduct
	}
	if w == nil {
		return nil, ErrNilWriter
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return generate(ctx, w, product, cfg)
}

func generate(ctx context.Context, w io.Writer, product *catalog.Product, cfg *config) (*Result, error) {
	s := &sheet{
		cfg:        cfg,
		theme:      cfg.theme,
		ctx:        ctx,
		product:    product,
		registered: map[string]bool{},
	}

	s.gather(ctx)
	if err := s.compose(); err != nil {
		return nil, err
	}
	if err := s.pdf.Output(w); err != nil {
		return nil, renderErr("output", err)
	}

	return &Result{
		Filename:  s.filename(),
		Pages:     s.pdf.PageNo(),
		GridPages: s.gridPageCount(),
	}, nil
}

// gather resolves everything network-bound before drawing starts.
// Metadata lookups run concurrently (de-duplicated by the resolver's
// caches); image downloads go through the bounded prefetch pool. Every
// failure here is non-fatal and leaves the corresponding element absent.
func (s *sheet) gather(ctx context.Context) {
	cfg := s.cfg

	collectionID := catalog.FirstNonEmpty(cfg.collectionID, s.product.CollectionID)

	var company *catalog.Company
	if cfg.resolver != nil {
		var wg sync.WaitGroup

		wg.Add(1)
		go func() {
			defer wg.Done()
			company, _ = cfg.resolver.Company(ctx, "")
		}()

		if collectionID != "" {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.members, _ = cfg.resolver.CollectionProducts(ctx, collectionID)
			}()
		}
		wg.Wait()
	}

	s.companyName = cfg.companyName
	s.phone = cfg.phone
	s.whatsapp = cfg.whatsapp
	s.email = cfg.email
	s.address = cfg.addressLine
	if company != nil {
		s.companyName = catalog.FirstNonEmpty(s.companyName, company.Name)
		s.phone = catalog.FirstNonEmpty(s.phone, company.Phone)
		s.whatsapp = catalog.FirstNonEmpty(s.whatsapp, company.WhatsApp)
		s.email = catalog.FirstNonEmpty(s.email, company.Email)
		s.address = catalog.FirstNonEmpty(s.address, company.AddressLine())
	}

	s.optionsCount = len(s.members)
	if cfg.hasOptions {
		s.optionsCount = cfg.optionsCount
	}

	s.productURL = cfg.productURL
	s.qrPNG = cfg.qrImage
	if s.qrPNG == nil && s.productURL != "" {
		if png, err := encodeQR(s.productURL); err == nil {
			s.qrPNG = png
		}
	}

	if cfg.resolver != nil {
		urls := []string{s.product.PrimaryImage()}
		for _, m := range s.members {
			urls = append(urls, m.PrimaryImage())
		}
		cfg.resolver.PrefetchImages(ctx, urls, cfg.prefetchWorkers)
	}
}

// compose draws every page in fixed order: Detail first, then Grid pages
// in ascending offset order.
func (s *sheet) compose() error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	s.pdf = pdf

	s.pageW, s.pageH = pdf.GetPageSize()
	s.contentW = s.pageW - 2*pageMargin
	s.contentTop = pageMargin + headerBandH + bandGap
	s.reserveY = s.pageH - pageMargin - footerBandH

	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(s.product.DisplayTitle(), true)
	if s.companyName != "" {
		pdf.SetAuthor(s.companyName, true)
	}

	if len(s.cfg.logo) > 0 {
		s.registerImage("logo", s.cfg.logoFormat, s.cfg.logo)
	}
	if len(s.qrPNG) > 0 {
		s.registerImage("qr", "PNG", s.qrPNG)
	}

	// The bands are drawn by the engine's page hooks from fixed offsets,
	// so they come out identical on every page of the document.
	pdf.SetHeaderFunc(func() { s.drawHeaderBand() })
	pdf.SetFooterFunc(func() { s.drawFooterBand() })

	pdf.AddPage()
	s.drawDetailPage()

	capacity := s.cfg.gridCols * s.cfg.gridRows
	if s.drawGrid() {
		for offset := 0; offset < len(s.members); offset += capacity {
			end := offset + capacity
			if end > len(s.members) {
				end = len(s.members)
			}
			pdf.AddPage()
			s.drawGridPage(s.members[offset:end])
		}
	}

	if pdf.Err() {
		return renderErr("compose", pdf.Error())
	}
	return nil
}

// drawGrid reports whether grid pages are emitted: the collection must
// hold at least one member beyond the detail product itself.
func (s *sheet) drawGrid() bool {
	code := s.product.DisplayCode()
	for _, m := range s.members {
		if m.DisplayCode() != code {
			return true
		}
	}
	return false
}

func (s *sheet) gridPageCount() int {
	if !s.drawGrid() {
		return 0
	}
	capacity := s.cfg.gridCols * s.cfg.gridRows
	return int(math.Ceil(float64(len(s.members)) / float64(capacity)))
}

func (s *sheet) filename() string {
	code := sanitizeFilename(s.product.DisplayCode())
	if code == "" {
		return FallbackFilename
	}
	return code + ".pdf"
}

func sanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, s)
}

// registerImage makes raw image bytes available to the engine under name.
func (s *sheet) registerImage(name, format string, data []byte) {
	if s.registered[name] || format == "" {
		return
	}
	s.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: format}, bytes.NewReader(data))
	s.registered[name] = true
}

// placeImage draws a prefetched remote image into a box, returning false
// when the asset is unavailable or not embeddable; callers fall back to a
// placeholder.
func (s *sheet) placeImage(url string, x, y, w, h float64) bool {
	if url == "" || s.cfg.resolver == nil {
		return false
	}
	asset, err := s.cfg.resolver.Image(s.ctx, url)
	if err != nil || asset.EngineFormat() == "" {
		return false
	}
	s.registerImage(url, asset.EngineFormat(), asset.Data)
	s.pdf.ImageOptions(url, x, y, w, h, false, gofpdf.ImageOptions{ImageType: asset.EngineFormat()}, 0, "")
	return true
}

// setFont applies family/style/size and text colour in one step.
func (s *sheet) setFont(style string, size float64, color shape.RGB) {
	s.pdf.SetFont("Helvetica", style, size)
	s.pdf.SetTextColor(color.R, color.G, color.B)
}

func formatCount(n int) string {
	return fmt.Sprintf("%d Options", n)
}
