package fabsheet

import (
	"bytes"
	"compress/zlib"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/fabsheet/catalog"
	"github.com/lvillar/fabsheet/refdata"
)

// newCatalogService serves a paged Product listing and a single Company
// record the way the reference-data API does.
func newCatalogService(t *testing.T, members []catalog.Product) *httptest.Server {
	t.Helper()

	companies := []catalog.Company{{Name: "Acme Mills", Phone: "+1 555 0100", Email: "hello@acme.test"}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		size, _ := strconv.Atoi(r.URL.Query().Get("maxSize"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		if size <= 0 {
			size = refdata.DefaultPageSize
		}

		var items []any
		switch r.URL.Path {
		case "/Product":
			for _, m := range members {
				items = append(items, m)
			}
		case "/Company":
			for _, c := range companies {
				items = append(items, c)
			}
		default:
			http.NotFound(w, r)
			return
		}

		if offset > len(items) {
			offset = len(items)
		}
		end := offset + size
		if end > len(items) {
			end = len(items)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"total": -1, "list": items[offset:end]})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestResolver(t *testing.T, members []catalog.Product) *refdata.Resolver {
	t.Helper()
	srv := newCatalogService(t, members)
	client, err := refdata.NewClient(srv.URL, "test-key")
	require.NoError(t, err)
	return refdata.NewResolver(client)
}

func collectionMembers(n int) []catalog.Product {
	members := make([]catalog.Product, 0, n)
	for i := 0; i < n; i++ {
		members = append(members, catalog.Product{
			FabricCode:   fmt.Sprintf("CL-%02d", i+1),
			Title:        fmt.Sprintf("Cloth %d", i+1),
			CollectionID: "col-1",
		})
	}
	return members
}

func TestGenerateToBareProduct(t *testing.T) {
	var buf bytes.Buffer
	product := &catalog.Product{FabricCode: "AB-102"}

	res, err := GenerateTo(context.Background(), &buf, product)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	require.Equal(t, "AB-102.pdf", res.Filename)
	require.Equal(t, 1, res.Pages)
	require.Equal(t, 0, res.GridPages)
}

func TestGenerateToNilArguments(t *testing.T) {
	var buf bytes.Buffer

	_, err := GenerateTo(context.Background(), &buf, nil)
	require.ErrorIs(t, err, ErrNilProduct)

	_, err = GenerateTo(context.Background(), nil, &catalog.Product{})
	require.ErrorIs(t, err, ErrNilWriter)
}

func TestFallbackFilename(t *testing.T) {
	var buf bytes.Buffer

	res, err := GenerateTo(context.Background(), &buf, &catalog.Product{Title: "No code here"})
	require.NoError(t, err)
	require.Equal(t, FallbackFilename, res.Filename)
}

func TestFilenameSanitized(t *testing.T) {
	var buf bytes.Buffer

	res, err := GenerateTo(context.Background(), &buf, &catalog.Product{FabricCode: "AB/10:2"})
	require.NoError(t, err)
	require.Equal(t, "AB-10-2.pdf", res.Filename)
}

func TestGridPagination(t *testing.T) {
	members := collectionMembers(5)
	product := &members[0]

	t.Run("two by two", func(t *testing.T) {
		var buf bytes.Buffer
		res, err := GenerateTo(context.Background(), &buf, product,
			WithResolver(newTestResolver(t, members)))
		require.NoError(t, err)
		require.Equal(t, 2, res.GridPages) // ceil(5/4)
		require.Equal(t, 3, res.Pages)
	})

	t.Run("two by one", func(t *testing.T) {
		var buf bytes.Buffer
		res, err := GenerateTo(context.Background(), &buf, product,
			WithResolver(newTestResolver(t, members)), WithGrid(2, 1))
		require.NoError(t, err)
		require.Equal(t, 3, res.GridPages) // ceil(5/2)
		require.Equal(t, 4, res.Pages)
	})
}

func TestNoGridForLoneProduct(t *testing.T) {
	// A collection holding only the detail product itself emits no grid.
	members := collectionMembers(1)
	var buf bytes.Buffer

	res, err := GenerateTo(context.Background(), &buf, &members[0],
		WithResolver(newTestResolver(t, members)))
	require.NoError(t, err)
	require.Equal(t, 0, res.GridPages)
	require.Equal(t, 1, res.Pages)
}

func TestCollectionFailureDegrades(t *testing.T) {
	// An unreachable reference service must not fail the render.
	client, err := refdata.NewClient("http://127.0.0.1:1", "k")
	require.NoError(t, err)

	var buf bytes.Buffer
	res, err := GenerateTo(context.Background(), &buf,
		&catalog.Product{FabricCode: "AB-1", CollectionID: "col-1"},
		WithResolver(refdata.NewResolver(client)))
	require.NoError(t, err)
	require.Equal(t, 1, res.Pages)
}

func TestQRFromProductURL(t *testing.T) {
	var buf bytes.Buffer

	_, err := GenerateTo(context.Background(), &buf,
		&catalog.Product{FabricCode: "AB-1", Suitability: []string{"Shirting | Casual shirts | 80%"}},
		WithProductURL("https://example.test/p/ab-1"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestGenerateWritesFile(t *testing.T) {
	dir := t.TempDir()

	res, err := Generate(context.Background(), &catalog.Product{FabricCode: "AB-1"},
		WithOutputDir(dir))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, res.Filename))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

// pageStreams decompresses every Flate stream in the document. With core
// fonts and no images the only compressed streams are the per-page
// content streams, in page order.
func pageStreams(t *testing.T, doc []byte) []string {
	t.Helper()

	var out []string
	rest := doc
	for {
		i := bytes.Index(rest, []byte("stream"))
		if i < 0 {
			break
		}
		seg := rest[i+len("stream"):]
		seg = bytes.TrimPrefix(seg, []byte("\r\n"))
		seg = bytes.TrimPrefix(seg, []byte("\n"))
		j := bytes.Index(seg, []byte("endstream"))
		if j < 0 {
			break
		}
		if r, err := zlib.NewReader(bytes.NewReader(seg[:j])); err == nil {
			if data, err := io.ReadAll(r); err == nil {
				out = append(out, string(data))
			}
		}
		rest = seg[j:]
	}
	return out
}

func TestBandsIdenticalAcrossPages(t *testing.T) {
	// The header and footer bands come from engine page hooks reading
	// sheet state that must not change between pages. Drive the hooks
	// through three pages whose only body is a per-page marker, then
	// mask the marker and require the content streams byte-identical.
	cfg := defaultConfig()
	s := &sheet{
		cfg:        cfg,
		theme:      cfg.theme,
		ctx:        context.Background(),
		product:    &catalog.Product{FabricCode: "AB-1"},
		registered: map[string]bool{},
	}
	s.companyName = "Acme Mills"
	s.phone = "+1 555 0100"
	s.email = "hello@acme.test"
	s.address = "1 Mill Road, Weaverton"

	pdf := gofpdf.New("P", "mm", "A4", "")
	s.pdf = pdf
	s.pageW, s.pageH = pdf.GetPageSize()
	s.contentW = s.pageW - 2*pageMargin
	s.contentTop = pageMargin + headerBandH + bandGap
	s.reserveY = s.pageH - pageMargin - footerBandH
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetHeaderFunc(func() { s.drawHeaderBand() })
	pdf.SetFooterFunc(func() { s.drawFooterBand() })

	for i := 1; i <= 3; i++ {
		pdf.AddPage()
		s.setFont("", 9, s.theme.Text)
		pdf.Text(pageMargin, s.contentTop+10, fmt.Sprintf("marker-%d", i))
	}

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))

	pages := pageStreams(t, buf.Bytes())
	require.Len(t, pages, 3)
	for i := range pages {
		pages[i] = strings.Replace(pages[i], fmt.Sprintf("marker-%d", i+1), "marker-X", 1)
	}
	require.Equal(t, pages[0], pages[1])
	require.Equal(t, pages[1], pages[2])
}

func TestBandsOnEveryGeneratedPage(t *testing.T) {
	members := collectionMembers(5)
	var buf bytes.Buffer

	res, err := GenerateTo(context.Background(), &buf, &members[0],
		WithResolver(newTestResolver(t, members)),
		WithCompanyName("Acme Mills"))
	require.NoError(t, err)

	pages := pageStreams(t, buf.Bytes())
	require.Len(t, pages, res.Pages)
	for i, page := range pages {
		require.Equal(t, 1, strings.Count(page, "(Acme Mills) Tj"),
			"page %d header band company name", i+1)
	}
}

func TestFooterAddressWraps(t *testing.T) {
	// An address wider than the content width flows onto the footer's
	// second line rather than being truncated to one.
	long := strings.TrimSpace(strings.Repeat("Millworks Estate ", 20))
	var buf bytes.Buffer

	_, err := GenerateTo(context.Background(), &buf, &catalog.Product{FabricCode: "AB-1"},
		WithAddressLine(long))
	require.NoError(t, err)

	pages := pageStreams(t, buf.Bytes())
	require.Len(t, pages, 1)
	require.Equal(t, 2, strings.Count(pages[0], "(Millworks"),
		"address should render as two wrapped lines")
}

func TestContactOverridesWin(t *testing.T) {
	members := collectionMembers(2)
	var buf bytes.Buffer

	_, err := GenerateTo(context.Background(), &buf, &members[0],
		WithResolver(newTestResolver(t, members)),
		WithCompanyName("Override Co"),
		WithOptionsCount(9))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
