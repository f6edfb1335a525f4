package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/fabsheet/catalog"
)

// fakeService serves paginated Product/Company listings the way the
// reference-data endpoint does, deliberately reporting a bogus total.
type fakeService struct {
	products  []catalog.Product
	companies []catalog.Company
	requests  atomic.Int32
}

func (s *fakeService) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)

		if r.Header.Get("X-Api-Key") != "test-key" {
			http.Error(w, "missing api key", http.StatusUnauthorized)
			return
		}

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		size, _ := strconv.Atoi(r.URL.Query().Get("maxSize"))
		if size <= 0 {
			size = DefaultPageSize
		}

		var items []any
		switch r.URL.Path {
		case "/Product":
			want := r.URL.Query().Get("collectionId")
			for _, p := range s.products {
				if want == "" || p.CollectionID == want {
					items = append(items, p)
				}
			}
		case "/Company":
			for _, c := range s.companies {
				items = append(items, c)
			}
		default:
			http.NotFound(w, r)
			return
		}

		end := offset + size
		if offset > len(items) {
			offset = len(items)
		}
		if end > len(items) {
			end = len(items)
		}

		// The total is untrustworthy on purpose: clients must not use it.
		resp := map[string]any{"total": -1, "list": items[offset:end]}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})
}

func newTestResolver(t *testing.T, svc *fakeService) *Resolver {
	t.Helper()
	srv := httptest.NewServer(svc.handler())
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "test-key")
	require.NoError(t, err)
	client.PageSize = 2 // force multiple pages in tests
	return NewResolver(client)
}

func product(code, collection string) catalog.Product {
	return catalog.Product{FabricCode: code, CollectionID: collection}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("", "key")
	assert.ErrorIs(t, err, ErrNoBaseURL)
}

func TestCollectionProductsPaginatesAndSorts(t *testing.T) {
	svc := &fakeService{products: []catalog.Product{
		product("FC-300", "col1"),
		product("FC-100", "col1"),
		product("FC-200", "col1"),
		product("FC-999", "other"),
		{FabricCode: "FC-150", CollectionID: "col1", Deleted: true},
	}}
	r := newTestResolver(t, svc)

	list, err := r.CollectionProducts(context.Background(), "col1")
	require.NoError(t, err)

	var codes []string
	for _, p := range list {
		codes = append(codes, p.FabricCode)
	}
	assert.Equal(t, []string{"FC-100", "FC-200", "FC-300"}, codes)
}

func TestCollectionCountAccumulatesIgnoringServerTotal(t *testing.T) {
	var products []catalog.Product
	for i := 0; i < 5; i++ {
		products = append(products, product(fmt.Sprintf("FC-%03d", i), "col1"))
	}
	svc := &fakeService{products: products}
	r := newTestResolver(t, svc)

	n, err := r.CollectionCount(context.Background(), "col1")
	require.NoError(t, err)
	assert.Equal(t, 5, n, "count must come from accumulation, not the reported total")

	// Page size 2 over 5 items: offsets 0, 2, 4 -> 3 round trips.
	assert.Equal(t, int32(3), svc.requests.Load())
}

func TestCollectionLookupDeduplicatesConcurrentCalls(t *testing.T) {
	svc := &fakeService{products: []catalog.Product{product("FC-1", "col1")}}
	r := newTestResolver(t, svc)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.CollectionCount(context.Background(), "col1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), svc.requests.Load(),
		"N concurrent calls for one collection must cost exactly 1 round trip")

	// A later call is served from cache.
	_, err := r.CollectionProducts(context.Background(), "col1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), svc.requests.Load())
}

func TestCompanyPrefersCodeThenHighestVersion(t *testing.T) {
	svc := &fakeService{companies: []catalog.Company{
		{ID: "c1", Name: "Old Mills", Code: "OM", Version: 3},
		{ID: "c2", Name: "Age Textiles", Code: "AGE", Version: 7},
		{ID: "c3", Name: "", Version: 99},            // nameless, ignored
		{ID: "c4", Name: "Gone", Deleted: true, Version: 50}, // deleted, ignored
	}}
	r := newTestResolver(t, svc)

	got, err := r.Company(context.Background(), "OM")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Old Mills", got.Name)

	r.Reset()
	svc.requests.Store(0)

	got, err = r.Company(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Age Textiles", got.Name, "highest version wins without a preferred code")
}

func TestCompanyNoneFound(t *testing.T) {
	svc := &fakeService{}
	r := newTestResolver(t, svc)

	got, err := r.Company(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, got, "absent profile resolves to nil, never a placeholder")
}

func TestCompanyCachedPerProcessLifetime(t *testing.T) {
	svc := &fakeService{companies: []catalog.Company{{ID: "c1", Name: "Age Textiles", Version: 1}}}
	r := newTestResolver(t, svc)

	_, err := r.Company(context.Background(), "")
	require.NoError(t, err)
	first := svc.requests.Load()

	_, err = r.Company(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, first, svc.requests.Load(), "profile must not be re-fetched")

	r.Reset()
	_, err = r.Company(context.Background(), "")
	require.NoError(t, err)
	assert.Greater(t, svc.requests.Load(), first, "Reset must allow a fresh fetch")
}
