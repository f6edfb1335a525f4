package refdata

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"

	"github.com/lvillar/fabsheet/catalog"
)

// Entity names on the reference-data service.
const (
	productEntity = "Product"
	companyEntity = "Company"
)

// Resolver caches reference-data lookups for the lifetime of the resolver.
// Every lookup is de-duplicated per key: concurrent callers share one
// network round trip, and results (including failures) stay cached until
// Reset. Construct one per process, or per test with Reset between cases.
type Resolver struct {
	client *Client

	companies   *FutureCache[string, *catalog.Company]
	collections *FutureCache[string, []catalog.Product]
	images      *FutureCache[string, *Asset]
}

// NewResolver wraps a client with fresh caches.
func NewResolver(client *Client) *Resolver {
	return &Resolver{
		client:      client,
		companies:   NewFutureCache[string, *catalog.Company](),
		collections: NewFutureCache[string, []catalog.Product](),
		images:      NewFutureCache[string, *Asset](),
	}
}

// Client returns the underlying client.
func (r *Resolver) Client() *Client { return r.client }

// Reset clears every cache. Intended for tests and long-lived processes
// that want fresh data for a new rendering session.
func (r *Resolver) Reset() {
	r.companies.Clear()
	r.collections.Clear()
	r.images.Clear()
}

// Company resolves the company profile. Records that are deleted or have
// no name are ignored. When preferredCode matches a record's code or id
// that record wins; otherwise the highest-version record is used. A nil
// company with nil error means no usable record exists; callers render
// the affected fields as absent, never as a dummy string.
func (r *Resolver) Company(ctx context.Context, preferredCode string) (*catalog.Company, error) {
	return r.companies.Get(preferredCode, func() (*catalog.Company, error) {
		list, err := listAll[catalog.Company](ctx, r.client, companyEntity, nil)
		if err != nil {
			logger.Warnf("refdata: company lookup failed: %v", err)
			return nil, err
		}

		valid := lo.Filter(list, func(c catalog.Company, _ int) bool {
			return !c.Deleted && c.Name != ""
		})
		if len(valid) == 0 {
			return nil, nil
		}

		if preferredCode != "" {
			for i := range valid {
				if valid[i].Code == preferredCode || valid[i].ID == preferredCode {
					return &valid[i], nil
				}
			}
		}

		best := &valid[0]
		for i := range valid {
			if valid[i].Version > best.Version {
				best = &valid[i]
			}
		}
		return best, nil
	})
}

// ProductByCode fetches a single product record by fabric code. Deleted
// records are skipped; the first live match wins.
func (r *Resolver) ProductByCode(ctx context.Context, code string) (*catalog.Product, error) {
	filters := url.Values{}
	filters.Set("fabricCode", code)

	list, err := listAll[catalog.Product](ctx, r.client, productEntity, filters)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if !list[i].Deleted {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("refdata: no product with fabric code %q", code)
}

// CollectionProducts lists the members of a collection, sorted by display
// code ascending so card order is reproducible across renders. The listing
// is fetched once per collection id.
func (r *Resolver) CollectionProducts(ctx context.Context, collectionID string) ([]catalog.Product, error) {
	return r.collections.Get(collectionID, func() ([]catalog.Product, error) {
		filters := url.Values{}
		filters.Set("collectionId", collectionID)
		filters.Set("deleted", "false")

		list, err := listAll[catalog.Product](ctx, r.client, productEntity, filters)
		if err != nil {
			logger.Warnf("refdata: collection %s lookup failed: %v", collectionID, err)
			return nil, err
		}

		list = lo.Filter(list, func(p catalog.Product, _ int) bool { return !p.Deleted })
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].DisplayCode() < list[j].DisplayCode()
		})
		return list, nil
	})
}

// CollectionCount reports how many products belong to a collection. The
// count is accumulated from the paged listing, never read from the
// server's total field, and shares the listing's cache entry.
func (r *Resolver) CollectionCount(ctx context.Context, collectionID string) (int, error) {
	list, err := r.CollectionProducts(ctx, collectionID)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}
