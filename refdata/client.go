// Package refdata resolves the reference data a product sheet needs from a
// remote paginated service: the company profile, collection membership and
// counts, and raster images. All lookups are cached with per-key request
// de-duplication so a whole-collection render performs each network round
// trip exactly once.
package refdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/flanksource/commons/logger"
)

// Sentinel errors for resolver setup failures. These are caller errors and
// propagate; everything else degrades.
var (
	ErrNoBaseURL = errors.New("refdata: base URL is required")
)

// DefaultPageSize is the page size requested from the listing endpoint.
const DefaultPageSize = 200

// Client is a thin reader for the reference-data service: a paginated
// listing endpoint accepting maxSize/offset plus equality filters, secured
// by an API key header.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	PageSize   int
}

// NewClient validates the base URL and returns a client with defaults.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("refdata: invalid base URL: %w", err)
	}
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		PageSize:   DefaultPageSize,
	}, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) pageSize() int {
	if c.PageSize > 0 {
		return c.PageSize
	}
	return DefaultPageSize
}

// envelope is one page of a listing response. Total is reported by the
// server but is known to be unreliable (it can be stale or negative), so
// it is never used for loop termination.
type envelope struct {
	Total int               `json:"total"`
	List  []json.RawMessage `json:"list"`
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("refdata: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("X-Api-Key", c.APIKey)
	}

	res, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("refdata: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("refdata: HTTP %d: %s", res.StatusCode, string(body))
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// listAll pages through entity until the service returns a page shorter
// than the requested size. The accumulated item count is the only total
// ever trusted.
func listAll[T any](ctx context.Context, c *Client, entity string, filters url.Values) ([]T, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("refdata: invalid base URL: %w", err)
	}
	base = base.JoinPath(entity)

	size := c.pageSize()
	var all []T

	for offset := 0; ; {
		q := url.Values{}
		for k, vs := range filters {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		q.Set("maxSize", strconv.Itoa(size))
		q.Set("offset", strconv.Itoa(offset))
		base.RawQuery = q.Encode()

		var page envelope
		if err := c.getJSON(ctx, base.String(), &page); err != nil {
			return nil, err
		}
		logger.Debugf("refdata: %s offset=%d returned %d items (reported total %d)",
			entity, offset, len(page.List), page.Total)

		for _, raw := range page.List {
			var item T
			if err := json.Unmarshal(raw, &item); err != nil {
				return nil, fmt.Errorf("refdata: decoding %s item: %w", entity, err)
			}
			all = append(all, item)
		}

		if len(page.List) < size {
			break
		}
		offset += len(page.List)
	}
	return all, nil
}
