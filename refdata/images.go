package refdata

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"sync"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"
	_ "golang.org/x/image/webp"
)

// DefaultPrefetchWorkers is the image prefetch pool size.
const DefaultPrefetchWorkers = 4

// Asset is a downloaded image: raw bytes plus the measured intrinsic
// dimensions.
type Asset struct {
	URL    string
	Data   []byte
	Format string // decoder name: "jpeg", "png", "gif", "webp"
	Width  int
	Height int
}

// EngineFormat maps the decoded format onto the document engine's image
// type names. Formats the engine cannot embed return "".
func (a *Asset) EngineFormat() string {
	switch a.Format {
	case "jpeg":
		return "JPG"
	case "png":
		return "PNG"
	case "gif":
		return "GIF"
	}
	return ""
}

// Image downloads and measures one image, caching the result by URL:
// repeated references to the same image across many cards incur exactly
// one download. Failures are cached too; they degrade to an empty image
// box downstream rather than aborting the document.
func (r *Resolver) Image(ctx context.Context, rawURL string) (*Asset, error) {
	return r.images.Get(rawURL, func() (*Asset, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("refdata: building image request: %w", err)
		}

		res, err := r.imageClient().Do(req)
		if err != nil {
			return nil, fmt.Errorf("refdata: fetching image: %w", err)
		}
		defer res.Body.Close()

		if res.StatusCode < 200 || res.StatusCode >= 300 {
			return nil, fmt.Errorf("refdata: image HTTP %d", res.StatusCode)
		}

		data, err := io.ReadAll(io.LimitReader(res.Body, 32<<20))
		if err != nil {
			return nil, fmt.Errorf("refdata: reading image: %w", err)
		}

		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("refdata: decoding image: %w", err)
		}

		return &Asset{
			URL:    rawURL,
			Data:   data,
			Format: format,
			Width:  cfg.Width,
			Height: cfg.Height,
		}, nil
	})
}

func (r *Resolver) imageClient() *http.Client {
	if r.client != nil && r.client.HTTPClient != nil {
		return r.client.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// PrefetchImages downloads the given URLs with a fixed-size worker pool.
// Each worker pulls the next unclaimed URL from the shared queue until
// none remain. Individual failures are logged and otherwise ignored; the
// per-URL outcome is available later through Image.
func (r *Resolver) PrefetchImages(ctx context.Context, urls []string, concurrency int) {
	urls = lo.Uniq(lo.Filter(urls, func(u string, _ int) bool { return u != "" }))
	if len(urls) == 0 {
		return
	}
	if concurrency <= 0 {
		concurrency = DefaultPrefetchWorkers
	}
	if concurrency > len(urls) {
		concurrency = len(urls)
	}

	queue := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range queue {
				if _, err := r.Image(ctx, u); err != nil {
					logger.Debugf("refdata: prefetch %s: %v", u, err)
				}
			}
		}()
	}
	for _, u := range urls {
		queue <- u
	}
	close(queue)
	wg.Wait()
}
