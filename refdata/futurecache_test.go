package refdata

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureCacheDeduplicates(t *testing.T) {
	cache := NewFutureCache[string, int]()
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]int, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := cache.Get("k", func() (int, error) {
				calls.Add(1)
				<-release
				return 42, nil
			})
			require.NoError(t, err)
			results[i] = v
		}(i)
	}

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "concurrent callers must share one fetch")
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestFutureCacheCachesFailure(t *testing.T) {
	cache := NewFutureCache[string, int]()
	var calls atomic.Int32
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		_, err := cache.Get("k", func() (int, error) {
			calls.Add(1)
			return 0, boom
		})
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, int32(1), calls.Load(), "failures are not retried within the cache lifetime")
}

func TestFutureCacheClear(t *testing.T) {
	cache := NewFutureCache[string, int]()
	var calls atomic.Int32
	fetch := func() (int, error) {
		calls.Add(1)
		return int(calls.Load()), nil
	}

	v, err := cache.Get("k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, cache.Len())

	cache.Clear()
	assert.Equal(t, 0, cache.Len())

	v, err = cache.Get("k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "Clear must allow a fresh fetch")
}

func TestFutureCachePanicResolvesFuture(t *testing.T) {
	cache := NewFutureCache[string, int]()

	require.Panics(t, func() {
		cache.Get("k", func() (int, error) { panic("boom") })
	})

	// The key must not stay in flight: later callers see the failure
	// without blocking and without a second fetch.
	v, err := cache.Get("k", func() (int, error) {
		t.Fatal("fetch re-ran after panic")
		return 0, nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Zero(t, v)
}

func TestFutureCachePanicUnblocksWaiter(t *testing.T) {
	cache := NewFutureCache[string, int]()
	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		defer func() { recover() }()
		cache.Get("k", func() (int, error) {
			close(started)
			<-release
			panic("boom")
		})
	}()

	<-started
	done := make(chan error, 1)
	go func() {
		_, err := cache.Get("k", func() (int, error) { return 0, nil })
		done <- err
	}()

	close(release)
	require.Error(t, <-done)
}

func TestFutureCacheIndependentKeys(t *testing.T) {
	cache := NewFutureCache[string, string]()
	a, err := cache.Get("a", func() (string, error) { return "A", nil })
	require.NoError(t, err)
	b, err := cache.Get("b", func() (string, error) { return "B", nil })
	require.NoError(t, err)
	assert.Equal(t, "A", a)
	assert.Equal(t, "B", b)
	assert.Equal(t, 2, cache.Len())
}
