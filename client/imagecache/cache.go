// Package imagecache turns a permission-gated image URL plus a bearer
// credential into a handle a plain image element can use. Without it, the
// element would navigate to the URL unauthenticated and render the policy
// denial as a broken image.
package imagecache

import (
	"context"
	"encoding/base64"
	"sync"

	"github.com/pictonet/pictonet/internal/logger"
)

// Fetcher performs the out-of-band authorized fetch. *client.APIClient
// satisfies it.
type Fetcher interface {
	FetchImage(ctx context.Context, locator string, token string) ([]byte, string, error)
}

// cacheKey identifies one memoized fetch.
type cacheKey struct {
	locator    string
	credential string
}

type inflight struct {
	done   chan struct{}
	handle *Handle
	err    error
}

// Cache memoizes authorized fetches per (locator, credential) pair and
// deduplicates concurrent fetches for the same pair. Entries live until the
// last handle reference is released; there is no time-based expiry.
type Cache struct {
	fetcher Fetcher

	mu       sync.Mutex
	entries  map[cacheKey]*Handle
	inflight map[cacheKey]*inflight
}

func New(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher:  fetcher,
		entries:  make(map[cacheKey]*Handle),
		inflight: make(map[cacheKey]*inflight),
	}
}

// Acquire returns a handle for the locator. Each successful Acquire takes a
// reference; callers release it when the image leaves the view.
//
// Anonymous requests and failed fetches yield a pass-through handle carrying
// the raw locator; failures are never cached, so the next Acquire retries.
func (c *Cache) Acquire(ctx context.Context, locator string, credential string) (*Handle, error) {
	if credential == "" {
		return passthrough(locator), nil
	}

	key := cacheKey{locator: locator, credential: credential}

	c.mu.Lock()
	if h, ok := c.entries[key]; ok {
		h.refs++
		c.mu.Unlock()
		return h, nil
	}
	if call, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		return c.await(ctx, key, call)
	}
	call := &inflight{done: make(chan struct{})}
	c.inflight[key] = call
	c.mu.Unlock()

	data, contentType, err := c.fetcher.FetchImage(ctx, locator, credential)

	c.mu.Lock()
	delete(c.inflight, key)
	if err != nil {
		// Degrade to the raw locator; a broken image beats a crashed view.
		logger.Log.Warn("authorized image fetch failed", "locator", locator, "error", err)
		call.handle = passthrough(locator)
	} else {
		call.handle = &Handle{
			cache:       c,
			key:         key,
			locator:     locator,
			data:        data,
			contentType: contentType,
			fetched:     true,
			refs:        1,
		}
		c.entries[key] = call.handle
	}
	call.err = nil
	c.mu.Unlock()
	close(call.done)

	return call.handle, nil
}

// await blocks on another goroutine's fetch of the same key.
func (c *Cache) await(ctx context.Context, key cacheKey, call *inflight) (*Handle, error) {
	select {
	case <-call.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if h, ok := c.entries[key]; ok {
		// Fetch succeeded and is still cached; take a reference like a
		// cache hit would.
		h.refs++
		return h, nil
	}
	// The shared fetch degraded, or the entry was already released; hand out
	// an independent pass-through.
	return passthrough(call.handle.locator), nil
}

// release drops one reference and evicts the entry at zero.
func (c *Cache) release(h *Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h.refs > 0 {
		h.refs--
	}
	if h.refs == 0 {
		delete(c.entries, h.key)
		h.data = nil
	}
}

// len reports the number of memoized entries; used by tests.
func (c *Cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Handle is a locally dereferenceable image source.
type Handle struct {
	cache       *Cache
	key         cacheKey
	locator     string
	data        []byte
	contentType string
	fetched     bool
	refs        int
}

func passthrough(locator string) *Handle {
	return &Handle{locator: locator}
}

// Fetched reports whether the handle carries materialized bytes rather than
// the raw locator.
func (h *Handle) Fetched() bool {
	return h.fetched
}

// Bytes returns the materialized image bytes, nil for pass-through handles.
func (h *Handle) Bytes() []byte {
	return h.data
}

func (h *Handle) ContentType() string {
	return h.contentType
}

// Src is what goes into the image element: a data URI for fetched bytes, or
// the raw locator as the best-effort fallback.
func (h *Handle) Src() string {
	if !h.fetched {
		return h.locator
	}
	return "data:" + h.contentType + ";base64," + base64.StdEncoding.EncodeToString(h.data)
}

// Release gives the reference back. The underlying bytes are freed when the
// last reference is released. Releasing a pass-through handle is a no-op.
func (h *Handle) Release() {
	if h.cache == nil {
		return
	}
	h.cache.release(h)
}
