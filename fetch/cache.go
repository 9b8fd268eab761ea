package fetch

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/ppr/date"
	"github.com/rs/zerolog/log"
)

// now is the clock of the cache, replaced in tests.
var now = time.Now

// diskCache implements a simple disk cache for HTTP responses.
// Entries expire every day.
type diskCache struct {
	base http.RoundTripper
	dir  string
}

// NewDailyCache returns a RoundTripper that serves successful GET responses
// from dir when they were already fetched the same day, and from base otherwise.
//
// An empty dir means os.TempDir().
func NewDailyCache(base http.RoundTripper, dir string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if dir == "" {
		dir = os.TempDir()
	}
	return &diskCache{base: base, dir: dir}
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.base.RoundTrip(req)
	}
	// one key per day, so the cache expires every day.
	key := fmt.Sprintf("%s %s %s", date.FromTime(now()), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if cached, err := c.get(key, req); err == nil {
		log.Debug().Str("url", req.URL.String()).Msg("cache hit")
		return cached, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("status", resp.Status).Msg("http")
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		log.Warn().Err(err).Msg("cache write error (ignored)")
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores a response to disk cache.
//
// The body of resp is read, and replaced by an in memory copy.
// A truncated body is never stored.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0644)
}
