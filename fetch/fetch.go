// Package fetch retrieves the source workbook, from the network or from disk.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// IncompleteError reports a download that ended before Content-Length bytes were received.
type IncompleteError struct {
	URL  string
	Got  int64
	Want int64
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("incomplete download of %s: got %d bytes, want %d", e.URL, e.Got, e.Want)
}

// Fetcher downloads source workbooks.
// Its zero value uses http.DefaultClient.
type Fetcher struct {
	Client *http.Client
}

// IsRemote reports whether location is an http(s) URL rather than a local file.
func IsRemote(location string) bool {
	u, err := url.Parse(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// Fetch returns the content at location: an http(s) URL or a local file path.
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if !IsRemote(location) {
		content, err := os.ReadFile(strings.TrimPrefix(location, "file://"))
		if err != nil {
			return nil, fmt.Errorf("cannot read source: %w", err)
		}
		return content, nil
	}
	return f.download(ctx, location)
}

func (f *Fetcher) download(ctx context.Context, addr string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create request for %s: %w", addr, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot http GET %s: %w", addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	var buf bytes.Buffer
	if resp.ContentLength > 0 {
		buf.Grow(int(resp.ContentLength))
	}
	pr := &progressReader{r: resp.Body, total: resp.ContentLength, url: addr}
	n, err := io.Copy(&buf, pr)
	incomplete := resp.ContentLength > 0 && n < resp.ContentLength
	if err != nil && !(incomplete && errors.Is(err, io.ErrUnexpectedEOF)) {
		return nil, fmt.Errorf("cannot read %s: %w", addr, err)
	}
	if incomplete {
		return nil, &IncompleteError{URL: addr, Got: n, Want: resp.ContentLength}
	}
	log.Info().Str("url", addr).Int64("bytes", n).Msg("download complete")
	return buf.Bytes(), nil
}

// progressReader logs the download progress every tenth of the expected
// size, or every megabyte when the size is unknown.
type progressReader struct {
	r     io.Reader
	url   string
	total int64 // <= 0 if unknown
	read  int64
	next  int64
}

const progressStep = 1 << 20

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.read >= p.next && n > 0 {
		ev := log.Info().Str("url", p.url).Int64("bytes", p.read)
		if p.total > 0 {
			ev = ev.Int64("total", p.total).Int64("percent", p.read*100/p.total)
			p.next = p.read + p.total/10
		} else {
			p.next = p.read + progressStep
		}
		ev.Msg("downloading")
	}
	return n, err
}
