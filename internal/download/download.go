// Package download streams remote artifacts to disk with byte progress.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// Target describes one artifact to fetch.
type Target struct {
	// URL is the fully resolved download location.
	URL string
	// Dest is the file the artifact is written to. Its parent directory
	// must exist before Fetch is called.
	Dest string
	// DisplayName labels the download in progress output.
	DisplayName string
}

// Observer receives byte-level progress for a single fetch. Start is called
// once before the first byte; total is the Content-Length, or a value <= 0
// when the upstream does not advertise one. Implementations with an unknown
// total are expected to grow their upper bound as bytes arrive so the
// indicator stays monotone.
type Observer interface {
	Start(name string, total int64)
	Add(n int64)
	Finish()
}

// NopObserver discards all progress.
type NopObserver struct{}

func (NopObserver) Start(string, int64) {}
func (NopObserver) Add(int64)           {}
func (NopObserver) Finish()             {}

// Fetch streams t.URL into t.Dest. The destination's parent directory is
// verified before any network call. A 404 response reports
// ErrVersionNotFound; other non-200 statuses and transport errors propagate
// as plain errors. Read failures and write failures are wrapped distinctly.
func Fetch(ctx context.Context, client *http.Client, t Target, obs Observer) error {
	if obs == nil {
		obs = NopObserver{}
	}
	if client == nil {
		client = http.DefaultClient
	}

	if _, err := os.Stat(filepath.Dir(t.Dest)); err != nil {
		return fmt.Errorf("%s: %w", filepath.Dir(t.Dest), ErrDestinationNotFound)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.URL, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", t.URL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", t.URL, ErrVersionNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("HTTP %d downloading %s", resp.StatusCode, t.URL)
	}

	f, err := os.Create(t.Dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", t.Dest, err)
	}
	defer f.Close()

	obs.Start(t.DisplayName, resp.ContentLength)

	buf := make([]byte, 32*1024)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				os.Remove(t.Dest)
				return fmt.Errorf("writing %s: %w", t.Dest, werr)
			}
			obs.Add(int64(n))
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				break
			}
			os.Remove(t.Dest)
			return fmt.Errorf("reading %s: %w", t.URL, rerr)
		}
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("writing %s: %w", t.Dest, err)
	}
	obs.Finish()
	return nil
}
