// Package plugins resolves and fetches server plugins from the Spiget and
// GitHub release catalogs.
package plugins

import (
	"context"
	"net/http"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/Mimexe/EZServer/internal/download"
)

// Plugin is a resolved plugin artifact ready to fetch.
type Plugin struct {
	Name string
	URL  string
}

// Client resolves plugins against catalog APIs.
type Client struct {
	http      *http.Client
	spigetAPI string
	githubAPI string
}

// NewClient builds a plugin catalog client. client may be nil.
func NewClient(client *http.Client, spigetAPI, githubAPI string) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{http: client, spigetAPI: spigetAPI, githubAPI: githubAPI}
}

// DownloadAll fetches every plugin into dir's plugins/ folder in parallel and
// joins on all of them. The fan-out is caller-controlled and uncapped;
// network and disk contention scale with the list.
func DownloadAll(ctx context.Context, client *http.Client, list []Plugin, dir string) error {
	pluginDir := filepath.Join(dir, "plugins")

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range list {
		g.Go(func() error {
			return download.Fetch(ctx, client, download.Target{
				URL:         p.URL,
				Dest:        filepath.Join(pluginDir, p.Name+".jar"),
				DisplayName: p.Name,
			}, nil)
		})
	}
	return g.Wait()
}
