// Package resolver maps a (server kind, version) pair to a concrete download
// target using kind-specific upstream adapters.
package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/Mimexe/EZServer/internal/download"
	"github.com/Mimexe/EZServer/internal/mc"
	"github.com/Mimexe/EZServer/internal/settings"
)

// Resolver answers download targets for every supported server kind.
type Resolver struct {
	client *http.Client
	cfg    *settings.Settings
	log    *log.Logger
}

// New builds a Resolver. client may be nil, in which case the default HTTP
// client is used.
func New(client *http.Client, cfg *settings.Settings, logger *log.Logger) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{client: client, cfg: cfg, log: logger}
}

// Resolve returns the artifact to fetch for the given kind and version spec.
// For Forge and Fabric the target is an installer jar that must be executed
// in destDir afterwards; for every other kind it is the server jar itself.
// Spigot resolves against the static mirror here; compile-from-source is a
// separate provisioning path and never goes through Resolve.
func (r *Resolver) Resolve(ctx context.Context, kind mc.ServerKind, version, destDir string) (download.Target, error) {
	r.log.Debug("resolving version", "kind", kind, "version", version)
	switch kind {
	case mc.Vanilla:
		return r.vanilla(ctx, version, destDir)
	case mc.Paper:
		return r.paper(ctx, version, destDir)
	case mc.Forge:
		return r.forge(ctx, version, destDir)
	case mc.Spigot:
		return r.spigot(version, destDir)
	case mc.Fabric:
		return r.fabric(ctx, destDir)
	}
	return download.Target{}, fmt.Errorf("%q: %w", kind, download.ErrUnsupportedKind)
}

// ServerJarPath returns the canonical server artifact location inside dir.
func ServerJarPath(dir string) string {
	return filepath.Join(dir, "server.jar")
}

func (r *Resolver) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
