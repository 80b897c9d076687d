package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mimexe/EZServer/internal/download"
	"github.com/Mimexe/EZServer/internal/mc"
	"github.com/Mimexe/EZServer/internal/settings"
)

func newTestResolver(srv *httptest.Server) *Resolver {
	cfg := &settings.Settings{
		MojangManifestURL: srv.URL + "/manifest.json",
		PaperAPIURL:       srv.URL,
		ForgePromosURL:    srv.URL + "/promotions_slim.json",
		ForgeMavenURL:     "https://maven.example.com",
		SpigotMirrorURL:   "https://mirror.example.com/spigot",
		BuildToolsURL:     srv.URL + "/BuildTools.jar",
		FabricMetaURL:     srv.URL,
	}
	return New(srv.Client(), cfg, nil)
}

func TestResolveUnsupportedKind(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := newTestResolver(srv).Resolve(context.Background(), mc.ServerKind("bedrock"), "latest", t.TempDir())
	assert.ErrorIs(t, err, download.ErrUnsupportedKind)
}

func TestVanillaResolve(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"latest": map[string]string{"release": "1.21.4"},
			"versions": []map[string]string{
				{"id": "1.21.4", "type": "release", "url": serverURL(r) + "/meta/1.21.4.json"},
				{"id": "1.20.1", "type": "release", "url": serverURL(r) + "/meta/1.20.1.json"},
			},
		})
	})
	mux.HandleFunc("/meta/", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"downloads": map[string]any{
				"server": map[string]string{"url": "https://launcher.example.com/server.jar"},
			},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := newTestResolver(srv)
	dir := t.TempDir()

	target, err := r.Resolve(context.Background(), mc.Vanilla, "latest", dir)
	require.NoError(t, err)
	assert.Equal(t, "https://launcher.example.com/server.jar", target.URL)
	assert.Equal(t, ServerJarPath(dir), target.Dest)

	_, err = r.Resolve(context.Background(), mc.Vanilla, "1.8.9", dir)
	assert.ErrorIs(t, err, download.ErrVersionNotFound)
}

func serverURL(r *http.Request) string {
	return "http://" + r.Host
}

func TestVanillaMissingServerDownload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"versions": []map[string]string{
				{"id": "1.2.5", "url": serverURL(r) + "/meta/1.2.5.json"},
			},
		})
	})
	mux.HandleFunc("/meta/", func(w http.ResponseWriter, _ *http.Request) {
		// Ancient versions have no server artifact.
		_ = json.NewEncoder(w).Encode(map[string]any{"downloads": map[string]any{}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := newTestResolver(srv).Resolve(context.Background(), mc.Vanilla, "1.2.5", t.TempDir())
	assert.ErrorIs(t, err, download.ErrVersionNotFound)
}

func TestPaperPicksLastBuildNotMax(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/projects/paper", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"versions": []string{"1.20.4", "1.21.4"}})
	})
	mux.HandleFunc("/v2/projects/paper/versions/1.21.4", func(w http.ResponseWriter, _ *http.Request) {
		// Deliberately out of numeric order: 99 is the max but 15 is last.
		_ = json.NewEncoder(w).Encode(map[string]any{"builds": []int{10, 99, 11, 15}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	target, err := newTestResolver(srv).Resolve(context.Background(), mc.Paper, "latest", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t,
		fmt.Sprintf("%s/v2/projects/paper/versions/1.21.4/builds/15/downloads/paper-1.21.4-15.jar", srv.URL),
		target.URL)
}

func TestPaperNoBuilds(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/projects/paper/versions/1.21.4", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"builds": []int{}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := newTestResolver(srv).Resolve(context.Background(), mc.Paper, "1.21.4", t.TempDir())
	assert.ErrorIs(t, err, download.ErrNoBuildsAvailable)
}

func TestForgeLatestUsesLatestPromoNotRecommended(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/promotions_slim.json", func(w http.ResponseWriter, _ *http.Request) {
		// Raw string keeps key order under our control.
		_, _ = w.Write([]byte(`{
			"homepage": "https://files.minecraftforge.net/",
			"promos": {
				"1.19.2-recommended": "43.2.0",
				"1.19.2-latest": "43.3.5",
				"1.20.1-recommended": "47.2.0",
				"1.20.1-latest": "47.3.0"
			}
		}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	target, err := newTestResolver(srv).Resolve(context.Background(), mc.Forge, "latest", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t,
		"https://maven.example.com/net/minecraftforge/forge/1.20.1-47.3.0/forge-1.20.1-47.3.0-installer.jar",
		target.URL)
}

func TestForgeExactVersion(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/promotions_slim.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"promos": {"1.19.2-latest": "43.3.5", "1.20.1-latest": "47.3.0"}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := newTestResolver(srv)
	target, err := r.Resolve(context.Background(), mc.Forge, "1.19.2", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, target.URL, "forge-1.19.2-43.3.5-installer.jar")

	_, err = r.Resolve(context.Background(), mc.Forge, "1.7.10", t.TempDir())
	assert.ErrorIs(t, err, download.ErrVersionNotFound)
}

func TestSpigotRejectsLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("spigot latest must be rejected before any network call")
	}))
	defer srv.Close()

	_, err := newTestResolver(srv).Resolve(context.Background(), mc.Spigot, "latest", t.TempDir())
	assert.ErrorIs(t, err, download.ErrVersionNotFound)
}

func TestSpigotStaticMirrorURL(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dir := t.TempDir()
	target, err := newTestResolver(srv).Resolve(context.Background(), mc.Spigot, "1.20.1", dir)
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example.com/spigot/spigot-1.20.1.jar", target.URL)
	assert.Equal(t, ServerJarPath(dir), target.Dest)
}

func TestFabricResolvesNewestInstaller(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/versions/installer", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"url": "https://meta.example.com/installer-1.1.0.jar", "stable": true},
			{"url": "https://meta.example.com/installer-1.0.0.jar", "stable": true},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	target, err := newTestResolver(srv).Resolve(context.Background(), mc.Fabric, "latest", dir)
	require.NoError(t, err)
	assert.Equal(t, "https://meta.example.com/installer-1.1.0.jar", target.URL)
	assert.Equal(t, FabricInstallerPath(dir), target.Dest)
}

func TestParsePromotionsKeepsKeyOrder(t *testing.T) {
	feed, err := parsePromotions([]byte(`{"promos": {"b-latest": "2", "a-latest": "1", "c-latest": "3"}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"b-latest", "a-latest", "c-latest"}, feed.keys)
	assert.Equal(t, "3", feed.promos["c-latest"])
}
