package plugins

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSpiget(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/resources/9089", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name": "EssentialsX",
			"file": map[string]string{"type": ".jar"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, srv.URL)
	p, err := c.ResolveSpiget(context.Background(), 9089)
	require.NoError(t, err)
	assert.Equal(t, "EssentialsX", p.Name)
	assert.Equal(t, srv.URL+"/v2/resources/9089/download", p.URL)
}

func TestResolveGitHubMatchesAssetGlob(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/GeyserMC/Geyser/releases/latest", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"assets": []map[string]string{
				{"name": "Geyser-Fabric.jar", "browser_download_url": "https://example.com/fabric.jar"},
				{"name": "Geyser-Spigot.jar", "browser_download_url": "https://example.com/spigot.jar"},
			},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, srv.URL)
	p, err := c.ResolveGitHub(context.Background(), "GeyserMC", "Geyser", "*-Spigot.jar")
	require.NoError(t, err)
	assert.Equal(t, "Geyser-Spigot", p.Name)
	assert.Equal(t, "https://example.com/spigot.jar", p.URL)

	_, err = c.ResolveGitHub(context.Background(), "GeyserMC", "Geyser", "*-Velocity.jar")
	assert.Error(t, err)
}

func TestDownloadAllFansOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "bytes of %s", r.URL.Path)
	}))
	defer srv.Close()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "plugins"), 0o755))

	list := []Plugin{
		{Name: "One", URL: srv.URL + "/one"},
		{Name: "Two", URL: srv.URL + "/two"},
		{Name: "Three", URL: srv.URL + "/three"},
	}
	require.NoError(t, DownloadAll(context.Background(), srv.Client(), list, dir))

	for _, p := range list {
		assert.FileExists(t, filepath.Join(dir, "plugins", p.Name+".jar"))
	}
}
