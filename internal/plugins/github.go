package plugins

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
)

type githubRelease struct {
	Assets []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// ResolveGitHub resolves a plugin from a repo's latest release. assetGlob is
// matched (path.Match) against asset names; the first match wins. An empty
// glob takes the first asset.
func (c *Client) ResolveGitHub(ctx context.Context, owner, repo, assetGlob string) (Plugin, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.githubAPI, owner, repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return Plugin{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Plugin{}, fmt.Errorf("fetching GitHub release for %s/%s: %w", owner, repo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Plugin{}, fmt.Errorf("HTTP %d from GitHub for %s/%s", resp.StatusCode, owner, repo)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Plugin{}, err
	}
	var release githubRelease
	if err := json.Unmarshal(body, &release); err != nil {
		return Plugin{}, fmt.Errorf("parsing GitHub release: %w", err)
	}
	if len(release.Assets) == 0 {
		return Plugin{}, fmt.Errorf("no assets found for %s/%s latest release", owner, repo)
	}

	for _, asset := range release.Assets {
		if assetGlob == "" {
			return Plugin{Name: repo, URL: asset.BrowserDownloadURL}, nil
		}
		if ok, _ := path.Match(assetGlob, asset.Name); ok {
			return Plugin{Name: strings.TrimSuffix(asset.Name, ".jar"), URL: asset.BrowserDownloadURL}, nil
		}
	}
	return Plugin{}, fmt.Errorf("no asset matching %q in %s/%s latest release", assetGlob, owner, repo)
}
