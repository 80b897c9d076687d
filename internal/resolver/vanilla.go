package resolver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Mimexe/EZServer/internal/download"
	"github.com/Mimexe/EZServer/internal/mc"
)

type versionManifest struct {
	Latest struct {
		Release string `json:"release"`
	} `json:"latest"`
	Versions []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		URL  string `json:"url"`
	} `json:"versions"`
}

type versionMeta struct {
	Downloads struct {
		Server struct {
			URL string `json:"url"`
		} `json:"server"`
	} `json:"downloads"`
	JavaVersion struct {
		MajorVersion int `json:"majorVersion"`
	} `json:"javaVersion"`
}

// vanilla resolves against Mojang's version manifest: pick the version entry,
// then pull the server URL from its per-version metadata.
func (r *Resolver) vanilla(ctx context.Context, version, destDir string) (download.Target, error) {
	body, err := r.get(ctx, r.cfg.MojangManifestURL)
	if err != nil {
		return download.Target{}, fmt.Errorf("fetching version manifest: %w", err)
	}

	var manifest versionManifest
	if err := json.Unmarshal(body, &manifest); err != nil {
		return download.Target{}, fmt.Errorf("parsing version manifest: %w", err)
	}

	if version == mc.Latest {
		version = manifest.Latest.Release
	}

	var metaURL string
	for _, v := range manifest.Versions {
		if v.ID == version {
			metaURL = v.URL
			break
		}
	}
	if metaURL == "" {
		return download.Target{}, fmt.Errorf("minecraft version %q: %w", version, download.ErrVersionNotFound)
	}

	metaBody, err := r.get(ctx, metaURL)
	if err != nil {
		return download.Target{}, fmt.Errorf("fetching version metadata: %w", err)
	}

	var meta versionMeta
	if err := json.Unmarshal(metaBody, &meta); err != nil {
		return download.Target{}, fmt.Errorf("parsing version metadata: %w", err)
	}
	if meta.Downloads.Server.URL == "" {
		return download.Target{}, fmt.Errorf("no server download for version %s: %w", version, download.ErrVersionNotFound)
	}

	return download.Target{
		URL:         meta.Downloads.Server.URL,
		Dest:        ServerJarPath(destDir),
		DisplayName: "vanilla " + version,
	}, nil
}
