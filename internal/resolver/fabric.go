package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/Mimexe/EZServer/internal/download"
)

type fabricInstaller struct {
	URL    string `json:"url"`
	Stable bool   `json:"stable"`
}

// fabric resolves the newest installer jar. The Minecraft version is not
// baked into the URL; it is passed to the installer when it runs.
func (r *Resolver) fabric(ctx context.Context, destDir string) (download.Target, error) {
	body, err := r.get(ctx, r.cfg.FabricMetaURL+"/v2/versions/installer")
	if err != nil {
		return download.Target{}, fmt.Errorf("fetching Fabric installers: %w", err)
	}

	var installers []fabricInstaller
	if err := json.Unmarshal(body, &installers); err != nil {
		return download.Target{}, fmt.Errorf("parsing Fabric installers: %w", err)
	}
	if len(installers) == 0 {
		return download.Target{}, fmt.Errorf("fabric installer list empty: %w", download.ErrNoBuildsAvailable)
	}

	return download.Target{
		URL:         installers[0].URL,
		Dest:        FabricInstallerPath(destDir),
		DisplayName: "fabric installer",
	}, nil
}

// FabricInstallerPath returns where the Fabric installer jar lands inside dir.
func FabricInstallerPath(dir string) string {
	return filepath.Join(dir, "fabric-installer.jar")
}
