package resolver

import (
	"fmt"
	"path/filepath"

	"github.com/Mimexe/EZServer/internal/download"
	"github.com/Mimexe/EZServer/internal/mc"
)

// spigot resolves against the static getbukkit mirror. The mirror has no
// "latest" alias, so the sentinel is rejected before any network call.
func (r *Resolver) spigot(version, destDir string) (download.Target, error) {
	if version == mc.Latest {
		return download.Target{}, fmt.Errorf("spigot mirror has no latest alias, pass an exact version: %w", download.ErrVersionNotFound)
	}
	return download.Target{
		URL:         fmt.Sprintf("%s/spigot-%s.jar", r.cfg.SpigotMirrorURL, version),
		Dest:        ServerJarPath(destDir),
		DisplayName: "spigot " + version,
	}, nil
}

// BuildToolsTarget returns the BuildTools jar fetch for the
// compile-from-source Spigot path. workDir is the throwaway build workspace.
func (r *Resolver) BuildToolsTarget(workDir string) download.Target {
	return download.Target{
		URL:         r.cfg.BuildToolsURL,
		Dest:        filepath.Join(workDir, "BuildTools.jar"),
		DisplayName: "BuildTools",
	}
}
