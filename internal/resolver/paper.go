package resolver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Mimexe/EZServer/internal/download"
	"github.com/Mimexe/EZServer/internal/mc"
)

type paperProject struct {
	Versions []string `json:"versions"`
}

type paperVersion struct {
	Builds []int `json:"builds"`
}

// paper resolves against the PaperMC v2 API. The authoritative build is the
// LAST element of the build list, not the numeric maximum: the upstream
// orders the list itself and we trust that ordering.
func (r *Resolver) paper(ctx context.Context, version, destDir string) (download.Target, error) {
	if version == mc.Latest {
		body, err := r.get(ctx, r.cfg.PaperAPIURL+"/v2/projects/paper")
		if err != nil {
			return download.Target{}, fmt.Errorf("fetching Paper versions: %w", err)
		}
		var project paperProject
		if err := json.Unmarshal(body, &project); err != nil {
			return download.Target{}, fmt.Errorf("parsing Paper versions: %w", err)
		}
		if len(project.Versions) == 0 {
			return download.Target{}, fmt.Errorf("paper versions list empty: %w", download.ErrVersionNotFound)
		}
		version = project.Versions[len(project.Versions)-1]
	}

	body, err := r.get(ctx, fmt.Sprintf("%s/v2/projects/paper/versions/%s", r.cfg.PaperAPIURL, version))
	if err != nil {
		return download.Target{}, fmt.Errorf("fetching Paper builds for %s: %w", version, err)
	}
	var v paperVersion
	if err := json.Unmarshal(body, &v); err != nil {
		return download.Target{}, fmt.Errorf("parsing Paper builds: %w", err)
	}
	if len(v.Builds) == 0 {
		return download.Target{}, fmt.Errorf("paper %s: %w", version, download.ErrNoBuildsAvailable)
	}

	build := v.Builds[len(v.Builds)-1]
	url := fmt.Sprintf("%s/v2/projects/paper/versions/%s/builds/%d/downloads/paper-%s-%d.jar",
		r.cfg.PaperAPIURL, version, build, version, build)

	return download.Target{
		URL:         url,
		Dest:        ServerJarPath(destDir),
		DisplayName: fmt.Sprintf("paper %s build %d", version, build),
	}, nil
}
