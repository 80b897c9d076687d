package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Mimexe/EZServer/internal/download"
	"github.com/Mimexe/EZServer/internal/mc"
)

// promoFeed is the Forge promotions feed with its object key order intact.
// The newest Minecraft line is assumed to be the LAST key the upstream
// emitted, which only holds while the feed stays sorted ascending. See
// DESIGN.md.
type promoFeed struct {
	keys   []string
	promos map[string]string
}

// forge resolves a promo entry and builds the Maven installer URL from the
// combined "<mc>-<forge>" version string.
func (r *Resolver) forge(ctx context.Context, version, destDir string) (download.Target, error) {
	body, err := r.get(ctx, r.cfg.ForgePromosURL)
	if err != nil {
		return download.Target{}, fmt.Errorf("fetching Forge promotions: %w", err)
	}
	feed, err := parsePromotions(body)
	if err != nil {
		return download.Target{}, fmt.Errorf("parsing Forge promotions: %w", err)
	}

	mcVersion := version
	if version == mc.Latest {
		if len(feed.keys) == 0 {
			return download.Target{}, fmt.Errorf("forge promotions empty: %w", download.ErrVersionNotFound)
		}
		last := feed.keys[len(feed.keys)-1]
		mcVersion = strings.TrimSuffix(strings.TrimSuffix(last, "-latest"), "-recommended")
	}

	forgeVersion, ok := feed.promos[mcVersion+"-latest"]
	if !ok {
		return download.Target{}, fmt.Errorf("no forge promo for %s: %w", mcVersion, download.ErrVersionNotFound)
	}

	combined := mcVersion + "-" + forgeVersion
	url := fmt.Sprintf("%s/net/minecraftforge/forge/%s/forge-%s-installer.jar",
		r.cfg.ForgeMavenURL, combined, combined)

	return download.Target{
		URL:         url,
		Dest:        ForgeInstallerPath(destDir),
		DisplayName: "forge " + combined + " installer",
	}, nil
}

// ForgeInstallerPath returns where the Forge installer jar lands inside dir.
func ForgeInstallerPath(dir string) string {
	return filepath.Join(dir, "forge-installer.jar")
}

// parsePromotions walks the feed token by token so the "promos" object keys
// keep their upstream order. json.Unmarshal into a map would destroy it.
func parsePromotions(body []byte) (promoFeed, error) {
	feed := promoFeed{promos: map[string]string{}}
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return feed, err
	}
	if tok != json.Delim('{') {
		return feed, fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return feed, err
		}
		key, _ := keyTok.(string)
		if key != "promos" {
			if err := skipValue(dec); err != nil {
				return feed, err
			}
			continue
		}

		open, err := dec.Token()
		if err != nil {
			return feed, err
		}
		if open != json.Delim('{') {
			return feed, fmt.Errorf("promos: expected object, got %v", open)
		}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return feed, err
			}
			vt, err := dec.Token()
			if err != nil {
				return feed, err
			}
			k, _ := kt.(string)
			v, _ := vt.(string)
			feed.keys = append(feed.keys, k)
			feed.promos[k] = v
		}
		if _, err := dec.Token(); err != nil { // closing brace
			return feed, err
		}
	}
	return feed, nil
}

// skipValue consumes one JSON value of any shape.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch tok {
	case json.Delim('{'), json.Delim('['):
		for dec.More() {
			if err := skipValue(dec); err != nil {
				return err
			}
		}
		_, err := dec.Token()
		return err
	}
	return nil
}
