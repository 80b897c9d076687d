// Package settings loads tool-wide configuration from the environment.
// Upstream base URLs live here so tests can point resolvers at local fixtures.
package settings

import (
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Settings holds tool configuration. Every field can be overridden through an
// EZSERVER_-prefixed environment variable.
type Settings struct {
	InstallRoot  string `envconfig:"ROOT"`
	RegistryPath string `envconfig:"CONFIG"`

	MojangManifestURL string `envconfig:"MOJANG_MANIFEST_URL" default:"https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"`
	PaperAPIURL       string `envconfig:"PAPER_API_URL" default:"https://api.papermc.io"`
	ForgePromosURL    string `envconfig:"FORGE_PROMOS_URL" default:"https://files.minecraftforge.net/net/minecraftforge/forge/promotions_slim.json"`
	ForgeMavenURL     string `envconfig:"FORGE_MAVEN_URL" default:"https://maven.minecraftforge.net"`
	SpigotMirrorURL   string `envconfig:"SPIGOT_MIRROR_URL" default:"https://download.getbukkit.org/spigot"`
	BuildToolsURL     string `envconfig:"BUILDTOOLS_URL" default:"https://hub.spigotmc.org/jenkins/job/BuildTools/lastSuccessfulBuild/artifact/target/BuildTools.jar"`
	FabricMetaURL     string `envconfig:"FABRIC_META_URL" default:"https://meta.fabricmc.net"`
	SpigetAPIURL      string `envconfig:"SPIGET_API_URL" default:"https://api.spiget.org"`
	GitHubAPIURL      string `envconfig:"GITHUB_API_URL" default:"https://api.github.com"`
}

// Load reads settings from the environment and fills in home-relative defaults.
func Load() (*Settings, error) {
	var s Settings
	if err := envconfig.Process("ezserver", &s); err != nil {
		return nil, err
	}
	if s.InstallRoot == "" || s.RegistryPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		if s.InstallRoot == "" {
			s.InstallRoot = filepath.Join(home, "ezserver")
		}
		if s.RegistryPath == "" {
			s.RegistryPath = filepath.Join(home, ".ezserver.json")
		}
	}
	return &s, nil
}
