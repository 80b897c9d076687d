// Package provision drives the full install flow: resolve, fetch, build if
// needed, first-boot verify, register.
package provision

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Mimexe/EZServer/internal/build"
	"github.com/Mimexe/EZServer/internal/download"
	"github.com/Mimexe/EZServer/internal/mc"
	"github.com/Mimexe/EZServer/internal/registry"
	"github.com/Mimexe/EZServer/internal/resolver"
	"github.com/Mimexe/EZServer/internal/supervise"
	"github.com/Mimexe/EZServer/internal/ui"
)

// Request describes one server to provision.
type Request struct {
	Name    string
	Dir     string
	Kind    mc.ServerKind
	Version string
	// JavaHome is a validated Java installation supplied by the caller.
	JavaHome string
	// SpigotFromSource compiles Spigot with BuildTools instead of fetching
	// the static mirror binary.
	SpigotFromSource bool
	// SkipFirstBoot provisions without the verification run.
	SkipFirstBoot bool
}

// Provisioner wires the resolver, downloader, build runner, supervisor and
// registry into the install flow.
type Provisioner struct {
	Resolver   *resolver.Resolver
	Client     *http.Client
	Builder    *build.Runner
	Supervisor *supervise.Supervisor
	Registry   *registry.Registry
	UI         *ui.UI
	Log        *log.Logger
}

// Provision installs a new server and registers it. First-boot failure is a
// terminal error for the provisioning operation, but the failure itself is
// read from the supervisor's outcome, never from a panic or a stray error:
// the boot pass swallows process failure into state by design.
func (p *Provisioner) Provision(ctx context.Context, req Request) error {
	srv := registry.ManagedServer{
		Name: req.Name,
		Path: req.Dir,
		Java: req.JavaHome,
		Kind: req.Kind,
	}
	if c := p.Registry.CheckUniqueness(srv); c != registry.OK {
		return fmt.Errorf("%q (%s): %w", req.Name, c, registry.ErrServerExists)
	}

	if err := os.MkdirAll(req.Dir, 0o755); err != nil {
		return fmt.Errorf("creating server directory: %w", err)
	}

	if err := p.installArtifact(ctx, req); err != nil {
		return err
	}

	if !req.SkipFirstBoot {
		p.UI.Step("First boot verification")
		outcome := p.Supervisor.Run(ctx, supervise.RunSpec{
			Dir:       req.Dir,
			JavaHome:  req.JavaHome,
			Kind:      req.Kind,
			FirstBoot: true,
		})
		if !outcome.Success() {
			p.UI.Error("First boot failed: %s", outcome.Reason())
			return fmt.Errorf("first boot verification failed: %s", outcome.Reason())
		}
		p.UI.Success("Server started and stopped cleanly")
	}

	if err := p.Registry.Add(srv); err != nil {
		return err
	}
	p.UI.Success("Server %q registered", req.Name)
	return nil
}

// installArtifact places a runnable server.jar (or Forge launch script) in
// req.Dir.
func (p *Provisioner) installArtifact(ctx context.Context, req Request) error {
	if req.Kind == mc.Spigot && req.SpigotFromSource {
		return p.buildSpigot(ctx, req)
	}

	target, err := p.Resolver.Resolve(ctx, req.Kind, req.Version, req.Dir)
	if err != nil {
		return err
	}
	p.UI.Info("Downloading %s", target.DisplayName)
	if err := download.Fetch(ctx, p.Client, target, ui.NewProgress()); err != nil {
		return err
	}

	switch req.Kind {
	case mc.Forge:
		return p.runForgeInstaller(ctx, req, target.Dest)
	case mc.Fabric:
		return p.runFabricInstaller(ctx, req, target.Dest)
	}
	return nil
}

func (p *Provisioner) runForgeInstaller(ctx context.Context, req Request, installer string) error {
	p.UI.Info("Running Forge installer")
	outcome := p.Builder.Run(ctx, installer, req.Dir, req.JavaHome, []string{"--installServer"}, p.installerObserver())
	if !outcome.Success() {
		return fmt.Errorf("forge installer: %s", outcome.Reason())
	}
	if err := os.Remove(installer); err != nil {
		p.Log.Warn("could not remove installer", "path", installer, "err", err)
	}
	return nil
}

func (p *Provisioner) runFabricInstaller(ctx context.Context, req Request, installer string) error {
	p.UI.Info("Running Fabric installer")
	args := []string{"server", "-downloadMinecraft"}
	if req.Version != mc.Latest {
		args = append(args, "-mcversion", req.Version)
	}
	outcome := p.Builder.Run(ctx, installer, req.Dir, req.JavaHome, args, p.installerObserver())
	if !outcome.Success() {
		return fmt.Errorf("fabric installer: %s", outcome.Reason())
	}

	launch := filepath.Join(req.Dir, "fabric-server-launch.jar")
	if err := os.Rename(launch, resolver.ServerJarPath(req.Dir)); err != nil {
		return fmt.Errorf("renaming fabric launcher: %w", err)
	}
	if err := os.Remove(installer); err != nil {
		p.Log.Warn("could not remove installer", "path", installer, "err", err)
	}
	return nil
}

// buildSpigot compiles Spigot with BuildTools in a throwaway workspace, then
// moves the produced jar to the canonical server.jar and removes the
// workspace.
func (p *Provisioner) buildSpigot(ctx context.Context, req Request) error {
	workDir := filepath.Join(req.Dir, "buildtools")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return fmt.Errorf("creating build workspace: %w", err)
	}

	target := p.Resolver.BuildToolsTarget(workDir)
	p.UI.Info("Downloading %s", target.DisplayName)
	if err := download.Fetch(ctx, p.Client, target, ui.NewProgress()); err != nil {
		return err
	}

	p.UI.Info("Compiling Spigot %s (this takes a while)", req.Version)
	outcome := p.Builder.Run(ctx, target.Dest, workDir, req.JavaHome, []string{"--rev", req.Version}, p.installerObserver())
	if !outcome.Success() {
		return fmt.Errorf("BuildTools: %s", outcome.Reason())
	}

	jar, err := findSpigotJar(workDir)
	if err != nil {
		return err
	}
	if err := os.Rename(jar, resolver.ServerJarPath(req.Dir)); err != nil {
		return fmt.Errorf("moving built jar: %w", err)
	}
	if err := os.RemoveAll(workDir); err != nil {
		p.Log.Warn("could not remove build workspace", "path", workDir, "err", err)
	}
	return nil
}

// findSpigotJar locates the BuildTools output by filename prefix/suffix.
func findSpigotJar(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading build output: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasPrefix(name, "spigot-") && strings.HasSuffix(name, ".jar") {
			return filepath.Join(dir, name), nil
		}
	}
	return "", fmt.Errorf("no spigot-*.jar in build output %s", dir)
}

func (p *Provisioner) installerObserver() build.LineObserver {
	return func(line string) {
		p.Log.Debug("build output", "line", line)
	}
}
