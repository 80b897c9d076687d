package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/Mimexe/EZServer/internal/cli"
	"github.com/Mimexe/EZServer/internal/registry"
	"github.com/Mimexe/EZServer/internal/settings"
	"github.com/Mimexe/EZServer/internal/ui"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	var c cli.CLI
	parser := kong.Parse(&c,
		kong.Name("ezserver"),
		kong.Description("Provision and manage local Minecraft servers."),
		kong.Vars{"version": fmt.Sprintf("ezserver %s (%s)", version, commit)},
	)

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	output := ui.New()
	cfg, err := settings.Load()
	if err != nil {
		output.Error("loading settings: %v", err)
		os.Exit(1)
	}
	reg, err := registry.Load(cfg.RegistryPath)
	if err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}

	app := &cli.Context{
		Settings: cfg,
		Registry: reg,
		Client:   http.DefaultClient,
		UI:       output,
		Log:      logger,
	}
	if err := parser.Run(app); err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}
}
