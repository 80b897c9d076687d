// Package cli defines the kong command tree.
package cli

import (
	"net/http"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/Mimexe/EZServer/internal/registry"
	"github.com/Mimexe/EZServer/internal/settings"
	"github.com/Mimexe/EZServer/internal/ui"
)

// Globals holds flags shared by all subcommands.
type Globals struct {
	Debug   bool             `help:"Enable debug logging" short:"d"`
	Version kong.VersionFlag `help:"Print version" short:"v" hidden:""`
}

// CLI is the top-level command tree parsed by Kong.
type CLI struct {
	Globals

	Create      CreateCmd      `cmd:"" help:"Provision a new server"`
	List        ListCmd        `cmd:"" help:"List managed servers"`
	Info        InfoCmd        `cmd:"" help:"Show one managed server"`
	Edit        EditCmd        `cmd:"" help:"Change one field of a managed server"`
	Delete      DeleteCmd      `cmd:"" help:"Delete a managed server and its directory"`
	Run         RunCmd         `cmd:"" help:"Run a managed server in the foreground"`
	Console     ConsoleCmd     `cmd:"" help:"Send a command to a running server over RCON"`
	Plugins     PluginsCmd     `cmd:"" help:"Download plugins into a server"`
	SetProperty SetPropertyCmd `cmd:"set-property" help:"Change one key in server.properties"`
}

// Context carries the shared handles every command needs. It is built once in
// main and bound into kong; nothing here is a package-level global.
type Context struct {
	Settings *settings.Settings
	Registry *registry.Registry
	Client   *http.Client
	UI       *ui.UI
	Log      *log.Logger
}

// serverDir resolves the install directory for a new server name.
func (c *Context) serverDir(name string) string {
	return filepath.Join(c.Settings.InstallRoot, name)
}
