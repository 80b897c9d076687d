package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mimexe/EZServer/internal/build"
	"github.com/Mimexe/EZServer/internal/manage"
	"github.com/Mimexe/EZServer/internal/mc"
	"github.com/Mimexe/EZServer/internal/platform"
	"github.com/Mimexe/EZServer/internal/plugins"
	"github.com/Mimexe/EZServer/internal/properties"
	"github.com/Mimexe/EZServer/internal/provision"
	"github.com/Mimexe/EZServer/internal/resolver"
	"github.com/Mimexe/EZServer/internal/supervise"
)

// CreateCmd provisions a new server.
type CreateCmd struct {
	Name          string `arg:"" help:"Server name (unique)"`
	Type          string `help:"Server type: vanilla, spigot, paper, forge, fabric" default:"vanilla"`
	MCVersion     string `name:"mc-version" help:"Minecraft version or 'latest'" default:"latest"`
	Dir           string `help:"Install directory (default: <root>/<name>)"`
	Java          string `help:"Java home to run the server with (default: PATH java)"`
	FromSource    bool   `name:"from-source" help:"Compile Spigot with BuildTools instead of the mirror binary"`
	SkipFirstBoot bool   `name:"skip-first-boot" help:"Skip the first-boot verification run"`
}

// Run provisions the server.
func (cmd *CreateCmd) Run(app *Context) error {
	kind, err := mc.ParseKind(cmd.Type)
	if err != nil {
		return err
	}
	dir := cmd.Dir
	if dir == "" {
		dir = app.serverDir(cmd.Name)
	}
	if cmd.Java == "" && !platform.CommandExists("java") {
		return fmt.Errorf("no java on PATH: pass --java with a Java installation")
	}

	p := &provision.Provisioner{
		Resolver:   resolver.New(app.Client, app.Settings, app.Log),
		Client:     app.Client,
		Builder:    build.NewRunner(app.Log),
		Supervisor: supervise.New(app.Log),
		Registry:   app.Registry,
		UI:         app.UI,
		Log:        app.Log,
	}
	return p.Provision(context.Background(), provision.Request{
		Name:             cmd.Name,
		Dir:              dir,
		Kind:             kind,
		Version:          cmd.MCVersion,
		JavaHome:         cmd.Java,
		SpigotFromSource: cmd.FromSource,
		SkipFirstBoot:    cmd.SkipFirstBoot,
	})
}

// ListCmd prints all managed servers.
type ListCmd struct{}

// Run lists the registry.
func (cmd *ListCmd) Run(app *Context) error {
	servers := app.Registry.Servers()
	if len(servers) == 0 {
		app.UI.Info("No servers registered")
		return nil
	}
	for _, s := range servers {
		fmt.Printf("%-20s %-8s %s\n", s.Name, s.Kind, s.Path)
	}
	return nil
}

// InfoCmd prints one managed server.
type InfoCmd struct {
	Name string `arg:"" help:"Server name"`
}

// Run shows the record.
func (cmd *InfoCmd) Run(app *Context) error {
	s, err := app.Registry.GetByName(cmd.Name)
	if err != nil {
		return err
	}
	fmt.Printf("Name: %s\nType: %s\nPath: %s\nJava: %s\n", s.Name, s.Kind, s.Path, javaOrDefault(s.Java))
	return nil
}

func javaOrDefault(java string) string {
	if java == "" {
		return "(PATH)"
	}
	return java
}

// EditCmd replaces one field of a managed server record.
type EditCmd struct {
	Name  string `arg:"" help:"Server name"`
	Field string `arg:"" help:"Field to change: name, path, java, type"`
	Value string `arg:"" help:"New value"`
}

// Run applies the single-field replace.
func (cmd *EditCmd) Run(app *Context) error {
	s, err := app.Registry.GetByName(cmd.Name)
	if err != nil {
		return err
	}
	switch cmd.Field {
	case "name":
		s.Name = cmd.Value
	case "path":
		s.Path = cmd.Value
	case "java":
		s.Java = cmd.Value
	case "type":
		kind, err := mc.ParseKind(cmd.Value)
		if err != nil {
			return err
		}
		s.Kind = kind
	default:
		return fmt.Errorf("unknown field %q: must be name, path, java, or type", cmd.Field)
	}
	if err := app.Registry.Edit(cmd.Name, s); err != nil {
		return err
	}
	app.UI.Success("Updated %s", cmd.Name)
	return nil
}

// DeleteCmd removes a server after two confirmations.
type DeleteCmd struct {
	Name string `arg:"" help:"Server name"`
}

// Run deletes the server.
func (cmd *DeleteCmd) Run(app *Context) error {
	err := manage.Delete(app.Registry, cmd.Name, terminalConfirmer{})
	if errors.Is(err, manage.ErrDeclined) {
		app.UI.Info("Nothing deleted")
		return nil
	}
	if err != nil {
		return err
	}
	app.UI.Success("Deleted %s", cmd.Name)
	return nil
}

// terminalConfirmer asks yes/no questions on the controlling terminal.
type terminalConfirmer struct{}

func (terminalConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// RunCmd runs a managed server in the foreground until it exits.
type RunCmd struct {
	Name string `arg:"" help:"Server name"`
}

// Run supervises the server process.
func (cmd *RunCmd) Run(app *Context) error {
	s, err := app.Registry.GetByName(cmd.Name)
	if err != nil {
		return err
	}

	events := make(chan supervise.Event, 64)
	go func() {
		for ev := range events {
			fmt.Println(ev.Line)
		}
	}()

	outcome := supervise.New(app.Log).Run(context.Background(), supervise.RunSpec{
		Dir:      s.Path,
		JavaHome: s.Java,
		Kind:     s.Kind,
		Events:   events,
	})
	if !outcome.Success() {
		app.UI.Error("Server %s: %s", s.Name, outcome.Reason())
		return fmt.Errorf("server %s: %s", s.Name, outcome.Reason())
	}
	app.UI.Success("Server %s stopped", s.Name)
	return nil
}

// ConsoleCmd sends one command over RCON.
type ConsoleCmd struct {
	Command  string `arg:"" help:"Console command to send"`
	Addr     string `help:"RCON address" default:"127.0.0.1:25575"`
	Password string `help:"RCON password" env:"EZSERVER_RCON_PASSWORD"`
}

// Run sends the command and prints the response.
func (cmd *ConsoleCmd) Run(app *Context) error {
	response, err := manage.SendCommand(cmd.Addr, cmd.Password, cmd.Command)
	if err != nil {
		return err
	}
	if response != "" {
		fmt.Println(response)
	}
	return nil
}

// PluginsCmd downloads plugins into a server's plugins directory.
type PluginsCmd struct {
	Name   string   `arg:"" help:"Server name"`
	Spiget []int    `help:"Spiget resource ids"`
	GitHub []string `name:"github" help:"GitHub repos as owner/repo[:asset-glob]"`
}

// Run resolves every requested plugin, then fetches them in parallel.
func (cmd *PluginsCmd) Run(app *Context) error {
	s, err := app.Registry.GetByName(cmd.Name)
	if err != nil {
		return err
	}
	ctx := context.Background()
	client := plugins.NewClient(app.Client, app.Settings.SpigetAPIURL, app.Settings.GitHubAPIURL)

	var list []plugins.Plugin
	for _, id := range cmd.Spiget {
		p, err := client.ResolveSpiget(ctx, id)
		if err != nil {
			return err
		}
		list = append(list, p)
	}
	for _, spec := range cmd.GitHub {
		repo, glob, _ := strings.Cut(spec, ":")
		owner, name, ok := strings.Cut(repo, "/")
		if !ok {
			return fmt.Errorf("invalid GitHub repo %q: expected owner/repo", spec)
		}
		p, err := client.ResolveGitHub(ctx, owner, name, glob)
		if err != nil {
			return err
		}
		list = append(list, p)
	}
	if len(list) == 0 {
		app.UI.Info("No plugins requested")
		return nil
	}

	if err := os.MkdirAll(filepath.Join(s.Path, "plugins"), 0o755); err != nil {
		return fmt.Errorf("creating plugins directory: %w", err)
	}
	if err := plugins.DownloadAll(ctx, app.Client, list, s.Path); err != nil {
		return err
	}
	app.UI.Success("Downloaded %d plugin(s)", len(list))
	return nil
}

// SetPropertyCmd rewrites one key in a server's server.properties.
type SetPropertyCmd struct {
	Name  string `arg:"" help:"Server name"`
	Key   string `arg:"" help:"Property key"`
	Value string `arg:"" help:"New value"`
}

// Run edits the property file.
func (cmd *SetPropertyCmd) Run(app *Context) error {
	s, err := app.Registry.GetByName(cmd.Name)
	if err != nil {
		return err
	}
	path := filepath.Join(s.Path, "server.properties")
	if err := properties.Set(path, cmd.Key, cmd.Value); err != nil {
		return err
	}
	app.UI.Success("Set %s=%s", cmd.Key, cmd.Value)
	return nil
}
