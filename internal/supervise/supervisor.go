// Package supervise runs a server process, classifies its log lines into
// lifecycle events and reacts to them until the process exits.
package supervise

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Mimexe/EZServer/internal/mc"
	"github.com/Mimexe/EZServer/internal/platform"
)

// stopDelay is how long after the ready signal the first-boot "stop" command
// is written. Gives the server a moment to settle before the self-test
// shutdown.
const stopDelay = 5 * time.Second

// RunSpec describes one supervised run.
type RunSpec struct {
	// Dir is the server directory.
	Dir string
	// JavaHome locates the java binary; empty means PATH lookup.
	JavaHome string
	// Kind selects the launch command. Forge servers run their generated
	// launch script and get the supervising process's stdin forwarded.
	Kind mc.ServerKind
	// FirstBoot arms the automatic stop write after the ready signal.
	FirstBoot bool
	// Command overrides the kind-derived launch command. Tests use this.
	Command []string
	// Events, when non-nil, receives every classified line in order. The
	// channel is closed when the process exits; it is a finite stream and
	// cannot be restarted.
	Events chan<- Event
	// Stdin is forwarded to Forge children. Defaults to os.Stdin.
	Stdin io.Reader
}

// Supervisor drives first-boot verification runs and plain runs.
type Supervisor struct {
	log       *log.Logger
	stopDelay time.Duration
}

// New builds a Supervisor.
func New(logger *log.Logger) *Supervisor {
	if logger == nil {
		logger = log.Default()
	}
	return &Supervisor{log: logger, stopDelay: stopDelay}
}

// launchCommand derives the kind-specific launch command.
func launchCommand(spec RunSpec) []string {
	if len(spec.Command) > 0 {
		return spec.Command
	}
	if spec.Kind == mc.Forge {
		if runtime.GOOS == "windows" {
			return []string{"cmd", "/C", "run.bat"}
		}
		return []string{"sh", "run.sh"}
	}
	return []string{platform.JavaExecutable(spec.JavaHome), "-jar", "server.jar", "nogui"}
}

// Run spawns the server and supervises it until it exits. Every failure,
// including a failed spawn, resolves to an Outcome; Run never panics or
// returns an error value. The child is awaited to completion: there is no
// timeout, and a hung child blocks the caller.
func (s *Supervisor) Run(ctx context.Context, spec RunSpec) platform.Outcome {
	defer func() {
		if spec.Events != nil {
			close(spec.Events)
		}
	}()

	argv := launchCommand(spec)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = spec.Dir

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return platform.Failed(err)
	}
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	s.log.Debug("spawning server", "cmd", argv, "dir", spec.Dir, "firstBoot", spec.FirstBoot)
	if err := cmd.Start(); err != nil {
		pw.Close()
		s.log.Error("server spawn failed", "err", err)
		return platform.Failed(err)
	}

	if spec.Kind == mc.Forge {
		// Forge's launch script may itself prompt; hand it our own input
		// alongside the injected writes.
		in := spec.Stdin
		if in == nil {
			in = os.Stdin
		}
		go func() { _, _ = io.Copy(stdin, in) }()
	}

	var stopTimer *time.Timer
	re := reactor{firstBoot: spec.FirstBoot}

	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			class := Classify(line)
			if spec.Events != nil {
				spec.Events <- Event{Line: line, Class: class}
			}
			switch re.react(class) {
			case reactScheduleStop:
				s.log.Info("server ready, scheduling stop", "delay", s.stopDelay)
				stopTimer = time.AfterFunc(s.stopDelay, func() {
					_, _ = io.WriteString(stdin, "stop\n")
				})
			case reactKeystroke:
				s.log.Debug("stall line, injecting keystroke", "line", line)
				_, _ = io.WriteString(stdin, "\n")
			}
		}
	}()

	err = cmd.Wait()
	pw.Close()
	<-done
	if stopTimer != nil {
		stopTimer.Stop()
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			s.log.Warn("server exited", "code", exitErr.ExitCode())
			return platform.Completed(exitErr.ExitCode())
		}
		return platform.Failed(err)
	}
	s.log.Info("server exited cleanly")
	return platform.Completed(0)
}
