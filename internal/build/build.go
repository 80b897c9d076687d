// Package build supervises source-build subprocesses such as Spigot's
// BuildTools and the Forge/Fabric installers.
package build

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os/exec"

	"github.com/charmbracelet/log"

	"github.com/Mimexe/EZServer/internal/platform"
)

// LineObserver receives each line of the build's combined stdout/stderr.
type LineObserver func(line string)

// Runner spawns java -jar builds and waits for them to finish. There is no
// retry: a non-zero exit is the caller's problem.
type Runner struct {
	log *log.Logger
}

// NewRunner builds a Runner.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{log: logger}
}

// Run executes `<javaHome>/bin/java -jar jar args...` in workDir, streaming
// combined output to observe, and resolves to the process's terminal
// Outcome. Spawn errors resolve to a Failed outcome rather than returning.
func (r *Runner) Run(ctx context.Context, jar, workDir, javaHome string, args []string, observe LineObserver) platform.Outcome {
	java := platform.JavaExecutable(javaHome)
	cmdArgs := append([]string{"-jar", jar}, args...)

	cmd := exec.CommandContext(ctx, java, cmdArgs...)
	cmd.Dir = workDir

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	r.log.Debug("build", "java", java, "jar", jar, "args", args, "dir", workDir)
	if err := cmd.Start(); err != nil {
		pw.Close()
		return platform.Failed(err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			if observe != nil {
				observe(scanner.Text())
			}
		}
	}()

	err := cmd.Wait()
	pw.Close()
	<-done

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return platform.Completed(exitErr.ExitCode())
		}
		return platform.Failed(err)
	}
	return platform.Completed(0)
}
