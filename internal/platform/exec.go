// Package platform locates the Java executable and carries the terminal
// outcome type shared by the build runner and the process supervisor.
package platform

import (
	"os/exec"
	"path/filepath"
	"runtime"
)

// JavaExecutable returns the java binary under javaHome, or the bare command
// name when javaHome is empty (PATH lookup). Java discovery itself is the
// caller's problem; this package only joins the path.
func JavaExecutable(javaHome string) string {
	if javaHome == "" {
		return "java"
	}
	name := "java"
	if runtime.GOOS == "windows" {
		name = "java.exe"
	}
	return filepath.Join(javaHome, "bin", name)
}

// CommandExists checks whether a command is available on the system PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
