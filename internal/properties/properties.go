// Package properties edits server.properties files in place.
package properties

import (
	"fmt"
	"os"
	"strings"
)

// Set replaces the value of exactly one key in the newline-delimited
// key=value file at path, preserving every other line byte for byte.
func Set(path, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(line, key+"=") {
			lines[i] = key + "=" + value
			replaced = true
			break
		}
	}
	if !replaced {
		return fmt.Errorf("key %q not found in %s", key, path)
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
