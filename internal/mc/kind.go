// Package mc holds the small shared vocabulary of the tool: server kinds
// and the version sentinel understood by every resolver.
package mc

import "fmt"

// ServerKind identifies a server distribution family. Each kind has its own
// upstream resolution rules and launch command.
type ServerKind string

const (
	Vanilla ServerKind = "vanilla"
	Spigot  ServerKind = "spigot"
	Paper   ServerKind = "paper"
	Forge   ServerKind = "forge"
	Fabric  ServerKind = "fabric"
)

// Latest is the version sentinel resolved against each kind's upstream catalog.
const Latest = "latest"

// Kinds lists every supported server kind.
func Kinds() []ServerKind {
	return []ServerKind{Vanilla, Spigot, Paper, Forge, Fabric}
}

// Valid reports whether k names a supported server kind.
func (k ServerKind) Valid() bool {
	switch k {
	case Vanilla, Spigot, Paper, Forge, Fabric:
		return true
	}
	return false
}

// ParseKind converts a user-supplied string into a ServerKind.
func ParseKind(s string) (ServerKind, error) {
	k := ServerKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown server type %q: must be vanilla, spigot, paper, forge, or fabric", s)
	}
	return k, nil
}
