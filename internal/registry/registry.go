// Package registry persists the set of managed server installations in a
// single JSON file. One process owns the file; every mutation rewrites it
// whole. There is no locking against other writers and no partial-write
// recovery: a failed save leaves memory ahead of disk, which is a documented
// risk of the format, not something this package papers over.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Mimexe/EZServer/internal/mc"
)

// Typed failures of the config domain.
var (
	ErrServerExists   = errors.New("server already exists")
	ErrServerNotFound = errors.New("server not found")
	ErrSave           = errors.New("saving registry")
	ErrLoad           = errors.New("loading registry")
)

// ManagedServer is one installation known to the tool.
type ManagedServer struct {
	Name string        `json:"name"`
	Path string        `json:"path"`
	Java string        `json:"java"`
	Kind mc.ServerKind `json:"type"`
}

// Conflict is the result of a uniqueness check.
type Conflict int

const (
	OK Conflict = iota
	NameConflict
	PathConflict
)

func (c Conflict) String() string {
	switch c {
	case NameConflict:
		return "name conflict"
	case PathConflict:
		return "path conflict"
	}
	return "ok"
}

type registryFile struct {
	Servers []ManagedServer `json:"servers"`
}

// Registry is the in-memory view of the backing file. Construct one handle
// at process start and pass it by reference; there is no ambient global.
type Registry struct {
	path    string
	servers []ManagedServer
}

// Load reads the registry file at path. A missing file yields an empty
// registry; any other read or decode failure is an ErrLoad.
func Load(path string) (*Registry, error) {
	r := &Registry{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	var f registryFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	r.servers = f.Servers
	return r, nil
}

// Servers returns the records in file order.
func (r *Registry) Servers() []ManagedServer {
	out := make([]ManagedServer, len(r.servers))
	copy(out, r.servers)
	return out
}

// CheckUniqueness reports whether s collides with an existing record.
func (r *Registry) CheckUniqueness(s ManagedServer) Conflict {
	return r.checkUniquenessExcept(s, "")
}

func (r *Registry) checkUniquenessExcept(s ManagedServer, except string) Conflict {
	for _, existing := range r.servers {
		if existing.Name == except {
			continue
		}
		if existing.Name == s.Name {
			return NameConflict
		}
		if existing.Path == s.Path {
			return PathConflict
		}
	}
	return OK
}

// Add appends s and rewrites the file. A name or path collision fails with
// ErrServerExists and leaves both memory and disk untouched.
func (r *Registry) Add(s ManagedServer) error {
	if c := r.CheckUniqueness(s); c != OK {
		return fmt.Errorf("%q (%s): %w", s.Name, c, ErrServerExists)
	}
	r.servers = append(r.servers, s)
	return r.save()
}

// Remove deletes the named record and rewrites the file.
func (r *Registry) Remove(name string) error {
	for i, s := range r.servers {
		if s.Name == name {
			r.servers = append(r.servers[:i], r.servers[i+1:]...)
			return r.save()
		}
	}
	return fmt.Errorf("%q: %w", name, ErrServerNotFound)
}

// Edit replaces the record named oldName with s, re-checking uniqueness
// against every other record.
func (r *Registry) Edit(oldName string, s ManagedServer) error {
	idx := -1
	for i, existing := range r.servers {
		if existing.Name == oldName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%q: %w", oldName, ErrServerNotFound)
	}
	if c := r.checkUniquenessExcept(s, oldName); c != OK {
		return fmt.Errorf("%q (%s): %w", s.Name, c, ErrServerExists)
	}
	r.servers[idx] = s
	return r.save()
}

// GetByName returns the record with the given name.
func (r *Registry) GetByName(name string) (ManagedServer, error) {
	for _, s := range r.servers {
		if s.Name == name {
			return s, nil
		}
	}
	return ManagedServer{}, fmt.Errorf("%q: %w", name, ErrServerNotFound)
}

// GetByPath returns the record installed at the given path.
func (r *Registry) GetByPath(path string) (ManagedServer, error) {
	for _, s := range r.servers {
		if s.Path == path {
			return s, nil
		}
	}
	return ManagedServer{}, fmt.Errorf("%q: %w", path, ErrServerNotFound)
}

// save rewrites the whole backing file synchronously.
func (r *Registry) save() error {
	data, err := json.MarshalIndent(registryFile{Servers: r.servers}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSave, err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrSave, err)
	}
	return nil
}
