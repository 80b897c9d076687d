// Package manage holds operations on already-provisioned servers: removal
// and the RCON console.
package manage

import (
	"errors"
	"fmt"
	"os"

	"github.com/Mimexe/EZServer/internal/registry"
)

// ErrDeclined is returned when the user declines either deletion prompt.
var ErrDeclined = errors.New("deletion declined")

// Confirmer answers yes/no prompts. The CLI supplies a terminal
// implementation; tests supply canned answers.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Delete removes a managed server: the on-disk directory and its registry
// record. Nothing is touched until BOTH confirmations pass — one for the
// delete intent, one naming the exact path about to be removed.
func Delete(reg *registry.Registry, name string, confirm Confirmer) error {
	srv, err := reg.GetByName(name)
	if err != nil {
		return err
	}

	ok, err := confirm.Confirm(fmt.Sprintf("Delete server %q?", srv.Name))
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclined
	}

	ok, err = confirm.Confirm(fmt.Sprintf("This removes %s from disk. Continue?", srv.Path))
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclined
	}

	if err := os.RemoveAll(srv.Path); err != nil {
		return fmt.Errorf("removing %s: %w", srv.Path, err)
	}
	return reg.Remove(srv.Name)
}
