package manage

import (
	"fmt"

	"github.com/gorcon/rcon"
)

// SendCommand executes one console command on a running server over RCON and
// returns the server's response.
func SendCommand(addr, password, command string) (string, error) {
	conn, err := rcon.Dial(addr, password)
	if err != nil {
		return "", fmt.Errorf("RCON connection to %s failed: %w", addr, err)
	}
	defer conn.Close()

	response, err := conn.Execute(command)
	if err != nil {
		return "", fmt.Errorf("RCON command failed: %w", err)
	}
	return response, nil
}
