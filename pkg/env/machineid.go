package env

import (
	"github.com/denisbrodbeck/machineid"
)

// MachineID retrieves an ID identifying the machine, hashed with appID so
// the raw machine ID is never published. It falls back to "unknown".
func MachineID(appID string) string {
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		return "unknown"
	}
	return id
}
