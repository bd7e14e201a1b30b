//go:build unix

package scan

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/mitchellh/go-ps"
)

// KillOrphanPlugins finds scanner plugin processes whose host died
// without killing them and terminates them. Orphans are recognised by
// the executable name prefix plus reparenting to PID 1. Returns the
// number of processes signalled.
func KillOrphanPlugins() (int, error) {
	processes, err := ps.Processes()
	if err != nil {
		return 0, fmt.Errorf("failed to get process list: %w", err)
	}

	killed := 0
	for _, p := range processes {
		if !strings.HasPrefix(p.Executable(), ExternalPluginPrefix) {
			continue
		}
		if p.PPid() != 1 {
			continue
		}
		if err := syscall.Kill(p.Pid(), syscall.SIGKILL); err != nil {
			continue
		}
		killed++
	}

	return killed, nil
}
