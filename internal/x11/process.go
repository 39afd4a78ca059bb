package x11

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ProcessPath resolves the executable path for a PID via /proc. Returns ""
// when the PID is unknown or the link cannot be read (e.g. a process owned
// by another user).
func ProcessPath(pid int) string {
	if pid <= 0 {
		return ""
	}
	path, err := os.Readlink(fmt.Sprintf("/proc/%d/exe", pid))
	if err != nil {
		return ""
	}
	return path
}

// ProcessAlive reports whether the PID maps to a live process. EPERM counts
// as alive: the process exists but belongs to another user.
func ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}
