//go:build !unix

package fs

import "os"

// processAlive relies on FindProcess failing for pids that do not exist.
func processAlive(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	p.Release()
	return true
}
