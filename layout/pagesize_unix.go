//go:build unix

package layout

import "golang.org/x/sys/unix"

// systemPageSize returns the runtime page size on unix-like systems.
func systemPageSize() int {
	return unix.Getpagesize()
}
