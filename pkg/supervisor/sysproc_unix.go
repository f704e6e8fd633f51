//go:build unix

package supervisor

import (
	"syscall"
)

// sysProcAttr puts the watcher in its own process group so terminal signals
// aimed at the lister do not reach it.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
