// Package pidfile keeps a single sweep daemon running per host
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// ErrAlreadyRunning is returned by Acquire while another live process holds the file
var ErrAlreadyRunning = errors.New("daemon is already running")

// PIDFile manages a process ID file for daemon single-instance enforcement
type PIDFile struct {
	path string
	pid  int
}

// New creates a PIDFile for the current process
func New(path string) *PIDFile {
	return &PIDFile{path: path, pid: os.Getpid()}
}

// Acquire creates the file exclusively. A file left behind by a dead
// process, or holding garbage, is replaced once.
func (p *PIDFile) Acquire() error {
	err := p.create()
	if err == nil || !errors.Is(err, os.ErrExist) {
		return err
	}

	owner, readErr := p.Owner()
	if readErr == nil && owner != p.pid && isProcessRunning(owner) {
		return fmt.Errorf("%w (PID %d)", ErrAlreadyRunning, owner)
	}
	if owner == p.pid {
		return nil
	}

	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale PID file: %w", err)
	}
	return p.create()
}

// Owner returns the PID recorded in the file
func (p *PIDFile) Owner() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID file %s: %w", p.path, err)
	}
	return pid, nil
}

// Release removes the file if this process still owns it
func (p *PIDFile) Release() error {
	owner, err := p.Owner()
	if os.IsNotExist(err) {
		return nil
	}
	if err == nil && owner != p.pid {
		return nil
	}
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

func (p *PIDFile) create() error {
	f, err := os.OpenFile(p.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create PID file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d\n", p.pid); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// isProcessRunning sends signal 0, which only checks that the process exists
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	// EPERM means the process exists under another user
	return errors.Is(err, syscall.EPERM)
}
