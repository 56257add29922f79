package session

import (
	"fmt"
	"os/exec"
	"sync"
	"syscall"
)

// Launcher starts and stops the external application bound to a session.
// Both operations are best-effort from the engine's perspective: errors are
// surfaced but never affect session bookkeeping.
type Launcher interface {
	Start(path string) error
	Stop() error
}

// OSLauncher runs the application as a detached OS process. The process
// gets its own group so Stop can take down children the app spawned.
type OSLauncher struct {
	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewOSLauncher creates a launcher with no running application.
func NewOSLauncher() *OSLauncher {
	return &OSLauncher{}
}

// Start launches the executable at path, killing any previously started
// application first.
func (l *OSLauncher) Start(path string) error {
	if path == "" {
		return fmt.Errorf("no launchable path")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.killLocked()

	cmd := exec.Command(path)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}
	l.cmd = cmd

	// Reap the process when it exits on its own so Stop doesn't signal a
	// zombie's pgid.
	go cmd.Wait()

	return nil
}

// Stop terminates the running application, if any.
func (l *OSLauncher) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.killLocked()
	return nil
}

// killLocked signals the process group of the tracked command. Callers
// hold l.mu.
func (l *OSLauncher) killLocked() {
	if l.cmd == nil || l.cmd.Process == nil {
		return
	}
	// Negative pid targets the whole group; failures mean the process is
	// already gone.
	syscall.Kill(-l.cmd.Process.Pid, syscall.SIGKILL)
	l.cmd = nil
}
