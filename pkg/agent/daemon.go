package agent

import (
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cbwinslow/lazylocker/pkg/core"
)

// socketPollInterval is how often StartDaemon polls for the socket
// file to appear.
const socketPollInterval = 100 * time.Millisecond

// startTimeout is the maximum time StartDaemon waits for the agent's
// socket to appear before giving up.
const startTimeout = 5 * time.Second

// SocketPath returns the fixed agent socket path under dir.
func SocketPath(dir string) string {
	return filepath.Join(dir, "agent.sock")
}

// PIDPath returns the fixed agent PID file path under dir.
func PIDPath(dir string) string {
	return filepath.Join(dir, "agent.pid")
}

// StartDaemon spawns a detached lazylocker agent process seeded with
// key and bound to the store at dir, then polls for its socket to
// come up. binaryPath is the path to re-exec (normally the running
// executable via os.Executable()).
func StartDaemon(binaryPath, dir string, key []byte) error {
	socketPath := SocketPath(dir)
	pidPath := PIDPath(dir)

	_ = os.Remove(socketPath)

	cmd := exec.Command(binaryPath, "agent", "--key", hex.EncodeToString(key), "--store", dir)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("agent: spawn daemon: %w", err)
	}

	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(cmd.Process.Pid)), 0o600); err != nil {
		return fmt.Errorf("agent: write pid file: %w", err)
	}
	// The daemon process is detached and continues independently of
	// this one; releasing avoids leaking a zombie entry for it here.
	_ = cmd.Process.Release()

	deadline := time.Now().Add(startTimeout)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(socketPath); err == nil {
			return nil
		}
		time.Sleep(socketPollInterval)
	}
	return core.ErrAgentStartTimeout
}

// ReadPID reads the PID recorded by StartDaemon, if any.
func ReadPID(dir string) (int, error) {
	data, err := os.ReadFile(PIDPath(dir))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(string(data))
}

// stopWaitInterval is how often WaitForSocketGone polls while
// waiting for the socket file to disappear after a shutdown request.
const stopWaitInterval = 100 * time.Millisecond

// IsRunning reports whether an agent appears to be alive for dir,
// based on the recorded PID still answering to a zero-signal probe.
func IsRunning(dir string) bool {
	pid, err := ReadPID(dir)
	if err != nil {
		return false
	}
	return isProcessAlive(pid)
}

// WaitForSocketGone blocks until the socket file under dir is removed
// or timeout elapses, returning false on timeout.
func WaitForSocketGone(dir string, timeout time.Duration) bool {
	socketPath := SocketPath(dir)
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(socketPath); os.IsNotExist(err) {
			return true
		}
		time.Sleep(stopWaitInterval)
	}
	return false
}

// KillStale sends SIGTERM to the PID recorded under dir, for use when
// a client can no longer reach the agent over its socket (e.g. the
// socket file was deleted out from under a running process).
func KillStale(dir string) error {
	pid, err := ReadPID(dir)
	if err != nil {
		return err
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return sendTermSignal(proc)
}
