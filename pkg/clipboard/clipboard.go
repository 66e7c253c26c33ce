// Package clipboard copies a single decrypted secret value to the
// system clipboard for the editor's "copy value" key, and optionally
// clears it again after a short delay so a secret doesn't linger
// there indefinitely.
package clipboard

import (
	"errors"
	"sync"
	"time"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when the platform has no clipboard
// backend (atotto/clipboard's usual failure mode under xclip/xsel on
// a headless Linux box).
var ErrUnavailable = errors.New("clipboard unavailable")

// DefaultClearAfter is how long CopySecret waits before overwriting
// the clipboard with an empty string, unless told otherwise.
const DefaultClearAfter = 20 * time.Second

// Manager copies secret values to the clipboard and tracks the
// pending auto-clear timer so a second copy cancels the first one's
// clear instead of racing it.
type Manager struct {
	mu        sync.Mutex
	clearTime *time.Timer
}

// NewManager returns a ready-to-use clipboard manager.
func NewManager() *Manager {
	return &Manager{}
}

// CopySecret writes value to the clipboard and schedules it to be
// overwritten with an empty string after clearAfter elapses. Passing
// a non-positive clearAfter disables the auto-clear.
func (m *Manager) CopySecret(value string, clearAfter time.Duration) error {
	if err := clipboard.WriteAll(value); err != nil {
		return ErrUnavailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.clearTime != nil {
		m.clearTime.Stop()
		m.clearTime = nil
	}
	if clearAfter <= 0 {
		return nil
	}

	m.clearTime = time.AfterFunc(clearAfter, func() {
		current, err := clipboard.ReadAll()
		if err != nil || current != value {
			return
		}
		_ = clipboard.WriteAll("")
	})
	return nil
}

// Available reports whether a clipboard backend is reachable on this
// platform.
func Available() bool {
	_, err := clipboard.ReadAll()
	return err == nil || err.Error() == "exit status 1"
}
