// Package coordinator sequences the interactive editor, the agent
// daemon, and non-interactive readers/writers so that no two
// processes hold the locker open for write at once, and so that
// wrong-passphrase and expired-session paths surface to the user
// rather than silently falling through.
package coordinator

import (
	"time"

	"github.com/cbwinslow/lazylocker/pkg/agent"
	"github.com/cbwinslow/lazylocker/pkg/locker"
	"github.com/cbwinslow/lazylocker/pkg/store"
)

// socketTeardownTimeout bounds how long EnterEditor waits for a
// running agent's socket to disappear after asking it to shut down.
const socketTeardownTimeout = 5 * time.Second

// EditorSession holds everything the interactive editor needs once
// the locker has been opened exclusively for writing.
type EditorSession struct {
	Dir   string
	Key   []byte
	Store *store.SecretsStore
}

// EnterEditor implements spec.md §4.5 rule 1: if an agent answers a
// ping, ask it to shut down and wait for its socket to go away before
// opening the locker for exclusive write access. Liveness is decided
// solely by the ping round trip — the PID file is not consulted,
// since it can go stale (or be absent for an agent started some way
// other than StartDaemon) while the socket is still live.
func EnterEditor(dir, passphrase string) (*EditorSession, error) {
	client := agent.NewClient(dir)
	if _, err := client.Ping(); err == nil {
		_ = client.Shutdown()
		if !agent.WaitForSocketGone(dir, socketTeardownTimeout) {
			_ = agent.KillStale(dir)
		}
	}

	key, err := locker.Open(dir, passphrase)
	if err != nil {
		return nil, err
	}
	st, err := store.Load(dir, key)
	if err != nil {
		return nil, err
	}
	return &EditorSession{Dir: dir, Key: key, Store: st}, nil
}

// LeaveEditor implements spec.md §4.5 rule 2: once the editor is
// done, start a fresh agent daemon seeded with the session's key if
// the store ended up non-empty. Failure to start the agent is
// reported to the caller but is never treated as fatal by this
// function — the caller decides whether to surface it as a warning.
func LeaveEditor(session *EditorSession, binary string) error {
	if session.Store.Len() == 0 {
		return nil
	}
	return agent.StartDaemon(binary, session.Dir, session.Key)
}

// RunWithAgent implements spec.md §4.5 rule 3: prefer a running
// agent to source secrets for `run <cmd>`; fall back to opening the
// locker directly when no agent answers. resolvePassphrase is only
// invoked in the fallback path, so a live agent session never prompts.
func RunWithAgent(dir string, resolvePassphrase func() (string, error)) (map[string]string, error) {
	client := agent.NewClient(dir)
	if _, err := client.Ping(); err == nil {
		secrets, err := client.GetSecrets()
		if err == nil {
			return secrets, nil
		}
	}

	passphrase, err := resolvePassphrase()
	if err != nil {
		return nil, err
	}

	key, err := locker.Open(dir, passphrase)
	if err != nil {
		return nil, err
	}
	st, err := store.Load(dir, key)
	if err != nil {
		return nil, err
	}
	return st.DecryptAll(key)
}
