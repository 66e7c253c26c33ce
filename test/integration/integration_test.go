// Package integration exercises lazylocker's packages together,
// covering the end-to-end scenarios a unit test within a single
// package can't reach: full round-trips through the locker and
// store, the agent's client/server pair over a real socket, and the
// coordinator's editor/agent handoff.
package integration_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cbwinslow/lazylocker/pkg/agent"
	"github.com/cbwinslow/lazylocker/pkg/coordinator"
	"github.com/cbwinslow/lazylocker/pkg/core"
	"github.com/cbwinslow/lazylocker/pkg/crypto"
	"github.com/cbwinslow/lazylocker/pkg/locker"
	"github.com/cbwinslow/lazylocker/pkg/logging"
	"github.com/cbwinslow/lazylocker/pkg/store"
)

// S1 — round-trip: init, add a secret, close, reopen, get it back.
func TestRoundTripInitAddReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key, err := locker.Init(dir, "correct horse", false)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	st, err := store.Load(dir, key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := st.Add("API_KEY", "sk-12345", 0, key); err != nil {
		t.Fatalf("Add: %v", err)
	}
	crypto.Zero(key)

	reopenedKey, err := locker.Open(dir, "correct horse")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer crypto.Zero(reopenedKey)

	reopenedStore, err := store.Load(dir, reopenedKey)
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	value, err := reopenedStore.DecryptOne("API_KEY", reopenedKey)
	if err != nil {
		t.Fatalf("DecryptOne: %v", err)
	}
	if value != "sk-12345" {
		t.Errorf("got %q, want sk-12345", value)
	}
}

// S2 — wrong passphrase is rejected without touching the store.
func TestWrongPassphraseRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key, err := locker.Init(dir, "right-pass", false)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	crypto.Zero(key)

	if _, err := locker.Open(dir, "wrong-pass"); err == nil {
		t.Fatal("expected an error opening with the wrong passphrase")
	} else if !errors.Is(err, core.ErrInvalidPassphrase) {
		t.Errorf("expected ErrInvalidPassphrase, got %v", err)
	}
}

// S4 — a secret added with a 1-day expiry is not expired now and is
// reported as expired one second past its expiry.
func TestExpiredSecretIsFlagged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key, err := locker.Init(dir, "pw", false)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer crypto.Zero(key)

	st, err := store.Load(dir, key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := st.Add("TEMP", "value", 1, key); err != nil {
		t.Fatalf("Add: %v", err)
	}

	secret, ok := st.Get("TEMP")
	if !ok {
		t.Fatal("expected TEMP to be present")
	}
	if secret.ExpiresAt == nil {
		t.Fatal("expected TEMP to carry an expiry")
	}
	if secret.IsExpired(time.Now()) {
		t.Error("expected a secret with a 1 day expiry to not be expired yet")
	}
	if !secret.IsExpired(time.Unix(*secret.ExpiresAt+1, 0)) {
		t.Error("expected the secret to be expired one second past its expiry")
	}
}

// S5 — agent session: start the agent, ping it, fetch a secret, then
// shut it down and confirm its socket disappears.
func TestAgentSessionLifecycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key, err := locker.Init(dir, "pw", false)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	st, err := store.Load(dir, key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := st.Add("DB_PASSWORD", "hunter2", 0, key); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	socketPath := agent.SocketPath(dir)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- agent.Serve(ctx, key, dir, socketPath, time.Minute, logging.New())
	}()

	client := agent.NewClient(dir)
	var pingErr error
	for i := 0; i < 50; i++ {
		if _, pingErr = client.Ping(); pingErr == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if pingErr != nil {
		t.Fatalf("agent never answered ping: %v", pingErr)
	}

	value, err := client.GetSecret("DB_PASSWORD")
	if err != nil {
		t.Fatalf("GetSecret: %v", err)
	}
	if value != "hunter2" {
		t.Errorf("got %q, want hunter2", value)
	}

	if err := client.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !agent.WaitForSocketGone(dir, 2*time.Second) {
		t.Error("expected agent socket to disappear after shutdown")
	}

	select {
	case err := <-serveErr:
		if err != nil {
			t.Errorf("Serve returned an error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Serve did not return after shutdown")
	}
}

// S6 — editor/agent mutual exclusion: with the agent running,
// EnterEditor must stop it and wait for its socket to go away before
// handing back exclusive access.
func TestEnterEditorStopsRunningAgent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key, err := locker.Init(dir, "pw", false)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	st, err := store.Load(dir, key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := st.Add("SEED", "v", 0, key); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	socketPath := agent.SocketPath(dir)
	go agent.Serve(ctx, key, dir, socketPath, time.Minute, nil)

	client := agent.NewClient(dir)
	for i := 0; i < 50; i++ {
		if _, err := client.Ping(); err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	// Serve is started directly here, without StartDaemon's PID file,
	// to confirm EnterEditor detects the live agent by pinging its
	// socket rather than by consulting agent.IsRunning.
	session, err := coordinator.EnterEditor(dir, "pw")
	if err != nil {
		t.Fatalf("EnterEditor: %v", err)
	}
	if session.Store.Len() != 1 {
		t.Errorf("expected 1 secret in the editor session, got %d", session.Store.Len())
	}
	crypto.Zero(session.Key)

	if !agent.WaitForSocketGone(dir, 2*time.Second) {
		t.Error("expected EnterEditor to stop the running agent and remove its socket")
	}
	if _, err := client.Ping(); err == nil {
		t.Error("expected the agent to be unreachable after EnterEditor")
	}
}
