package store_test

import (
	"crypto/rand"
	"testing"
	"time"

	"github.com/cbwinslow/lazylocker/pkg/core"
	"github.com/cbwinslow/lazylocker/pkg/store"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func TestAddLoadSaveRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := randomKey(t)

	s, err := store.Load(dir, key)
	if err != nil {
		t.Fatalf("load empty store: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", s.Len())
	}

	if err := s.Add("API_KEY", "sk-abc", 30, key); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add("DB_PASS", "hunter2", 0, key); err != nil {
		t.Fatalf("add: %v", err)
	}

	reloaded, err := store.Load(dir, key)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("expected 2 entries after reload, got %d", reloaded.Len())
	}

	value, err := reloaded.DecryptOne("API_KEY", key)
	if err != nil {
		t.Fatalf("decrypt API_KEY: %v", err)
	}
	if value != "sk-abc" {
		t.Errorf("got %q, want %q", value, "sk-abc")
	}
}

func TestAddOverwritesExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := randomKey(t)
	s, _ := store.Load(dir, key)

	if err := s.Add("TOKEN", "first", 0, key); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add("TOKEN", "second", 0, key); err != nil {
		t.Fatalf("add: %v", err)
	}

	if s.Len() != 1 {
		t.Fatalf("expected overwrite to keep one entry, got %d", s.Len())
	}
	value, err := s.DecryptOne("TOKEN", key)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if value != "second" {
		t.Errorf("got %q, want %q", value, "second")
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := randomKey(t)
	s, _ := store.Load(dir, key)

	if err := s.Add("A", "1", 0, key); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Remove("A", key); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := s.Get("A"); ok {
		t.Error("expected secret to be gone after remove")
	}

	reloaded, err := store.Load(dir, key)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Len() != 0 {
		t.Errorf("expected 0 entries after remove+reload, got %d", reloaded.Len())
	}
}

func TestListSortedAscending(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := randomKey(t)
	s, _ := store.Load(dir, key)

	for _, name := range []string{"zebra", "apple", "mango"} {
		if err := s.Add(name, "v", 0, key); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 secrets, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Name >= list[i].Name {
			t.Errorf("list not sorted: %q before %q", list[i-1].Name, list[i].Name)
		}
	}
}

func TestDecryptOneWrongKeyFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := randomKey(t)
	wrongKey := randomKey(t)

	s, _ := store.Load(dir, key)
	if err := s.Add("SECRET", "value", 0, key); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := s.DecryptOne("SECRET", wrongKey); err != core.ErrCrypto {
		t.Errorf("expected core.ErrCrypto, got %v", err)
	}
}

func TestDecryptOneNotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := randomKey(t)
	s, _ := store.Load(dir, key)

	if _, err := s.DecryptOne("missing", key); err != core.ErrNotFound {
		t.Errorf("expected core.ErrNotFound, got %v", err)
	}
}

func TestExpirySemantics(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := randomKey(t)
	s, _ := store.Load(dir, key)

	if err := s.Add("SOON", "v", 7, key); err != nil {
		t.Fatalf("add: %v", err)
	}
	secret, ok := s.Get("SOON")
	if !ok {
		t.Fatal("expected secret to exist")
	}

	now := time.Now()
	if secret.IsExpired(now) {
		t.Error("expected fresh secret to not be expired")
	}
	days, hasExpiry := secret.DaysUntilExpiration(now)
	if !hasExpiry {
		t.Fatal("expected expiry to be set")
	}
	if days != 7 && days != 6 {
		t.Errorf("got %d days until expiration, want 6 or 7", days)
	}
}

func TestDecryptAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := randomKey(t)
	s, _ := store.Load(dir, key)

	want := map[string]string{"A": "1", "B": "2", "C": "3"}
	for name, value := range want {
		if err := s.Add(name, value, 0, key); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	got, err := s.DecryptAll(key)
	if err != nil {
		t.Fatalf("decrypt all: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for name, value := range want {
		if got[name] != value {
			t.Errorf("name %s: got %q, want %q", name, got[name], value)
		}
	}
}
