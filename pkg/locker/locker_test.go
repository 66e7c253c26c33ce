package locker_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cbwinslow/lazylocker/pkg/core"
	"github.com/cbwinslow/lazylocker/pkg/locker"
)

func TestInitThenOpenDerivesSameKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	key1, err := locker.Init(dir, "correct horse battery staple", false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	key2, err := locker.Open(dir, "correct horse battery staple")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if !bytes.Equal(key1, key2) {
		t.Error("expected init and open to derive the same master key")
	}
}

func TestInitRefusesExistingLockerWithoutForce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := locker.Init(dir, "p@ss", false); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if _, err := locker.Init(dir, "p@ss", false); !errors.Is(err, core.ErrLockerExists) {
		t.Errorf("expected core.ErrLockerExists, got %v", err)
	}
	if _, err := locker.Init(dir, "new-pass", true); err != nil {
		t.Errorf("expected force re-init to succeed, got %v", err)
	}
}

func TestOpenWrongPassphraseFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := locker.Init(dir, "p@ss", false); err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, err := locker.Open(dir, "wrong"); !errors.Is(err, core.ErrInvalidPassphrase) {
		t.Errorf("expected core.ErrInvalidPassphrase, got %v", err)
	}
}

func TestExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if locker.Exists(dir) {
		t.Error("expected fresh directory to not have a locker")
	}
	if _, err := locker.Init(dir, "p@ss", false); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !locker.Exists(dir) {
		t.Error("expected locker to exist after init")
	}
}
