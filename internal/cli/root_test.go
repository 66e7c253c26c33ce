package cli

import "testing"

func TestLockerDirPrefersStoreFlag(t *testing.T) {
	prevFlag, prevCfg := flagStoreDir, cfg
	defer func() { flagStoreDir, cfg = prevFlag, prevCfg }()

	flagStoreDir = "/tmp/explicit-store"
	cfg = nil

	dir, err := lockerDir()
	if err != nil {
		t.Fatalf("lockerDir: %v", err)
	}
	if dir != "/tmp/explicit-store" {
		t.Errorf("got %q, want /tmp/explicit-store", dir)
	}
}

func TestResolvePassphrasePrefersFlagOverEnv(t *testing.T) {
	prevFlag := flagPassphrase
	defer func() { flagPassphrase = prevFlag }()

	t.Setenv("LAZY_LOCKER_PASSPHRASE", "from-env")
	flagPassphrase = "from-flag"

	got, err := resolvePassphrase()
	if err != nil {
		t.Fatalf("resolvePassphrase: %v", err)
	}
	if got != "from-flag" {
		t.Errorf("got %q, want from-flag", got)
	}
}

func TestResolvePassphraseFallsBackToEnv(t *testing.T) {
	prevFlag := flagPassphrase
	defer func() { flagPassphrase = prevFlag }()

	t.Setenv("LAZY_LOCKER_PASSPHRASE", "from-env")
	flagPassphrase = ""

	got, err := resolvePassphrase()
	if err != nil {
		t.Fatalf("resolvePassphrase: %v", err)
	}
	if got != "from-env" {
		t.Errorf("got %q, want from-env", got)
	}
}
