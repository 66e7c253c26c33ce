// Package locker manages the on-disk vault directory: the salt file,
// the passphrase verifier, and derivation of the 32-byte master key
// used by pkg/crypto and pkg/store.
package locker

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cbwinslow/lazylocker/pkg/core"
	"golang.org/x/crypto/argon2"
)

const (
	saltFileName  = "salt"
	hashFileName  = "hash"
	storeFileName = "secrets.json"
	saltSize      = 16
	masterKeySize = 32
)

// StorePath returns the path to the encrypted store blob inside dir.
func StorePath(dir string) string {
	return filepath.Join(dir, storeFileName)
}

// Exists reports whether a locker has already been initialized at
// dir (both the salt and hash files are present).
func Exists(dir string) bool {
	_, errSalt := os.Stat(filepath.Join(dir, saltFileName))
	_, errHash := os.Stat(filepath.Join(dir, hashFileName))
	return errSalt == nil && errHash == nil
}

// Init creates a new locker at dir: generates a random salt, derives
// the passphrase verifier, and persists both. It fails with
// core.ErrLockerExists if a locker is already present and force is
// false. The derived master key is returned to the caller so the
// first save can proceed without re-deriving it.
func Init(dir, passphrase string, force bool) (key []byte, err error) {
	if Exists(dir) && !force {
		return nil, core.ErrLockerExists
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("locker: create directory: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("locker: generate salt: %w", err)
	}

	verifier := encodeVerifier(passphrase, salt, defaultParams)

	if err := os.WriteFile(filepath.Join(dir, saltFileName), []byte(base64.StdEncoding.EncodeToString(salt)), 0o600); err != nil {
		return nil, fmt.Errorf("locker: write salt: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, hashFileName), []byte(verifier), 0o600); err != nil {
		return nil, fmt.Errorf("locker: write hash: %w", err)
	}

	return deriveKey(passphrase, salt, defaultParams), nil
}

// Open reads the salt and verifier from dir, rejects a wrong
// passphrase with core.ErrInvalidPassphrase, and returns the derived
// 32-byte master key on success.
func Open(dir, passphrase string) (key []byte, err error) {
	saltB64, err := os.ReadFile(filepath.Join(dir, saltFileName))
	if err != nil {
		return nil, fmt.Errorf("locker: read salt: %w", err)
	}
	salt, err := base64.StdEncoding.DecodeString(string(saltB64))
	if err != nil {
		return nil, fmt.Errorf("locker: decode salt: %w", err)
	}

	verifier, err := os.ReadFile(filepath.Join(dir, hashFileName))
	if err != nil {
		return nil, fmt.Errorf("locker: read hash: %w", err)
	}

	v, err := parseVerifier(string(verifier))
	if err != nil {
		return nil, err
	}
	ok, err := verifyPassphrase(passphrase, string(verifier))
	if err != nil {
		return nil, fmt.Errorf("locker: verify passphrase: %w", err)
	}
	if !ok {
		return nil, core.ErrInvalidPassphrase
	}

	return deriveKey(passphrase, salt, v.params), nil
}

func deriveKey(passphrase string, salt []byte, p phcParams) []byte {
	return argon2.IDKey([]byte(passphrase), salt, p.time, p.memory, p.threads, masterKeySize)
}

// DefaultDir returns the platform-appropriate vault directory under
// the user's config directory: ".lazy-locker" on Unix, "lazy-locker"
// elsewhere, per the spec's on-disk layout table.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locker: resolve config dir: %w", err)
	}
	name := "lazy-locker"
	if os.PathSeparator == '/' {
		name = ".lazy-locker"
	}
	return filepath.Join(base, name), nil
}
