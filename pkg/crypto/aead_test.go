package crypto_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/cbwinslow/lazylocker/pkg/core"
	"github.com/cbwinslow/lazylocker/pkg/crypto"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, crypto.KeySize)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	key := randomKey(t)
	for _, plaintext := range [][]byte{
		[]byte("sk-abc"),
		[]byte(""),
		[]byte("a longer secret value with spaces and symbols !@#$"),
	} {
		ct, err := crypto.Encrypt(plaintext, key)
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		pt, err := crypto.Decrypt(ct, key)
		if err != nil {
			t.Fatalf("decrypt: %v", err)
		}
		if !bytes.Equal(pt, plaintext) {
			t.Errorf("round trip mismatch: got %q, want %q", pt, plaintext)
		}
	}
}

func TestEncryptNonceUniqueness(t *testing.T) {
	t.Parallel()

	key := randomKey(t)
	plaintext := []byte("same plaintext every time")

	a, err := crypto.Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("encrypt a: %v", err)
	}
	b, err := crypto.Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("encrypt b: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two encryptions of the same plaintext produced identical output")
	}
}

func TestDecryptWrongKeyFails(t *testing.T) {
	t.Parallel()

	key := randomKey(t)
	wrongKey := randomKey(t)

	ct, err := crypto.Encrypt([]byte("secret"), key)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := crypto.Decrypt(ct, wrongKey); err == nil {
		t.Fatal("expected decrypt with wrong key to fail")
	} else if err != core.ErrCrypto {
		t.Errorf("expected core.ErrCrypto, got %v", err)
	}
}

func TestDecryptTamperedCiphertextFails(t *testing.T) {
	t.Parallel()

	key := randomKey(t)
	ct, err := crypto.Encrypt([]byte("secret"), key)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	tampered := append([]byte(nil), ct...)
	tampered[len(tampered)-1] ^= 0xFF

	if _, err := crypto.Decrypt(tampered, key); err != core.ErrCrypto {
		t.Errorf("expected core.ErrCrypto for tampered ciphertext, got %v", err)
	}
}

func TestDecryptTruncatedInputFails(t *testing.T) {
	t.Parallel()

	key := randomKey(t)
	if _, err := crypto.Decrypt([]byte("short"), key); err != core.ErrCrypto {
		t.Errorf("expected core.ErrCrypto for short input, got %v", err)
	}
}
