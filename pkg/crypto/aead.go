// Package crypto provides the vault's single authenticated-encryption
// primitive: AES-256-GCM with a random per-message nonce.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/cbwinslow/lazylocker/pkg/core"
)

// KeySize is the required length of the symmetric key in bytes.
const KeySize = 32

// NonceSize is the length of the random nonce prefixed to every
// ciphertext.
const NonceSize = 12

// Encrypt seals plaintext under key, returning nonce||ciphertext||tag
// as a single byte slice. A fresh random nonce is drawn for every
// call, so two encryptions of the same plaintext under the same key
// never produce the same output.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("crypto: key must be %d bytes, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: new cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: new gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("crypto: generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a nonce||ciphertext||tag blob produced by Encrypt.
// Any tampering, truncation, or wrong key returns core.ErrCrypto and
// never a partial plaintext.
func Decrypt(blob, key []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("crypto: key must be %d bytes, got %d", KeySize, len(key))
	}
	if len(blob) < NonceSize {
		return nil, core.ErrCrypto
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: new cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: new gcm: %w", err)
	}

	nonce, ciphertext := blob[:gcm.NonceSize()], blob[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, core.ErrCrypto
	}
	return plaintext, nil
}

// Zero overwrites b with zero bytes in place. Callers use it to scrub
// master keys and transient plaintext buffers on every exit path.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
