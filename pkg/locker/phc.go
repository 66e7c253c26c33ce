package locker

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// phcParams are the Argon2id tuning parameters embedded in every
// verifier string, matching the library's own defaults so init and
// open never disagree.
type phcParams struct {
	time    uint32
	memory  uint32
	threads uint8
}

var defaultParams = phcParams{time: 1, memory: 64 * 1024, threads: 4}

// encodeVerifier derives an Argon2id hash of passphrase under salt and
// renders it as a PHC-style string: the canonical
// $argon2id$v=19$m=...,t=...,p=...$salt$hash form used across the Go
// ecosystem's argon2id password-hash implementations.
func encodeVerifier(passphrase string, salt []byte, p phcParams) string {
	hash := argon2.IDKey([]byte(passphrase), salt, p.time, p.memory, p.threads, verifierHashLen)
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.memory, p.time, p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
}

// parsedVerifier is the decoded form of a PHC verifier string.
type parsedVerifier struct {
	params phcParams
	salt   []byte
	hash   []byte
}

func parseVerifier(encoded string) (parsedVerifier, error) {
	parts := strings.Split(encoded, "$")
	// parts[0] is empty (leading $); parts[1]=argon2id; parts[2]=v=..;
	// parts[3]=m=..,t=..,p=..; parts[4]=salt; parts[5]=hash.
	if len(parts) != 6 || parts[1] != "argon2id" {
		return parsedVerifier{}, fmt.Errorf("locker: malformed verifier string")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return parsedVerifier{}, fmt.Errorf("locker: malformed verifier version: %w", err)
	}

	var p phcParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return parsedVerifier{}, fmt.Errorf("locker: malformed verifier params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return parsedVerifier{}, fmt.Errorf("locker: malformed verifier salt: %w", err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return parsedVerifier{}, fmt.Errorf("locker: malformed verifier hash: %w", err)
	}

	return parsedVerifier{params: p, salt: salt, hash: hash}, nil
}

// verifyPassphrase checks passphrase against an encoded PHC verifier
// string using a constant-time comparison of the derived hash. It
// never derives the 32-byte encryption key itself; it only confirms
// the passphrase before that derivation is trusted.
func verifyPassphrase(passphrase, encoded string) (bool, error) {
	v, err := parseVerifier(encoded)
	if err != nil {
		return false, err
	}
	gotHash := argon2.IDKey([]byte(passphrase), v.salt, v.params.time, v.params.memory, v.params.threads, uint32(len(v.hash)))
	return subtle.ConstantTimeCompare(gotHash, v.hash) == 1, nil
}

// verifierHashLen is the length of the hash embedded in the PHC
// verifier string. It happens to match pkg/crypto.KeySize but is
// conceptually independent: the verifier exists only to validate a
// passphrase, not to produce the encryption key.
const verifierHashLen = 32
