// Package core provides the fundamental types, enums, and error kinds
// shared across lazylocker's crypto, locker, store, agent, and
// coordinator packages.
package core

import "errors"

// Sentinel errors for the semantic error kinds named in the vault
// specification. Callers should compare with errors.Is; wrapped
// instances still carry the underlying cause via %w.
var (
	// ErrInvalidPassphrase is returned when the passphrase verifier
	// rejects the supplied passphrase.
	ErrInvalidPassphrase = errors.New("invalid passphrase")
	// ErrCrypto is returned when AEAD decryption fails: wrong key,
	// tampering, or truncation. It never identifies which byte failed.
	ErrCrypto = errors.New("decryption failed")
	// ErrCorruptStore is returned when cleartext JSON cannot be parsed
	// after a successful decryption.
	ErrCorruptStore = errors.New("corrupt store")
	// ErrNotFound is returned when a named secret does not exist.
	ErrNotFound = errors.New("secret not found")
	// ErrExpired is returned when a secret is present but past its
	// expiry.
	ErrExpired = errors.New("secret expired")
	// ErrAgentUnavailable is returned when the agent socket is missing
	// or a connection attempt fails.
	ErrAgentUnavailable = errors.New("agent unavailable")
	// ErrAgentStartTimeout is returned when the daemon does not bind
	// its socket within the startup window.
	ErrAgentStartTimeout = errors.New("agent start timed out")
	// ErrSessionExpired is returned when the agent rejects a request
	// past its session TTL.
	ErrSessionExpired = errors.New("session expired")
	// ErrBadArgument is returned for malformed CLI invocations or
	// parser input.
	ErrBadArgument = errors.New("bad argument")
	// ErrLockerExists is returned by Init when a locker already exists
	// at the target directory and --force was not given.
	ErrLockerExists = errors.New("locker already exists")
)
