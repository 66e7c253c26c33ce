package core

import "time"

// Secret is a single named vault entry. Name is the lookup key and,
// when injected into a child process environment, the environment
// variable name. EncryptedValue is the AEAD ciphertext of the UTF-8
// plaintext, including its nonce prefix. ExpiresAt is nil for a
// permanent secret.
type Secret struct {
	Name           string `json:"name"`
	EncryptedValue []byte `json:"encrypted_value"`
	ExpiresAt      *int64 `json:"expires_at"`
}

// IsExpired reports whether the secret's expiry, if any, is strictly
// before now.
func (s Secret) IsExpired(now time.Time) bool {
	if s.ExpiresAt == nil {
		return false
	}
	return now.Unix() > *s.ExpiresAt
}

// DaysUntilExpiration returns the whole number of days remaining until
// expiry, floor-divided (negative once expired). The second return
// value is false for a permanent secret.
func (s Secret) DaysUntilExpiration(now time.Time) (int, bool) {
	if s.ExpiresAt == nil {
		return 0, false
	}
	remaining := *s.ExpiresAt - now.Unix()
	return int(floorDiv(remaining, 86400)), true
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ExpiresAtFromDays computes an absolute Unix-seconds expiry from now
// plus a day count. A zero or negative day count yields a permanent
// secret (nil).
func ExpiresAtFromDays(now time.Time, days int) *int64 {
	if days <= 0 {
		return nil
	}
	t := now.Unix() + int64(days)*86400
	return &t
}
