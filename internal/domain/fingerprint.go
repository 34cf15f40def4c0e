package domain

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns a deterministic hex-encoded BLAKE3-256 digest of the
// normalized text. It is stable across process restarts and is used only
// as a cache key; collision resistance, not cryptographic strength, is
// what matters here.
func Fingerprint(text string) string {
	sum := blake3.Sum256([]byte(NormalizeText(text)))
	return hex.EncodeToString(sum[:])
}
