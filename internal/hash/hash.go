// Package hash fingerprints snapshot documents so two copies of the same
// data can be compared at a glance.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// FingerprintLength is the number of hex characters in a fingerprint.
const FingerprintLength = 12

// Fingerprint returns a truncated SHA256 of data.
func Fingerprint(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])[:FingerprintLength]
}
