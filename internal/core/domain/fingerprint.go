package domain

import (
	"crypto/md5" //nolint:gosec // content addressing, not security
	"encoding/hex"
	"fmt"
)

// Fingerprint is a deterministic 128-bit content digest in lowercase hex.
// Identical bytes always produce the identical fingerprint, regardless of
// file name or upload time.
type Fingerprint string

// FingerprintOf returns the fingerprint of data.
func FingerprintOf(data []byte) Fingerprint {
	sum := md5.Sum(data) //nolint:gosec // content addressing, not security
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// ParseFingerprint validates a fingerprint received from a caller.
func ParseFingerprint(s string) (Fingerprint, error) {
	if len(s) != md5.Size*2 {
		return "", fmt.Errorf("%w: fingerprint must be %d hex characters", ErrInvalidInput, md5.Size*2)
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", fmt.Errorf("%w: fingerprint is not hex", ErrInvalidInput)
	}
	return Fingerprint(s), nil
}

// String returns the hex digest.
func (f Fingerprint) String() string {
	return string(f)
}

// Short returns the first 8 characters for log lines.
func (f Fingerprint) Short() string {
	if len(f) <= 8 {
		return string(f)
	}
	return string(f[:8])
}
