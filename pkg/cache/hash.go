package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// hashKey joins a prefix and key parts with ":".
// The key format is: prefix:v<schema>:part:part...
func hashKey(prefix string, schema int, parts ...string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(":v")
	b.WriteString(strconv.Itoa(schema))
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}

// ContentHash returns the xxhash64 of data as 16 hex characters.
// It fingerprints lockfile content; it is fast but not collision resistant
// against adversarial input.
func ContentHash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
