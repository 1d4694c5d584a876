// Package keys derives the string keys the store indexes entities by.
package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// EntityRef returns the type-qualified reference for an entity (e.g., "user#42").
func EntityRef(entityType, id string) string {
	return entityType + "#" + id
}

// UniqueConstraint computes the index key for a unique field value. Keys are
// the first 128 bits of a SHA-256 digest, hex encoded, so every key has the
// same length regardless of the value.
func UniqueConstraint(entityType, field, value string) string {
	data := fmt.Sprintf("%s#%s#%s", entityType, field, value)
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:16]) // 128-bit hash as hex
}
