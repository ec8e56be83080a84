package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data. Boards are hashed by their
// rendered source, so two boards with the same cards share artifacts.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "<kind>:<hash>", where hash covers the JSON encoding of
// parts. Map keys and struct fields encode in a fixed order, so equal
// parts always give equal keys.
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(parts)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}
