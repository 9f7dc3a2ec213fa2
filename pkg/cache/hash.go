package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of a program's source text. Layout keys are
// built from it, so two inputs share a layout only when they are byte-equal.
func Hash(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// hashKey derives a "kind:digest" key from the JSON form of parts. Option
// structs marshal with sorted map keys, so equal options give equal keys.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}
