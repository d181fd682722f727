package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components, giving
// keys like "graph:<hex>" and "plan:<hex>". Structured parts such as
// PlanKeyOpts are serialized before hashing, so every generation
// input lands in the key.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data as a 64-character
// hex string. The planner fingerprints project files and encoded
// graphs with it; the layout and graph hashes it reports come from
// here.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
