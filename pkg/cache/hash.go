package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// stageKey builds the key for one pipeline stage: "stage:sha256(parts)".
// The stage prefix doubles as the on-disk grouping in [FileCache] and as a
// readable namespace when keys show up in Redis.
func stageKey(stage string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", stage, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of data. The pipeline uses it to fingerprint
// raw geometry responses, so scene keys are derived from the exact bytes a
// scene was built from rather than from the request that fetched them.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
