package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashJSON fingerprints a request payload for idempotency checks.
// Values json cannot encode fall back to their Go syntax representation.
func HashJSON(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte(fmt.Sprintf("%#v", payload))
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
