package twitter

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// nonceBytes is the amount of randomness in one oauth_nonce.
const nonceBytes = 16

// generateNonce returns 16 random bytes, hex-encoded.
func generateNonce() (string, error) {
	b := make([]byte, nonceBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	return hex.EncodeToString(b), nil
}
