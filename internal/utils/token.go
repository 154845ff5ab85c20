package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateShareToken returns an opaque token for unauthenticated public issue
// links. 16 random bytes keep the token unguessable without being unwieldy in
// a URL.
func GenerateShareToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
