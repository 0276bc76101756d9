package helper

import (
	"github.com/google/uuid"
)

// MintRedemptionToken returns the opaque QR payload for a registration.
// UUIDv4 is random, so tokens cannot be guessed from earlier ones.
func MintRedemptionToken() string {
	return "REG-" + uuid.NewString()
}
