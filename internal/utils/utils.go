package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID returns a fresh opaque player identifier.
func GenerateID() string {
	return uuid.NewString()
}

// NormalizeRoomCode makes room codes case-insensitive and whitespace
// tolerant for matching. Display stays verbatim on the client side.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
