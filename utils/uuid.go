package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string. Used for bid and auction
// IDs in the stub store and as the X-Request-ID correlation value on client
// requests.
func GenerateID() string {
	return uuid.New().String()
}
