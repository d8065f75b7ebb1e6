package utils

import (
	"time"

	"github.com/google/uuid"
)

// NewID generates an opaque record identifier
func NewID() string {
	return uuid.NewString()
}

// Now returns the current time in UTC truncated to milliseconds,
// matching what round-trips through the stored documents.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
