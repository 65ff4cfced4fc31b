// Package uuid generates and validates the session identifiers carried in
// access tokens.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// NewSessionID returns a new time-ordered (version 7) UUID string.
// Falls back to a random version 4 UUID if the clock sequence cannot be read.
func NewSessionID() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}

// IsSessionID reports whether s is a session id as issued by NewSessionID:
// a canonical lower-case UUID of version 7 or 4.
func IsSessionID(s string) bool {
	parsed, err := googleuuid.Parse(s)
	if err != nil || parsed.String() != s {
		return false
	}
	return parsed.Version() == 7 || parsed.Version() == 4
}
