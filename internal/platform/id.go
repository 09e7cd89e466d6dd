package platform

import "github.com/google/uuid"

// NewID returns a fresh UUIDv4 string for use as an entity identifier.
func NewID() string {
	return uuid.New().String()
}

// ValidID reports whether s parses as a UUID.
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
