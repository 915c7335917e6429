package repository

import (
	"github.com/google/uuid"
)

// NewId returns a time-ordered unique record id (UUIDv7: millisecond
// timestamp followed by random bits).
func NewId() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
