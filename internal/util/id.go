// Package util provides identifier helpers shared by the client and the
// development backend.
package util

import (
	"github.com/google/uuid"
)

// IDGenerator issues row identifiers. IDs are UUIDv7, so rows inserted
// later sort later and index pages fill in order.
type IDGenerator struct {
	fallback func() uuid.UUID
}

// NewIDGenerator creates a new ID generator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{fallback: uuid.New}
}

// NewID returns a new identifier. It falls back to a random UUID only if
// the entropy source fails.
func (g *IDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return g.fallback().String()
	}
	return id.String()
}

// NewRequestID returns a random identifier for correlating a client
// request with backend logs.
func NewRequestID() string {
	return uuid.New().String()
}
