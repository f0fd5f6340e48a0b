// Package system provides the wall clock and identity generator used by
// use cases outside of tests.
package system

import (
	"time"

	"github.com/google/uuid"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// Clock reads the wall clock in UTC
type Clock struct{}

// NewClock creates a new clock
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current time in UTC without a monotonic reading
func (Clock) Now() time.Time {
	return time.Now().UTC().Round(0)
}

// UUIDGenerator issues random v4 identities
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new generator
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a fresh UUID string
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

var (
	_ usecase.Clock       = (*Clock)(nil)
	_ usecase.IDGenerator = (*UUIDGenerator)(nil)
)
