package contracts

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time for traceability fields.
type Clock interface {
	Now() time.Time
}

// IDSource supplies unique run identifiers.
type IDSource interface {
	NewID() string
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// UUIDSource generates random (v4) UUIDs.
type UUIDSource struct{}

func (UUIDSource) NewID() string { return uuid.NewString() }

// FixedID always returns the same identifier.
type FixedID string

func (id FixedID) NewID() string { return string(id) }

// Timestamp renders t as an ISO-8601 UTC timestamp.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
