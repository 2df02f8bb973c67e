// Package proto holds the domain types shared by the storage services and
// the error sentinels they return.
package proto

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned for non-positive identifiers.
	ErrInvalidID = errors.New("invalid id")
	// ErrConflict is returned when a unique constraint is violated.
	ErrConflict = errors.New("already exists")
)

// Millis converts a time to the stored representation, UTC Unix
// milliseconds.
func Millis(t time.Time) int64 { return t.UTC().UnixMilli() }

// Time converts a stored timestamp back to local time. Zero maps to the
// zero time.
func Time(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).Local()
}
