// Package ident allocates the 64-bit identifiers used by every table.
// IDs are chosen client-side instead of relying on AUTOINCREMENT so records
// can be created and referenced before they are written, and so exports can
// be merged across databases without renumbering.
package ident

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
)

// maxAttempts bounds the collision-retry loop. With 63 random bits the odds
// of a single collision are negligible; hitting the bound means the
// existence check itself is broken.
const maxAttempts = 16

// ErrExhausted is returned when no unused identifier was found within the
// retry budget.
var ErrExhausted = errors.New("ident: exhausted retry budget")

// ExistsFunc reports whether an identifier is already taken.
type ExistsFunc func(ctx context.Context, id int64) (bool, error)

// Valid reports whether id is usable as a row identifier. IDs are strictly
// positive; zero is the "no parent" sentinel.
func Valid(id int64) bool { return id > 0 }

// New draws random positive 63-bit integers until one passes the existence
// check, up to a fixed retry budget.
func New(ctx context.Context, exists ExistsFunc) (int64, error) {
	for range maxAttempts {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		id, err := random()
		if err != nil {
			return 0, fmt.Errorf("ident: %w", err)
		}
		taken, err := exists(ctx, id)
		if err != nil {
			return 0, err
		}
		if !taken {
			return id, nil
		}
	}
	return 0, ErrExhausted
}

// random returns a uniformly random integer in [1, 1<<63).
func random() (int64, error) {
	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, err
		}
		id := int64(binary.BigEndian.Uint64(buf[:]) &^ (1 << 63))
		if id != 0 {
			return id, nil
		}
	}
}
