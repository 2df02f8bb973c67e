package db

import (
	"database/sql"
	"errors"

	"parley/internal/proto"
)

// MapError translates driver errors into the domain sentinels the services
// hand out. Anything unrecognized passes through untouched.
func MapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return proto.ErrNotFound
	case IsUniqueViolation(err):
		return proto.ErrConflict
	default:
		return err
	}
}
