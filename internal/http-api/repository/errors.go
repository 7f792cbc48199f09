// Package repository defines error values shared by all repositories so
// the service layer can branch on failure kind without knowing about
// gorm or postgres driver internals.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested record does not exist.
// Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a write violates a uniqueness constraint,
// e.g. a duplicate slug or a second review for the same (title, author)
// pair. Two racing creations on the same key resolve with exactly one
// success and one ErrConflict because the constraint lives in postgres.
// Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// translateError maps gorm and postgres driver errors onto the shared
// sentinels; anything unrecognized passes through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return err
}
