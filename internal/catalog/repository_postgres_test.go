package catalog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestNotFoundMapping(t *testing.T) {
	if err := notFound(pgx.ErrNoRows); !errors.Is(err, ErrNotFound) {
		t.Errorf("no rows: err = %v, want ErrNotFound", err)
	}

	// A non-UUID id from an import payload raises 22P02 instead of
	// returning zero rows; resolvers must see it as not-found so the
	// restaurant lands in the skip list rather than aborting the run.
	badUUID := fmt.Errorf("query: %w", &pgconn.PgError{
		Code:    invalidTextRepresentation,
		Message: `invalid input syntax for type uuid: "EXT-123"`,
	})
	if err := notFound(badUUID); !errors.Is(err, ErrNotFound) {
		t.Errorf("invalid uuid: err = %v, want ErrNotFound", err)
	}

	// Real failures pass through untouched.
	unique := &pgconn.PgError{Code: "23505"}
	if err := notFound(unique); !errors.Is(err, unique) {
		t.Errorf("unique violation rewritten: %v", err)
	}
	plain := errors.New("connection reset")
	if err := notFound(plain); !errors.Is(err, plain) {
		t.Errorf("plain error rewritten: %v", err)
	}
}
