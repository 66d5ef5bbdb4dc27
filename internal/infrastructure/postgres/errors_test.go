package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestHasCode(t *testing.T) {
	unique := &pgconn.PgError{Code: codeUniqueViolation}

	if !hasCode(unique, codeUniqueViolation) {
		t.Error("direct PgError not matched")
	}
	if !hasCode(fmt.Errorf("insert: %w", unique), codeUniqueViolation) {
		t.Error("wrapped PgError not matched")
	}
	if hasCode(unique, codeForeignKeyViolation) {
		t.Error("wrong code matched")
	}
	if hasCode(errors.New("plain"), codeUniqueViolation) {
		t.Error("non-PgError matched")
	}
}
