package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true},
		{"postgres", &pgconn.PgError{Code: "23505"}, true},
		{"postgres other", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite", errors.New("UNIQUE constraint failed: agreement_request.email"), true},
		{"other", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		if got := IsUniqueViolation(tc.err); got != tc.want {
			t.Fatalf("%s: want=%v got=%v", tc.name, tc.want, got)
		}
	}
}
