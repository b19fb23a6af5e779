// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/authd/authd/internal/auth"
)

// mapError translates a driver error into the auth error taxonomy.
// It runs once, at the repository boundary.
func mapError(operation string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.KindNotFound.Builder().
			With("operation", operation).
			Wrap(auth.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return auth.KindSQLError.Builder().
			With("operation", operation).
			Wrap(err)
	}

	b := auth.KindDatabaseError.Builder().
		With("operation", operation).
		With("sqlstate", pgErr.Code).
		With("cause", pgErr.Message)
	if pgErr.ConstraintName != "" {
		b = b.With("constraint", pgErr.ConstraintName)
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return auth.KindAlreadyExists.Builder().
			With("operation", operation).
			With("constraint", pgErr.ConstraintName).
			New("insert or update on table violates unique constraint")
	case pgerrcode.CheckViolation:
		return b.New("insert or update on table violates check verification")
	case pgerrcode.ExclusionViolation:
		return b.New("insert or update on table violates exclusion constraint")
	case pgerrcode.RestrictViolation:
		return b.New("delete on table violates foreign key constraint")
	case pgerrcode.ForeignKeyViolation:
		return b.New("insert or update on table violates foreign key constraint")
	case pgerrcode.NotNullViolation:
		return b.New("insert or update on table violates not null")
	default:
		return b.Errorf("error code: %s, message: %s", pgErr.Code, pgErr.Message)
	}
}
