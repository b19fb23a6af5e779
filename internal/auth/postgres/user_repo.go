// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/authd/authd/internal/auth"
)

// DefaultAcquireTimeout bounds each repository call.
const DefaultAcquireTimeout = 30 * time.Second

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// lookupColumns whitelists the qualified column behind each lookup kind.
var lookupColumns = map[auth.Column]string{
	auth.ColumnID:        "profiles.id",
	auth.ColumnUsername:  "profiles.username",
	auth.ColumnEmail:     "emails.address",
	auth.ColumnTelephone: "telephones.number",
}

const findUserSQL = `
	SELECT profiles.id, profiles.name, profiles.username, users.password
	FROM profiles
	INNER JOIN users ON users.id = profiles.user_id
	LEFT JOIN emails ON emails.profile_id = profiles.id
	LEFT JOIN telephones ON telephones.profile_id = profiles.id
	WHERE %s = $1
	LIMIT 1
`

const (
	insertUserSQL      = `INSERT INTO users (password) VALUES ($1) RETURNING id`
	insertProfileSQL   = `INSERT INTO profiles (id, user_id, name, username, birth_date, gender_id) VALUES ($1, $2, $3, $4, $5, $6)`
	insertAddressSQL   = `INSERT INTO addresses (profile_id, street, neighborhood, city_id, postal_code) VALUES ($1, $2, $3, $4, $5)`
	insertEmailSQL     = `INSERT INTO emails (profile_id, address) VALUES ($1, $2)`
	insertTelephoneSQL = `INSERT INTO telephones (profile_id, number) VALUES ($1, $2)`
)

const updatePasswordSQL = `
	UPDATE users
	SET password = $1
	FROM profiles
	WHERE profiles.user_id = users.id
	  AND profiles.id = $2
`

// UserRepository implements auth.UserRepository using PostgreSQL.
type UserRepository struct {
	db      DB
	timeout time.Duration
}

// Option configures a UserRepository.
type Option func(*UserRepository)

// WithAcquireTimeout overrides DefaultAcquireTimeout. Non-positive values disable the bound.
func WithAcquireTimeout(d time.Duration) Option {
	return func(r *UserRepository) {
		r.timeout = d
	}
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db DB, opts ...Option) *UserRepository {
	r := &UserRepository{db: db, timeout: DefaultAcquireTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FindBy retrieves the credential record matching key.
func (r *UserRepository) FindBy(ctx context.Context, key auth.LookupKey) (*auth.CredentialRecord, error) {
	column, ok := lookupColumns[key.Column]
	if !ok {
		return nil, auth.KindInvalidArgument.Builder().
			With("column", key.Column.String()).
			Errorf("unsupported lookup column")
	}

	ctx, cancel := r.bound(ctx)
	defer cancel()

	var rec auth.CredentialRecord
	err := r.db.QueryRow(ctx, fmt.Sprintf(findUserSQL, column), key.Value).
		Scan(&rec.ID, &rec.Name, &rec.Username, &rec.PasswordHash)
	if err != nil {
		return nil, mapError("find user by "+key.Column.String(), err)
	}
	return &rec, nil
}

// Store inserts the user, its profile, address and contacts in one transaction.
func (r *UserRepository) Store(ctx context.Context, user *auth.NewUser) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		var userID string
		if err := tx.QueryRow(ctx, insertUserSQL, string(user.Password)).Scan(&userID); err != nil {
			return err
		}

		profileID := string(user.ID)
		if _, err := tx.Exec(ctx, insertProfileSQL,
			profileID, userID, user.Name, user.Username, user.BirthDate, user.GenderID,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, insertAddressSQL,
			profileID, user.Street, user.Neighborhood, user.CityID, user.PostalCode,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, insertEmailSQL, profileID, user.Email); err != nil {
			return err
		}
		if user.Telephone != nil {
			if _, err := tx.Exec(ctx, insertTelephoneSQL, profileID, *user.Telephone); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return mapError("store user", err)
	}
	return nil
}

// UpdatePassword replaces the password hash of the user owning profileID.
func (r *UserRepository) UpdatePassword(ctx context.Context, profileID string, hash auth.HashedPassword) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, updatePasswordSQL, string(hash), profileID)
	if err != nil {
		return mapError("update password", err)
	}
	if tag.RowsAffected() < 1 {
		return auth.InvalidArgument("wrong old password or user does not exist")
	}
	return nil
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func withTx(ctx context.Context, db DB, fn func(pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	return fn(tx)
}

func (r *UserRepository) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

var _ auth.UserRepository = (*UserRepository)(nil)
