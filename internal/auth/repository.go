// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package auth

import "context"

// UserRepository persists credential records.
//
// Implementations translate driver failures into the error taxonomy once:
// a missing record is KindNotFound wrapping ErrNotFound, a uniqueness
// violation is KindAlreadyExists, and any other storage failure is
// KindDatabaseError or KindSQLError.
type UserRepository interface {
	// FindBy returns the record matching key.
	FindBy(ctx context.Context, key LookupKey) (*CredentialRecord, error)

	// Store inserts a fully prepared registration.
	Store(ctx context.Context, user *NewUser) error

	// UpdatePassword replaces the password hash of the given profile.
	// Returns KindInvalidArgument when no row was affected.
	UpdatePassword(ctx context.Context, profileID string, hash HashedPassword) error
}
