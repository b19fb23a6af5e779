// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package auth

import "time"

// CredentialRecord is the stored identity of a user as read back from the repository.
// PasswordHash never leaves the auth package boundary in a response.
type CredentialRecord struct {
	ID           string
	Name         string
	Username     string
	PasswordHash string
}

// Public projects the record into the only view returned to callers.
func (r *CredentialRecord) Public() PublicUser {
	return PublicUser{
		ID:       r.ID,
		Username: r.Username,
		Name:     r.Name,
	}
}

// PublicUser is the redacted user view.
type PublicUser struct {
	ID       string
	Username string
	Name     string
}

// Column names the attribute a LookupKey searches on.
type Column int

// Lookup columns.
const (
	ColumnID Column = iota + 1
	ColumnUsername
	ColumnEmail
	ColumnTelephone
)

// String returns the column name used in logs.
func (c Column) String() string {
	switch c {
	case ColumnID:
		return "id"
	case ColumnUsername:
		return "username"
	case ColumnEmail:
		return "email"
	case ColumnTelephone:
		return "telephone"
	default:
		return "unknown"
	}
}

// LookupKey identifies a credential record by one of its unique attributes.
type LookupKey struct {
	Column Column
	Value  string
}

// ByID looks up a record by profile id.
func ByID(id string) LookupKey { return LookupKey{Column: ColumnID, Value: id} }

// ByUsername looks up a record by username.
func ByUsername(username string) LookupKey {
	return LookupKey{Column: ColumnUsername, Value: username}
}

// ByEmail looks up a record by email address.
func ByEmail(email string) LookupKey { return LookupKey{Column: ColumnEmail, Value: email} }

// ByTelephone looks up a record by telephone number.
func ByTelephone(telephone string) LookupKey {
	return LookupKey{Column: ColumnTelephone, Value: telephone}
}

// PlainPassword is a password exactly as the caller supplied it.
type PlainPassword string

// HashedPassword is the output of a PasswordHasher.
type HashedPassword string

// NoID marks a registration that has not been assigned an identifier yet.
type NoID struct{}

// AssignedID is an identifier produced by an IDGenerator.
type AssignedID string

// idState is satisfied by the two identifier states of a registration.
type idState interface {
	NoID | AssignedID
}

// passwordState is satisfied by the two password states of a registration.
type passwordState interface {
	PlainPassword | HashedPassword
}

// Registration is the full profile needed to create a record. Its type
// parameters track whether an id has been assigned and whether the password
// has been hashed, so only a Registration[AssignedID, HashedPassword] can be
// handed to a repository.
type Registration[I idState, P passwordState] struct {
	ID           I
	Name         string
	Username     string
	BirthDate    time.Time
	GenderID     int32
	Password     P
	Street       string
	Neighborhood string
	CityID       int32
	PostalCode   int32
	Email        string
	Telephone    *string
}

// NewUser is the only registration shape a repository accepts.
type NewUser = Registration[AssignedID, HashedPassword]

// withPassword returns a copy of r carrying the hashed password.
func withPassword[I idState](r Registration[I, PlainPassword], hash HashedPassword) Registration[I, HashedPassword] {
	return Registration[I, HashedPassword]{
		ID:           r.ID,
		Name:         r.Name,
		Username:     r.Username,
		BirthDate:    r.BirthDate,
		GenderID:     r.GenderID,
		Password:     hash,
		Street:       r.Street,
		Neighborhood: r.Neighborhood,
		CityID:       r.CityID,
		PostalCode:   r.PostalCode,
		Email:        r.Email,
		Telephone:    r.Telephone,
	}
}

// withID returns a copy of r carrying the assigned id.
func withID[P passwordState](r Registration[NoID, P], id AssignedID) Registration[AssignedID, P] {
	return Registration[AssignedID, P]{
		ID:           id,
		Name:         r.Name,
		Username:     r.Username,
		BirthDate:    r.BirthDate,
		GenderID:     r.GenderID,
		Password:     r.Password,
		Street:       r.Street,
		Neighborhood: r.Neighborhood,
		CityID:       r.CityID,
		PostalCode:   r.PostalCode,
		Email:        r.Email,
		Telephone:    r.Telephone,
	}
}

// SignInDraft is the internal form of a sign-in request.
type SignInDraft struct {
	Key      LookupKey
	Password PlainPassword
}

// ChangePasswordDraft is the internal form of a password-change request.
type ChangePasswordDraft struct {
	ProfileID   string
	OldPassword PlainPassword
	NewPassword PlainPassword
}

// PasswordUpdate replaces a ChangePasswordDraft once the new password is hashed.
type PasswordUpdate struct {
	ProfileID string
	Password  HashedPassword
}
