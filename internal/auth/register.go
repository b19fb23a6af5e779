// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package auth

import "context"

// RegistrationSeeded holds a validated registration whose password is still plaintext.
type RegistrationSeeded struct {
	phase
	users UserRepository
	draft Registration[NoID, PlainPassword]
}

// RegistrationEncrypted holds a registration whose password has been hashed.
type RegistrationEncrypted struct {
	users UserRepository
	draft Registration[NoID, HashedPassword]
}

// RegistrationIdentified holds a hashed registration with its new id.
type RegistrationIdentified struct {
	phase
	users UserRepository
	draft NewUser
}

// RegistrationStored is reached once the repository accepted the record.
type RegistrationStored struct {
	id AssignedID
}

// NewRegistration seeds a registration flow.
func NewRegistration(users UserRepository, draft Registration[NoID, PlainPassword]) *RegistrationSeeded {
	return &RegistrationSeeded{users: users, draft: draft}
}

// EncryptPassword replaces the plaintext password with its hash.
func (s *RegistrationSeeded) EncryptPassword(hasher PasswordHasher) (*RegistrationEncrypted, error) {
	if err := s.advance("register.encrypt_password"); err != nil {
		return nil, err
	}

	hash, err := hasher.Hash(s.draft.Password)
	if err != nil {
		return nil, wrapAs(KindInternal, "hash password", err)
	}

	return &RegistrationEncrypted{users: s.users, draft: withPassword(s.draft, hash)}, nil
}

// AssignID attaches a freshly generated identifier.
func (s *RegistrationEncrypted) AssignID(ids IDGenerator) *RegistrationIdentified {
	return &RegistrationIdentified{
		users: s.users,
		draft: withID(s.draft, AssignedID(ids.NewID())),
	}
}

// Store persists the registration.
func (s *RegistrationIdentified) Store(ctx context.Context) (*RegistrationStored, error) {
	if err := s.advance("register.store"); err != nil {
		return nil, err
	}

	draft := s.draft
	if err := s.users.Store(ctx, &draft); err != nil {
		return nil, wrapAs(KindDatabaseError, "store user", err)
	}

	return &RegistrationStored{id: s.draft.ID}, nil
}

// Respond returns the identifier assigned to the stored record.
func (s *RegistrationStored) Respond() string {
	return string(s.id)
}
