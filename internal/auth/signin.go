// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package auth

import "context"

// SignInSeeded is the first sign-in stage: a validated draft and nothing else.
type SignInSeeded struct {
	phase
	users UserRepository
	draft SignInDraft
}

// SignInLookedUp holds the record fetched for the draft's lookup key.
type SignInLookedUp struct {
	phase
	draft  SignInDraft
	record CredentialRecord
}

// SignInChecked is reached only after the supplied password matched.
type SignInChecked struct {
	record CredentialRecord
}

// NewSignIn seeds a sign-in flow.
func NewSignIn(users UserRepository, draft SignInDraft) *SignInSeeded {
	return &SignInSeeded{users: users, draft: draft}
}

// Lookup fetches the credential record identified by the draft.
func (s *SignInSeeded) Lookup(ctx context.Context) (*SignInLookedUp, error) {
	if err := s.advance("sign_in.lookup"); err != nil {
		return nil, err
	}

	record, err := s.users.FindBy(ctx, s.draft.Key)
	if err != nil {
		return nil, wrapAs(KindDatabaseError, "find user", err)
	}
	if record == nil {
		return nil, KindNotFound.Builder().
			With("column", s.draft.Key.Column.String()).
			Wrap(ErrNotFound)
	}

	return &SignInLookedUp{draft: s.draft, record: *record}, nil
}

// CheckPassword verifies the supplied password against the stored hash.
func (s *SignInLookedUp) CheckPassword(hasher PasswordHasher) (*SignInChecked, error) {
	if err := s.advance("sign_in.check_password"); err != nil {
		return nil, err
	}

	ok, err := hasher.Verify(s.draft.Password, s.record.PasswordHash)
	if err != nil {
		return nil, wrapAs(KindInternal, "verify password", err)
	}
	if !ok {
		return nil, Unauthenticated("invalid password")
	}

	return &SignInChecked{record: s.record}, nil
}

// Respond projects the authenticated record into its public view.
func (s *SignInChecked) Respond() PublicUser {
	return s.record.Public()
}
