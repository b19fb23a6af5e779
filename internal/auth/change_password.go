// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package auth

import "context"

// PasswordChangeSeeded holds a validated password-change draft.
type PasswordChangeSeeded struct {
	phase
	users UserRepository
	draft ChangePasswordDraft
}

// PasswordChangeFetched holds the record of the profile being changed.
type PasswordChangeFetched struct {
	phase
	users  UserRepository
	draft  ChangePasswordDraft
	record CredentialRecord
}

// PasswordChangeChecked is reached once the old password matched.
type PasswordChangeChecked struct {
	phase
	users UserRepository
	draft ChangePasswordDraft
}

// PasswordChangeEncrypted carries only the profile id and the new hash.
type PasswordChangeEncrypted struct {
	phase
	users  UserRepository
	update PasswordUpdate
}

// PasswordChangeSaved is the terminal stage.
type PasswordChangeSaved struct {
	ProfileID string
}

// NewPasswordChange seeds a password-change flow.
func NewPasswordChange(users UserRepository, draft ChangePasswordDraft) *PasswordChangeSeeded {
	return &PasswordChangeSeeded{users: users, draft: draft}
}

// FetchUser loads the record of the draft's profile.
func (s *PasswordChangeSeeded) FetchUser(ctx context.Context) (*PasswordChangeFetched, error) {
	if err := s.advance("change_password.fetch_user"); err != nil {
		return nil, err
	}

	record, err := s.users.FindBy(ctx, ByID(s.draft.ProfileID))
	if err != nil {
		return nil, wrapAs(KindDatabaseError, "find user", err)
	}
	if record == nil {
		return nil, KindNotFound.Builder().
			With("profile_id", s.draft.ProfileID).
			Wrap(ErrNotFound)
	}

	return &PasswordChangeFetched{users: s.users, draft: s.draft, record: *record}, nil
}

// CheckOldPassword verifies the supplied old password against the stored hash.
func (s *PasswordChangeFetched) CheckOldPassword(hasher PasswordHasher) (*PasswordChangeChecked, error) {
	if err := s.advance("change_password.check_old_password"); err != nil {
		return nil, err
	}

	ok, err := hasher.Verify(s.draft.OldPassword, s.record.PasswordHash)
	if err != nil {
		return nil, wrapAs(KindInternal, "verify password", err)
	}
	if !ok {
		return nil, PermissionDenied("The given old password is invalid")
	}

	return &PasswordChangeChecked{users: s.users, draft: s.draft}, nil
}

// EncryptNewPassword hashes the new password, dropping every plaintext.
func (s *PasswordChangeChecked) EncryptNewPassword(hasher PasswordHasher) (*PasswordChangeEncrypted, error) {
	if err := s.advance("change_password.encrypt_new_password"); err != nil {
		return nil, err
	}

	hash, err := hasher.Hash(s.draft.NewPassword)
	if err != nil {
		return nil, wrapAs(KindInternal, "hash password", err)
	}

	return &PasswordChangeEncrypted{
		users:  s.users,
		update: PasswordUpdate{ProfileID: s.draft.ProfileID, Password: hash},
	}, nil
}

// Save persists the new hash.
func (s *PasswordChangeEncrypted) Save(ctx context.Context) (*PasswordChangeSaved, error) {
	if err := s.advance("change_password.save"); err != nil {
		return nil, err
	}

	if err := s.users.UpdatePassword(ctx, s.update.ProfileID, s.update.Password); err != nil {
		return nil, wrapAs(KindDatabaseError, "update password", err)
	}

	return &PasswordChangeSaved{ProfileID: s.update.ProfileID}, nil
}
