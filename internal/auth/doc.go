// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

// Package auth implements sign-in, registration and password change.
//
// # Pipelines
//
// Each flow is a chain of stage types. A stage exposes only the next legal
// transition and every transition returns the next stage:
//
//	NewSignIn(users, draft).Lookup(ctx) -> CheckPassword(hasher) -> Respond()
//	NewRegistration(users, draft).EncryptPassword(hasher) -> AssignID(ids) -> Store(ctx) -> Respond()
//	NewPasswordChange(users, draft).FetchUser(ctx) -> CheckOldPassword(hasher) -> EncryptNewPassword(hasher) -> Save(ctx)
//
// A registration is typed by its id and password state, so only a
// Registration[AssignedID, HashedPassword] reaches UserRepository.Store.
// Stages are single use; advancing a spent stage fails with KindInternal.
//
// # Errors
//
// Errors are oops errors coded with a Kind. Use KindOf to classify them.
//
// # Services
//
// Service validates external requests, drives the pipelines, and issues
// bearer tokens for the "authentication_user" audience.
package auth
