// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package auth

import (
	"errors"

	"github.com/samber/oops"
)

// Kind is the closed set of error codes surfaced by the authentication core.
// Every error leaving a capability or a pipeline carries one of these codes.
type Kind string

// Error kinds.
const (
	KindUnknown          Kind = "UNKNOWN"
	KindInvalidArgument  Kind = "INVALID_ARGUMENT"
	KindNotFound         Kind = "NOT_FOUND"
	KindAlreadyExists    Kind = "ALREADY_EXISTS"
	KindPermissionDenied Kind = "PERMISSION_DENIED"
	KindUnauthenticated  Kind = "UNAUTHENTICATED"
	KindInternal         Kind = "INTERNAL"
	KindDatabaseError    Kind = "DATABASE_ERROR"
	KindSQLError         Kind = "SQL_ERROR"
	KindIOError          Kind = "IO_ERROR"
)

var knownKinds = map[Kind]struct{}{
	KindUnknown:          {},
	KindInvalidArgument:  {},
	KindNotFound:         {},
	KindAlreadyExists:    {},
	KindPermissionDenied: {},
	KindUnauthenticated:  {},
	KindInternal:         {},
	KindDatabaseError:    {},
	KindSQLError:         {},
	KindIOError:          {},
}

// String returns the code as written into oops errors.
func (k Kind) String() string {
	return string(k)
}

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("nothing found with given parameters")

// KindOf reports the taxonomy kind of err.
// Returns "" for a nil error and KindUnknown for errors without a known code.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return KindUnknown
	}
	code, ok := oopsErr.Code().(string)
	if !ok {
		return KindUnknown
	}
	if _, known := knownKinds[Kind(code)]; !known {
		return KindUnknown
	}
	return Kind(code)
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Builder returns an oops builder preset with the kind's code.
func (k Kind) Builder() oops.OopsErrorBuilder {
	return oops.Code(string(k))
}

// InvalidArgument reports malformed or unconfirmed input.
func InvalidArgument(message string) error {
	return KindInvalidArgument.Builder().New(message)
}

// NotFound reports a missing credential record.
func NotFound(message string) error {
	return KindNotFound.Builder().New(message)
}

// AlreadyExists reports a uniqueness violation.
func AlreadyExists(message string) error {
	return KindAlreadyExists.Builder().New(message)
}

// PermissionDenied reports an authorization mismatch.
func PermissionDenied(message string) error {
	return KindPermissionDenied.Builder().New(message)
}

// Unauthenticated reports a missing, invalid or expired credential.
func Unauthenticated(message string) error {
	return KindUnauthenticated.Builder().New(message)
}

// Internal reports a lower-layer failure opaque to the caller.
func Internal(message string) error {
	return KindInternal.Builder().New(message)
}

// wrapAs attaches kind to err unless err already carries a known kind,
// in which case only the operation context is added.
func wrapAs(kind Kind, operation string, err error) error {
	if k := KindOf(err); k != KindUnknown {
		return oops.With("operation", operation).Wrap(err)
	}
	return kind.Builder().With("operation", operation).Wrap(err)
}
