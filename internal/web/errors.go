// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/authd/authd/internal/auth"
	"github.com/authd/authd/pkg/errutil"
)

// internalMessage replaces the message of every 5xx response.
const internalMessage = "internal error"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code    string `json:"code" jsonschema:"example=INVALID_ARGUMENT"`
	Message string `json:"message" jsonschema:"example=Password must contain minimum 8 characters!"`
}

// StatusFor maps an error's kind to its HTTP status.
func StatusFor(err error) int {
	switch auth.KindOf(err) {
	case auth.KindInvalidArgument:
		return http.StatusBadRequest
	case auth.KindNotFound:
		return http.StatusNotFound
	case auth.KindAlreadyExists:
		return http.StatusConflict
	case auth.KindPermissionDenied:
		return http.StatusForbidden
	case auth.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as an ErrorBody. Server errors are logged in full and
// answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusFor(err)
	body := ErrorBody{Code: auth.KindOf(err).String(), Message: err.Error()}

	if status >= http.StatusInternalServerError {
		errutil.LogError(r.Context(), logger, "request failed", err)
		body = ErrorBody{Code: auth.KindInternal.String(), Message: internalMessage}
	}

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // client may disconnect mid-write
	json.NewEncoder(w).Encode(v)
}
