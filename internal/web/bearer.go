// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package web

import (
	"net/http"
	"strings"

	"github.com/authd/authd/internal/auth"
)

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
// Anything other than exactly two whitespace-separated parts starting with
// "Bearer" is an InvalidArgument error.
func BearerToken(r *http.Request) (string, error) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", auth.InvalidArgument("Invalid Bearer token")
	}
	return parts[1], nil
}
