// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/authd/authd/internal/auth"
	"github.com/authd/authd/internal/observability"
)

// Flow names used in metrics.
const (
	FlowSignIn         = "sign_in"
	FlowRegister       = "register"
	FlowChangePassword = "change_password"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Authenticator is the use-case surface the handlers drive.
type Authenticator interface {
	SignIn(ctx context.Context, req auth.SignInRequest) (*auth.AuthenticationResult, error)
	Register(ctx context.Context, req auth.RegistrationRequest) (*auth.AuthenticationResult, error)
	UpdatePassword(ctx context.Context, req auth.ChangePasswordRequest, bearerToken string) error
}

// Info is the body of GET /.
type Info struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Documentation string `json:"documentation"`
	About         string `json:"about"`
}

// Handler serves the authentication endpoints.
type Handler struct {
	auth    Authenticator
	schemas *Schemas
	metrics *observability.Metrics
	logger  *slog.Logger
	info    Info
}

// SignIn handles POST /v1/auth/sign_in.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req auth.SignInRequest
	if err := h.decode(w, r, DocSignIn, &req); err != nil {
		h.fail(w, r, FlowSignIn, err)
		return
	}

	result, err := h.auth.SignIn(r.Context(), req)
	if err != nil {
		h.fail(w, r, FlowSignIn, err)
		return
	}
	h.metrics.ObserveFlow(FlowSignIn, nil)
	writeJSON(w, http.StatusOK, result)
}

// Register handles POST /v1/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegistrationRequest
	if err := h.decode(w, r, DocRegister, &req); err != nil {
		h.fail(w, r, FlowRegister, err)
		return
	}

	result, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.fail(w, r, FlowRegister, err)
		return
	}
	h.metrics.ObserveFlow(FlowRegister, nil)
	writeJSON(w, http.StatusCreated, result)
}

// ChangePassword handles PUT /v1/auth/change_password. It answers 200 with
// an empty body.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ChangePasswordRequest
	if err := h.decode(w, r, DocChangePassword, &req); err != nil {
		h.fail(w, r, FlowChangePassword, err)
		return
	}

	token, err := BearerToken(r)
	if err != nil {
		h.fail(w, r, FlowChangePassword, err)
		return
	}

	if err := h.auth.UpdatePassword(r.Context(), req, token); err != nil {
		h.fail(w, r, FlowChangePassword, err)
		return
	}
	h.metrics.ObserveFlow(FlowChangePassword, nil)
	w.WriteHeader(http.StatusOK)
}

// Index handles GET /.
func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.info)
}

// Docs handles GET /v1/docs and lists the available documents.
func (h *Handler) Docs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"documents": h.schemas.Names()})
}

// Doc handles GET /v1/docs/{name}.
func (h *Handler) Doc(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.schemas.Document(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, r, h.logger, auth.NotFound("no document named "+chi.URLParam(r, "name")))
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // client may disconnect mid-write
	w.Write(doc)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, h.logger, auth.NotFound("no route for "+r.Method+" "+r.URL.Path))
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorBody{
		Code:    auth.KindInvalidArgument.String(),
		Message: "method " + r.Method + " not allowed",
	})
}

// decode reads the body, checks it against the named schema and unmarshals it
// into dst.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, schema string, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return auth.InvalidArgument("request body unreadable or too large")
	}
	if err := h.schemas.Check(schema, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return auth.InvalidArgument("malformed JSON body")
	}
	return nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, flow string, err error) {
	h.metrics.ObserveFlow(flow, err)
	writeError(w, r, h.logger, err)
}
