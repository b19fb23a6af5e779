// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/oops"

	"github.com/authd/authd/internal/observability"
)

// RouterDeps collects what NewRouter needs.
type RouterDeps struct {
	Auth    Authenticator
	Schemas *Schemas
	// Metrics may be nil.
	Metrics *observability.Metrics
	Logger  *slog.Logger
	CORS    CORSConfig
	Info    Info
}

// NewRouter builds the public API.
//
// Middleware order, outermost first:
//
//	RequestID -> Trace -> AccessLog -> Recover -> CORS
func NewRouter(deps RouterDeps) (http.Handler, error) {
	if deps.Auth == nil {
		return nil, oops.Code("WEB_INVALID_ROUTER").Errorf("authenticator is required")
	}
	if deps.Schemas == nil {
		return nil, oops.Code("WEB_INVALID_ROUTER").Errorf("schemas are required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	cors, err := CORS(deps.CORS)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		auth:    deps.Auth,
		schemas: deps.Schemas,
		metrics: deps.Metrics,
		logger:  deps.Logger,
		info:    deps.Info,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Trace)
	r.Use(AccessLog(deps.Logger, deps.Metrics))
	r.Use(Recover(deps.Logger))
	r.Use(cors)

	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.methodNotAllowed)

	r.Get("/", h.Index)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(contentTypeJSON)
			r.Post("/sign_in", h.SignIn)
			r.Post("/register", h.Register)
			r.Put("/change_password", h.ChangePassword)
		})

		r.Get("/docs", h.Docs)
		r.Get("/docs/{name}", h.Doc)
	})

	return r, nil
}
