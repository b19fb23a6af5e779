// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Token parameters for tokens issued by sign-in and registration.
const (
	TokenAudience = "authentication_user"
	TokenTTL      = 120 * time.Minute
)

var tracer = otel.Tracer("github.com/authd/authd/internal/auth")

// Service drives the authentication pipelines for external requests.
type Service struct {
	users  UserRepository
	hasher PasswordHasher
	ids    IDGenerator
	tokens TokenService
	logger *slog.Logger
}

// ServiceOption configures optional Service dependencies.
type ServiceOption func(*Service)

// WithLogger sets the logger used for flow outcomes.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new Service.
func NewService(users UserRepository, hasher PasswordHasher, ids IDGenerator, tokens TokenService, opts ...ServiceOption) (*Service, error) {
	if users == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("user repository is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("password hasher is required")
	}
	if ids == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("id generator is required")
	}
	if tokens == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("token service is required")
	}

	s := &Service{
		users:  users,
		hasher: hasher,
		ids:    ids,
		tokens: tokens,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("logger must not be nil")
	}
	return s, nil
}

// SignIn authenticates a user and issues a token.
func (s *Service) SignIn(ctx context.Context, req SignInRequest) (*AuthenticationResult, error) {
	ctx, span := tracer.Start(ctx, "auth.SignIn")
	defer span.End()

	result, err := s.signIn(ctx, req)
	return result, s.finish(ctx, span, "sign_in", err)
}

func (s *Service) signIn(ctx context.Context, req SignInRequest) (*AuthenticationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	draft, err := req.Draft()
	if err != nil {
		return nil, err
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("auth.lookup_column", draft.Key.Column.String()))

	lookedUp, err := NewSignIn(s.users, draft).Lookup(ctx)
	if err != nil {
		return nil, err
	}
	checked, err := lookedUp.CheckPassword(s.hasher)
	if err != nil {
		return nil, err
	}
	user := checked.Respond()

	token, err := s.issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthenticationResult{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Token:    token,
	}, nil
}

// Register creates a user and issues a token.
func (s *Service) Register(ctx context.Context, req RegistrationRequest) (*AuthenticationResult, error) {
	ctx, span := tracer.Start(ctx, "auth.Register")
	defer span.End()

	result, err := s.register(ctx, req)
	if err == nil {
		s.logger.InfoContext(ctx, "user registered", "user_id", result.ID)
	}
	return result, s.finish(ctx, span, "register", err)
}

func (s *Service) register(ctx context.Context, req RegistrationRequest) (*AuthenticationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	draft, err := req.Draft()
	if err != nil {
		return nil, err
	}

	encrypted, err := NewRegistration(s.users, draft).EncryptPassword(s.hasher)
	if err != nil {
		return nil, err
	}
	stored, err := encrypted.AssignID(s.ids).Store(ctx)
	if err != nil {
		return nil, err
	}
	id := stored.Respond()

	token, err := s.issue(id)
	if err != nil {
		return nil, err
	}

	return &AuthenticationResult{
		ID:       id,
		Username: req.Username,
		Name:     req.Name,
		Token:    token,
	}, nil
}

// UpdatePassword changes the password of the profile owning bearerToken.
func (s *Service) UpdatePassword(ctx context.Context, req ChangePasswordRequest, bearerToken string) error {
	ctx, span := tracer.Start(ctx, "auth.UpdatePassword")
	defer span.End()

	return s.finish(ctx, span, "change_password", s.updatePassword(ctx, req, bearerToken))
}

func (s *Service) updatePassword(ctx context.Context, req ChangePasswordRequest, bearerToken string) error {
	claims, err := s.tokens.Verify(bearerToken)
	if err != nil {
		return wrapAs(KindUnauthenticated, "verify token", err)
	}
	if claims.Audience != TokenAudience {
		return Unauthenticated("Given token is not valid for this service")
	}
	if claims.Subject != req.ProfileID {
		return PermissionDenied("Given token not have permission for this profile")
	}

	if err := req.Validate(); err != nil {
		return err
	}

	fetched, err := NewPasswordChange(s.users, req.Draft()).FetchUser(ctx)
	if err != nil {
		return err
	}
	checked, err := fetched.CheckOldPassword(s.hasher)
	if err != nil {
		return err
	}
	encrypted, err := checked.EncryptNewPassword(s.hasher)
	if err != nil {
		return err
	}
	_, err = encrypted.Save(ctx)
	return err
}

func (s *Service) issue(subject string) (string, error) {
	token, err := s.tokens.Issue(subject, TokenAudience, TokenTTL)
	if err != nil {
		return "", wrapAs(KindInternal, "issue token", err)
	}
	return token, nil
}

// finish records the flow outcome on the span and in the debug log.
func (s *Service) finish(ctx context.Context, span trace.Span, flow string, err error) error {
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return nil
	}
	kind := KindOf(err)
	span.SetAttributes(attribute.String("auth.error_kind", kind.String()))
	span.SetStatus(codes.Error, kind.String())
	s.logger.DebugContext(ctx, "authentication flow failed",
		"flow", flow,
		"kind", kind.String(),
		"error", err.Error(),
	)
	return err
}
