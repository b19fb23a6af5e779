// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package web_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/authd/authd/internal/auth"
	"github.com/authd/authd/internal/observability"
	"github.com/authd/authd/internal/web"
)

const (
	testID       = "77285939-bdaa-4c5f-9805-3873fca3396e"
	testUsername = "john.doe"
	testName     = "John Doe"
	testToken    = "header.payload.signature"
)

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) SignIn(ctx context.Context, req auth.SignInRequest) (*auth.AuthenticationResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*auth.AuthenticationResult)
	return res, args.Error(1)
}

func (m *mockAuthenticator) Register(ctx context.Context, req auth.RegistrationRequest) (*auth.AuthenticationResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*auth.AuthenticationResult)
	return res, args.Error(1)
}

func (m *mockAuthenticator) UpdatePassword(ctx context.Context, req auth.ChangePasswordRequest, bearerToken string) error {
	args := m.Called(ctx, req, bearerToken)
	return args.Error(0)
}

type testRouter struct {
	auth    *mockAuthenticator
	handler http.Handler
	metrics *observability.Metrics
	logs    *bytes.Buffer
}

func newTestRouter(t *testing.T) *testRouter {
	t.Helper()

	schemas, err := web.NewSchemas()
	require.NoError(t, err)

	authn := &mockAuthenticator{}
	t.Cleanup(func() { authn.AssertExpectations(t) })

	logs := &bytes.Buffer{}
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	handler, err := web.NewRouter(web.RouterDeps{
		Auth:    authn,
		Schemas: schemas,
		Metrics: metrics,
		Logger:  slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		CORS: web.CORSConfig{
			AllowedOrigins: []string{"http://localhost:8080", "https://*.example.com"},
			MaxAge:         3600,
		},
		Info: web.Info{Name: "authd", Version: "1.2.3", Documentation: "/v1/docs", About: "user authentication"},
	})
	require.NoError(t, err)

	return &testRouter{auth: authn, handler: handler, metrics: metrics, logs: logs}
}

func (tr *testRouter) do(method, target, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)
	return rec
}

func ptr[T any](v T) *T { return &v }

func testResult() *auth.AuthenticationResult {
	return &auth.AuthenticationResult{ID: testID, Username: testUsername, Name: testName, Token: testToken}
}

const signInBody = `{"username":"john.doe","password":"12345678"}`

const registerBody = `{
	"name": "John Doe",
	"username": "john.doe",
	"birth_date": "1999-12-31",
	"gender_id": 1,
	"password": "12345678",
	"password_repetition": "12345678",
	"address_street": "153 W 57th St",
	"address_neighborhood": "manhattan",
	"address_city_id": 4,
	"address_postal_code": 10019,
	"email": "johndoe@company.com",
	"telephone": "+1 415 237 0800"
}`

const changePasswordBody = `{
	"profile_id": "77285939-bdaa-4c5f-9805-3873fca3396e",
	"old_password": "12345678",
	"password": "87654321",
	"password_repetition": "87654321"
}`
