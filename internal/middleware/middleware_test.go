package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/askhub/internal/config"
	"github.com/deppfellow/askhub/internal/errs"
	"github.com/deppfellow/askhub/internal/server"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Logger: &logger,
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Auth: config.AuthConfig{
				Provider:    config.AuthProviderJWT,
				JWTSecret:   testSecret,
				JWTAudience: "authenticated",
			},
		},
	}
}

func signToken(t *testing.T, claims jwt.RegisteredClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(sub string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   sub,
		Audience:  jwt.ClaimStrings{"authenticated"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

// serve runs a request through mw and the global error handler and
// returns the recorder plus the user id the handler saw.
func serve(t *testing.T, s *server.Server, mw echo.MiddlewareFunc, authorization string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler

	var seen string
	e.GET("/whoami", func(c echo.Context) error {
		seen = GetUserID(c)
		return c.String(http.StatusOK, seen)
	}, mw)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestRequireAuthJWT(t *testing.T) {
	s := newTestServer()
	auth := NewAuthMiddleware(s)

	expired := validClaims("user_1")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	wrongAudience := validClaims("user_1")
	wrongAudience.Audience = jwt.ClaimStrings{"other"}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{name: "valid", header: "Bearer " + signToken(t, validClaims("user_1"), testSecret), wantStatus: http.StatusOK, wantUser: "user_1"},
		{name: "lowercase scheme", header: "bearer " + signToken(t, validClaims("user_1"), testSecret), wantStatus: http.StatusOK, wantUser: "user_1"},
		{name: "missing", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signToken(t, validClaims("user_1"), "nope"), wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signToken(t, expired, testSecret), wantStatus: http.StatusUnauthorized},
		{name: "wrong audience", header: "Bearer " + signToken(t, wrongAudience, testSecret), wantStatus: http.StatusUnauthorized},
		{name: "no subject", header: "Bearer " + signToken(t, validClaims(""), testSecret), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, seen := serve(t, s, auth.RequireAuth, tt.header)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, seen)
		})
	}
}

func TestOptionalAuthJWT(t *testing.T) {
	s := newTestServer()
	auth := NewAuthMiddleware(s)

	rec, seen := serve(t, s, auth.OptionalAuth, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, seen)

	rec, seen = serve(t, s, auth.OptionalAuth, "Bearer "+signToken(t, validClaims("user_2"), testSecret))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user_2", seen)

	rec, _ = serve(t, s, auth.OptionalAuth, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGlobalErrorHandlerEnvelope(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "http error", err: errs.NewConflictError("taken", true, errs.Code("RESPONSE_ALREADY_EXISTS")), wantStatus: http.StatusConflict, wantCode: "RESPONSE_ALREADY_EXISTS"},
		{name: "route not found", err: echo.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "method not allowed", err: echo.ErrMethodNotAllowed, wantStatus: http.StatusMethodNotAllowed, wantCode: "METHOD_NOT_ALLOWED"},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
			e.GET("/fail", func(c echo.Context) error { return tt.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			var body errs.HTTPError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body.Code)
			}
		})
	}
}

func TestRequestIDIsReusedOrGenerated(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Body.String(), 36)
	assert.Equal(t, rec.Body.String(), rec.Header().Get(RequestIDHeader))
}

func TestContextEnhancerExposesLoggerToContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	s := newTestServer()
	s.Logger = &logger

	e := echo.New()
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext())
	e.GET("/posts", func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("listing")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Contains(t, buf.String(), `"path":"/posts"`)
}

func TestMetricsCountsByRouteAndStatus(t *testing.T) {
	m := NewMetricsMiddleware()
	s := newTestServer()
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(m.Collect())
	e.GET("/posts/:id", func(c echo.Context) error {
		return errs.NewNotFoundError("Post not found", true, nil)
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	for i := 0; i < 2; i++ {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, fmt.Sprintf("/posts/%d", i), nil))
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Contains(t, rec.Body.String(), `askhub_http_requests_total{method="GET",route="/posts/:id",status="404"} 2`)
}
