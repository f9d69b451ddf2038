package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/deppfellow/askhub/internal/config"
	"github.com/deppfellow/askhub/internal/errs"
	"github.com/deppfellow/askhub/internal/server"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the bearer token into a caller identity. The
// identity is the profile id every transaction runs as.
type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAuth rejects requests without a valid bearer token.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return auth.authenticate(true)(next)
}

// OptionalAuth identifies the caller when a token is present and lets
// anonymous requests through. Invalid tokens are still rejected.
func (auth *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return auth.authenticate(false)(next)
}

func (auth *AuthMiddleware) authenticate(required bool) echo.MiddlewareFunc {
	if auth.server.Config.Auth.Provider == config.AuthProviderJWT {
		return auth.bearerJWT(required)
	}
	return auth.clerkSession(required)
}

// clerkSession verifies Clerk session tokens. Clerk passes requests
// without an Authorization header through untouched, so a missing claim
// means an anonymous caller.
func (auth *AuthMiddleware) clerkSession(required bool) echo.MiddlewareFunc {
	verify := echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(auth.writeUnauthorized)),
		),
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(func(c echo.Context) error {
			claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
			if !ok {
				if required {
					return errs.NewUnauthorizedError("Unauthorized", false)
				}
				return next(c)
			}

			auth.identify(c, claims.Subject)
			return next(c)
		})
	}
}

// bearerJWT verifies HS256 tokens issued for the configured audience.
// The subject claim is the user id.
func (auth *AuthMiddleware) bearerJWT(required bool) echo.MiddlewareFunc {
	cfg := auth.server.Config.Auth
	secret := []byte(cfg.JWTSecret)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(cfg.JWTAudience),
		jwt.WithExpirationRequired(),
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request())
			if !ok {
				if required {
					return errs.NewUnauthorizedError("Unauthorized", false)
				}
				return next(c)
			}

			var claims jwt.RegisteredClaims
			_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
				return secret, nil
			})
			if err != nil || claims.Subject == "" {
				GetLogger(c).Warn().Err(err).Msg("rejected bearer token")
				return errs.NewUnauthorizedError("Invalid or expired token", true)
			}

			auth.identify(c, claims.Subject)
			return next(c)
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get(echo.HeaderAuthorization))
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// identify stores the caller on the echo context and adds it to the
// request logger.
func (auth *AuthMiddleware) identify(c echo.Context, userID string) {
	c.Set(UserIDKey, userID)
	withLogger(c, GetLogger(c).With().Str("user_id", userID).Logger())
}

func (auth *AuthMiddleware) writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.WriteHeader(http.StatusUnauthorized)

	body := errs.NewUnauthorizedError("Unauthorized", false)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		auth.server.Logger.Error().Err(err).Str("function", "RequireAuth").Msg("failed to write JSON response")
		return
	}
	auth.server.Logger.Warn().
		Str("function", "RequireAuth").
		Str("path", r.URL.Path).
		Msg("rejected clerk session token")
}
