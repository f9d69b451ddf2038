package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/askhub/internal/config"
	"github.com/deppfellow/askhub/internal/server"
)

// AuthService configures the identity provider backing the API.
type AuthService struct {
	server *server.Server
}

// NewAuthService installs the Clerk secret key when Clerk verifies
// session tokens. The jwt provider needs no global setup.
func NewAuthService(s *server.Server) *AuthService {
	if s.Config.Auth.Provider == config.AuthProviderClerk {
		clerk.SetKey(s.Config.Auth.SecretKey)
	}
	return &AuthService{
		server: s,
	}
}

// Provider reports which token verifier is active.
func (a *AuthService) Provider() string {
	return a.server.Config.Auth.Provider
}
