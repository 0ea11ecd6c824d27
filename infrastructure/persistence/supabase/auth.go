package supabase

import (
	"context"

	"github.com/supabase-community/supabase-go"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/pkg/auth"
)

// Authenticator resolves access tokens against the supabase auth service
type Authenticator struct {
	client *supabase.Client
}

// NewAuthenticator creates a supabase-backed authenticator
func NewAuthenticator(client *supabase.Client) *Authenticator {
	return &Authenticator{client: client}
}

var _ ports.Authenticator = (*Authenticator)(nil)

// UserID validates the token with the auth service and returns the user id
func (a *Authenticator) UserID(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", auth.ErrMissingToken
	}
	user, err := a.client.Auth.WithToken(token).GetUser()
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	return user.ID.String(), nil
}

// LocalAuthenticator validates supabase-issued JWTs locally without a network
// round trip, using the project's JWT secret.
type LocalAuthenticator struct {
	validator *auth.JWTValidator
}

// NewLocalAuthenticator creates a local JWT authenticator
func NewLocalAuthenticator(validator *auth.JWTValidator) *LocalAuthenticator {
	return &LocalAuthenticator{validator: validator}
}

var _ ports.Authenticator = (*LocalAuthenticator)(nil)

// UserID verifies the token signature and returns the subject claim
func (a *LocalAuthenticator) UserID(_ context.Context, token string) (string, error) {
	return a.validator.Validate(token)
}
