package client

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/liftlog/liftlog-go/client/auth/transport"
	"github.com/liftlog/liftlog-go/schema"
)

// SignIn exchanges email and password for fresh credentials and the account
// profile. The endpoint is public: no credential is attached and an
// unauthorized response is surfaced as a domain error, never as expiry.
func (c *Client) SignIn(ctx context.Context, email, password string) (*schema.AuthResponse, error) {
	out := &schema.AuthResponse{}
	payload := &schema.SignInRequest{Email: email, Password: password}
	if err := c.do(transport.WithPublic(ctx), http.MethodPost, "/auth/signin", payload, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SignUp registers a new account and returns the created profile. It does
// not authenticate; the session follows up with a sign-in.
func (c *Client) SignUp(ctx context.Context, name, email, password string) (*schema.User, error) {
	out := &schema.User{}
	payload := &schema.SignUpRequest{Name: name, Email: email, Password: password}
	if err := c.do(transport.WithPublic(ctx), http.MethodPost, "/auth/signup", payload, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Refresh trades a refresh token for a new credential pair. It satisfies
// transport.Exchange, which is how the renewal coordinator reaches it.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	out := &schema.Credentials{}
	payload := &schema.RefreshRequest{RefreshToken: refreshToken}
	if err := c.do(transport.WithPublic(ctx), http.MethodPost, "/auth/refresh", payload, out); err != nil {
		return nil, err
	}
	return out.Token(), nil
}

// SignOut asks the server to invalidate the current credentials. Callers
// treat it as best effort: local sign-out proceeds regardless.
func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/signout", nil, nil)
}
