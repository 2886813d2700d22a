package schema

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Credentials is the token payload returned by the sign-in, sign-up and
// renewal endpoints.
type Credentials struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn,omitempty"`
}

// Token converts wire credentials into an oauth2 token. Expiry comes from
// expiresIn when present, otherwise from the access token's exp claim parsed
// without signature verification (the client has no verification key and
// only uses expiry as a renewal hint).
func (c *Credentials) Token() *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    "Bearer",
	}
	if c.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(c.ExpiresIn) * time.Second)
		return token
	}
	if expiry, ok := tokenExpiry(c.AccessToken); ok {
		token.Expiry = expiry
	}
	return token
}

func tokenExpiry(accessToken string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, false
	}
	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return time.Time{}, false
	}
	return expiresAt.Time, true
}
