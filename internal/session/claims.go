package session

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

// TokenInfo is the unverified content of a JWT access token
type TokenInfo struct {
	Subject   string
	Issuer    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that lies before now
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// InspectToken decodes the claims of a JWT without verifying its signature.
// The token is only displayed to the user; the API remains the authority.
func InspectToken(raw string) (TokenInfo, error) {
	tok, err := jwt.ParseString(raw, jwt.WithVerify(false), jwt.WithValidate(false))
	if err != nil {
		return TokenInfo{}, fmt.Errorf("session: token is not a JWT: %w", err)
	}

	info := TokenInfo{
		Subject:   tok.Subject(),
		Issuer:    tok.Issuer(),
		IssuedAt:  tok.IssuedAt(),
		ExpiresAt: tok.Expiration(),
	}
	if v, ok := tok.Get("email"); ok {
		if email, ok := v.(string); ok {
			info.Email = email
		}
	}
	return info, nil
}
