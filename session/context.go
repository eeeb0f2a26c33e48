// Package session holds the authenticated session: the participant
// identity carried by the token and the external key-value store the
// engine reads it from.
package session

import (
	"duochat/domain"
	"duochat/errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the data the server signs into the session token.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Context is the read-only input to the engine: who is authenticated and
// with which token.
type Context struct {
	UserID    domain.ParticipantID
	Token     string
	ExpiresAt time.Time
}

// ParseContext extracts the session identity from a token. The client
// holds no signing secret, so the claims are read unverified; signature
// validation is the server's job on every call.
func ParseContext(token string) (Context, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Context{}, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return Context{}, fmt.Errorf("%w: missing user id claim", errors.ErrInvalidToken)
	}

	ctx := Context{
		UserID: domain.ParticipantID(claims.UserID),
		Token:  token,
	}
	if claims.ExpiresAt != nil {
		ctx.ExpiresAt = claims.ExpiresAt.Time
	}
	return ctx, nil
}

// Expired reports whether the token carries an expiry in the past.
func (c Context) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}
