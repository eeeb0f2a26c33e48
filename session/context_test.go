package session

import (
	goerrors "errors"
	"testing"
	"time"

	"duochat/domain"
	"duochat/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, userID string, expiresAt time.Time) string {
	t.Helper()
	claims := Claims{UserID: userID}
	if !expiresAt.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)
	return token
}

func TestParseContext_Extracts_The_Identity(t *testing.T) {
	req := require.New(t)
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, "u1", expiry)

	ctx, err := ParseContext(token)

	req.NoError(err)
	req.Equal(domain.ParticipantID("u1"), ctx.UserID)
	req.Equal(token, ctx.Token)
	req.True(ctx.ExpiresAt.Equal(expiry))
}

func TestParseContext_Accepts_Tokens_Without_Expiry(t *testing.T) {
	req := require.New(t)
	token := signedToken(t, "u1", time.Time{})

	ctx, err := ParseContext(token)

	req.NoError(err)
	req.True(ctx.ExpiresAt.IsZero())
	req.False(ctx.Expired(time.Now()))
}

func TestParseContext_Rejects_Garbage(t *testing.T) {
	req := require.New(t)

	_, err := ParseContext("not.a.token")

	req.True(goerrors.Is(err, errors.ErrInvalidToken))
}

func TestParseContext_Rejects_Tokens_Without_A_User(t *testing.T) {
	req := require.New(t)
	token := signedToken(t, "", time.Now().Add(time.Hour))

	_, err := ParseContext(token)

	req.True(goerrors.Is(err, errors.ErrInvalidToken))
}

func TestExpired_Is_Strictly_Past(t *testing.T) {
	req := require.New(t)
	now := time.Now()

	fresh := Context{ExpiresAt: now.Add(time.Minute)}
	stale := Context{ExpiresAt: now.Add(-time.Minute)}

	req.False(fresh.Expired(now))
	req.True(stale.Expired(now))
}
