package jwtauth

import (
	"context"
	"testing"
	"time"

	"pet-adoption/internal/models"
	"pet-adoption/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := New("test-secret", time.Hour)
	ctx := context.Background()

	tok, err := m.Issue(ctx, auth.Claims{UserID: "u1", Email: "a@b.co", Role: models.RoleModerator})
	require.NoError(t, err)
	assert.Greater(t, len(tok), 10)

	c, err := m.Verify(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "u1", Email: "a@b.co", Role: models.RoleModerator}, c)
}

func TestVerify_Expired(t *testing.T) {
	m := New("test-secret", time.Minute)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }

	tok, err := m.Issue(context.Background(), auth.Claims{UserID: "u1"})
	require.NoError(t, err)

	m.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = m.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_WrongSecretAndGarbage(t *testing.T) {
	tok, err := New("one", time.Hour).Issue(context.Background(), auth.Claims{UserID: "u1"})
	require.NoError(t, err)

	_, err = New("two", time.Hour).Verify(context.Background(), tok)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = New("one", time.Hour).Verify(context.Background(), "not.a.jwt")
	assert.Error(t, err)

	_, err = New("one", time.Hour).Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}

func TestIssue_RequiresSecretAndSubject(t *testing.T) {
	_, err := New("", time.Hour).Issue(context.Background(), auth.Claims{UserID: "u1"})
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = New("s", time.Hour).Issue(context.Background(), auth.Claims{})
	assert.Error(t, err)
}

func TestVerify_UnknownRoleFallsBackToUser(t *testing.T) {
	m := New("s", time.Hour)
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "superuser",
	})
	tok, err := raw.SignedString([]byte("s"))
	require.NoError(t, err)

	c, err := m.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, c.Role)
}
