package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	tok, exp, err := m.Issue("user-1", "workspace-1", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	c, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UserID)
	assert.Equal(t, "workspace-1", c.WorkspaceID)
	assert.Equal(t, "admin", c.Role)
}

func TestVerifyExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	base := time.Now()
	m.now = func() time.Time { return base }
	tok, _, err := m.Issue("u", "w", "editor")
	require.NoError(t, err)

	m.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsOtherSecretAndGarbage(t *testing.T) {
	tok, _, err := NewTokenManager("a", time.Hour).Issue("u", "w", "admin")
	require.NoError(t, err)

	_, err = NewTokenManager("b", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenManager("a", time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRequiresWorkspace(t *testing.T) {
	claims := &Claims{
		UserID: "u",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s"))
	require.NoError(t, err)

	_, err = NewTokenManager("s", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
