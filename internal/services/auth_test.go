package services

import (
	"context"
	"testing"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/auth"
	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService() (*AuthService, *auth.TokenManager) {
	store := repository.NewMemoryStore()
	tm := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(store.Users, store.Workspaces, tm, bcrypt.MinCost, zap.NewNop()), tm
}

func TestSignupAndLogin(t *testing.T) {
	svc, tm := newAuthService()
	ctx := context.Background()

	res, err := svc.Signup(ctx, "Ada", " Ada@Example.com ", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Equal(t, models.RoleAdmin, res.User.Role)
	assert.Equal(t, "Ada's Workspace", res.Workspace.Name)
	assert.Equal(t, res.Workspace.ID, res.User.WorkspaceID)
	assert.Equal(t, res.User.ID, res.Workspace.OwnerID)

	claims, err := tm.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, res.Workspace.ID, claims.WorkspaceID)

	again, err := svc.Login(ctx, "ADA@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, again.User.ID)

	_, err = svc.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	_, err := svc.Signup(ctx, "A", "a@example.com", "password1")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, "B", "A@example.com", "password2")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestOnboardAndMe(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	res, err := svc.Signup(ctx, "A", "a@example.com", "password1")
	require.NoError(t, err)

	_, err = svc.Onboard(ctx, res.Workspace.ID, "  ", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	ws, err := svc.Onboard(ctx, res.Workspace.ID, "Fitness", "Coaching content")
	require.NoError(t, err)
	assert.Equal(t, "Fitness", ws.Niche)

	got, err := svc.Workspace(ctx, res.Workspace.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coaching content", got.Description)

	me, err := svc.Me(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", me.Email)
}
