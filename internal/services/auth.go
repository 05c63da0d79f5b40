package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emmyxjay/contentFlow-New/internal/auth"
	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthResult struct {
	Token     string            `json:"token"`
	ExpiresAt int64             `json:"expiresAt"`
	User      *models.User      `json:"user"`
	Workspace *models.Workspace `json:"workspace"`
}

type AuthService struct {
	users      repository.UserRepository
	workspaces repository.WorkspaceRepository
	tokens     *auth.TokenManager
	hashCost   int
	log        *zap.Logger
	now        clock
	newID      func() string
}

func NewAuthService(users repository.UserRepository, workspaces repository.WorkspaceRepository, tokens *auth.TokenManager, hashCost int, logger *zap.Logger) *AuthService {
	if hashCost < bcrypt.MinCost {
		hashCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users: users, workspaces: workspaces, tokens: tokens, hashCost: hashCost,
		log: logger, now: utcNow, newID: newID,
	}
}

// Signup creates an admin user together with a workspace of their own.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &models.User{
		ID:           s.newID(),
		Email:        email,
		Name:         name,
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	ws := &models.Workspace{
		ID:        s.newID(),
		Name:      name + "'s Workspace",
		OwnerID:   user.ID,
		CreatedAt: now,
	}
	user.WorkspaceID = ws.ID

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	if err := s.workspaces.Create(ctx, ws); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	s.log.Info("user signed up", zap.String("user_id", user.ID), zap.String("workspace_id", ws.ID))
	return s.issue(user, ws)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	ws, err := s.workspaces.GetByID(ctx, user.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("load workspace: %w", err)
	}
	return s.issue(user, ws)
}

func (s *AuthService) issue(user *models.User, ws *models.Workspace) (*AuthResult, error) {
	tok, exp, err := s.tokens.Issue(user.ID, ws.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: tok, ExpiresAt: exp.Unix(), User: user, Workspace: ws}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) Workspace(ctx context.Context, workspaceID string) (*models.Workspace, error) {
	return s.workspaces.GetByID(ctx, workspaceID)
}

// Onboard stores the niche picked during onboarding.
func (s *AuthService) Onboard(ctx context.Context, workspaceID, niche, description string) (*models.Workspace, error) {
	niche = strings.TrimSpace(niche)
	if niche == "" {
		return nil, invalid("niche is required")
	}
	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	ws.Niche = niche
	if description != "" {
		ws.Description = description
	}
	if err := s.workspaces.Update(ctx, ws); err != nil {
		return nil, fmt.Errorf("update workspace: %w", err)
	}
	return ws, nil
}
