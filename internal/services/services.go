// Package services holds the workspace-scoped business logic behind the
// HTTP handlers.
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTopicRequired      = errors.New("topic is required")
	ErrIdeasParse         = errors.New("failed to parse ideas")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrStorageUnavailable = errors.New("object storage is not configured")
	ErrUnsupportedMedia   = errors.New("unsupported media")
)

// clock and id sources, replaced in tests.
type clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

func newID() string { return uuid.NewString() }
