package services

import (
	"context"
	"fmt"

	"github.com/emmyxjay/contentFlow-New/internal/events"
	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/repository"
	"go.uber.org/zap"
)

type IdeaService struct {
	repo   repository.IdeaRepository
	gen    *GenerationService
	events events.Publisher
	log    *zap.Logger
	now    clock
	newID  func() string
}

func NewIdeaService(repo repository.IdeaRepository, gen *GenerationService, pub events.Publisher, logger *zap.Logger) *IdeaService {
	return &IdeaService{repo: repo, gen: gen, events: pub, log: logger, now: utcNow, newID: newID}
}

// Add stores a draft as a new idea with a fresh id and creation time.
func (s *IdeaService) Add(ctx context.Context, workspaceID string, d models.IdeaDraft) (*models.ContentIdea, error) {
	idea := d.ToIdea(workspaceID)
	idea.ID = s.newID()
	idea.CreatedAt = s.now()
	if idea.Keywords == nil {
		idea.Keywords = []string{}
	}
	if err := s.repo.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}
	events.Emit(ctx, s.events, s.log, events.Event{
		Type: events.IdeaCreated, WorkspaceID: workspaceID, EntityID: idea.ID, OccurredAt: idea.CreatedAt, Data: idea,
	})
	return idea, nil
}

func (s *IdeaService) List(ctx context.Context, workspaceID string) ([]*models.ContentIdea, error) {
	return s.repo.List(ctx, workspaceID)
}

func (s *IdeaService) Remove(ctx context.Context, workspaceID, id string) error {
	return s.repo.Delete(ctx, workspaceID, id)
}

// GenerateAndSave asks the completion service for ideas on topic and stores
// every one of them in the workspace. The batch is all or nothing: if one
// idea fails to store, the ones already stored are removed again.
func (s *IdeaService) GenerateAndSave(ctx context.Context, workspaceID, topic string) ([]*models.ContentIdea, error) {
	drafts, err := s.gen.GenerateIdeas(ctx, topic)
	if err != nil {
		return nil, err
	}
	saved := make([]*models.ContentIdea, 0, len(drafts))
	for _, d := range drafts {
		idea, err := s.Add(ctx, workspaceID, d)
		if err != nil {
			s.rollback(ctx, workspaceID, saved)
			return nil, err
		}
		saved = append(saved, idea)
	}
	return saved, nil
}

func (s *IdeaService) rollback(ctx context.Context, workspaceID string, saved []*models.ContentIdea) {
	ctx = context.WithoutCancel(ctx)
	for _, idea := range saved {
		if err := s.repo.Delete(ctx, workspaceID, idea.ID); err != nil {
			s.log.Error("rollback idea", zap.String("idea_id", idea.ID), zap.Error(err))
		}
	}
}
