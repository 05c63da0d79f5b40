package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/generator"
	"github.com/emmyxjay/contentFlow-New/internal/metrics"
	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/prompts"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const (
	contentTemperature = 0.7
	contentMaxTokens   = 2000
	ideasTemperature   = 0.8
	ideasMaxTokens     = 1500
)

// GenerationService builds prompts and forwards them to the completion
// service. Nothing it produces is persisted.
type GenerationService struct {
	gen     generator.ContentGenerator
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewGenerationService(gen generator.ContentGenerator, m *metrics.Metrics, logger *zap.Logger) *GenerationService {
	return &GenerationService{gen: gen, metrics: m, log: logger}
}

func (s *GenerationService) GenerateContent(ctx context.Context, req prompts.Request) (string, error) {
	if strings.TrimSpace(req.Topic) == "" {
		s.observe(metrics.KindContent, metrics.OutcomeInvalid, 0)
		return "", ErrTopicRequired
	}

	start := time.Now()
	out, err := s.gen.Complete(ctx, generator.CompletionRequest{
		System:      prompts.ContentSystemPrompt,
		Prompt:      prompts.Build(req),
		Temperature: contentTemperature,
		MaxTokens:   contentMaxTokens,
	})
	if err == nil && strings.TrimSpace(out) == "" {
		err = generator.ErrEmptyCompletion
	}
	if err != nil {
		s.observe(metrics.KindContent, metrics.OutcomeUpstreamError, time.Since(start))
		s.log.Error("generate content failed",
			zap.String("type", req.Type), zap.String("mode", req.Mode), zap.Error(err))
		return "", err
	}
	s.observe(metrics.KindContent, metrics.OutcomeOK, time.Since(start))
	return out, nil
}

func (s *GenerationService) GenerateIdeas(ctx context.Context, topic string) ([]models.IdeaDraft, error) {
	if strings.TrimSpace(topic) == "" {
		s.observe(metrics.KindIdeas, metrics.OutcomeInvalid, 0)
		return nil, ErrTopicRequired
	}

	start := time.Now()
	raw, err := s.gen.Complete(ctx, generator.CompletionRequest{
		System:      prompts.IdeasSystemPrompt,
		Prompt:      prompts.Ideas(topic, prompts.DefaultIdeaCount),
		Temperature: ideasTemperature,
		MaxTokens:   ideasMaxTokens,
	})
	if err != nil {
		s.observe(metrics.KindIdeas, metrics.OutcomeUpstreamError, time.Since(start))
		s.log.Error("generate ideas failed", zap.String("topic", topic), zap.Error(err))
		return nil, err
	}

	ideas, err := ParseIdeas(raw)
	if err != nil {
		s.observe(metrics.KindIdeas, metrics.OutcomeParseError, time.Since(start))
		s.log.Warn("ideas response is not a JSON array", zap.String("topic", topic), zap.Error(err))
		return nil, err
	}
	s.observe(metrics.KindIdeas, metrics.OutcomeOK, time.Since(start))
	return ideas, nil
}

func (s *GenerationService) observe(kind, outcome string, took time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveGeneration(kind, outcome, took)
	}
}

// StripCodeFences removes markdown code fences the model sometimes wraps
// JSON in, then trims surrounding whitespace.
func StripCodeFences(s string) string {
	for _, fence := range []string{"```json\n", "```json", "```\n", "```"} {
		s = strings.ReplaceAll(s, fence, "")
	}
	return strings.TrimSpace(s)
}

// ParseIdeas decodes a completion into idea drafts. Only the JSON shape is
// checked: the top level must be an array. Field values are coerced where
// the model used another JSON type (a quoted number, a keyword string) and
// are otherwise taken as they come. An empty completion is no ideas.
func ParseIdeas(raw string) ([]models.IdeaDraft, error) {
	body := StripCodeFences(raw)
	if body == "" {
		return []models.IdeaDraft{}, nil
	}
	var items []any
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdeasParse, err)
	}
	ideas := make([]models.IdeaDraft, 0, len(items))
	for _, it := range items {
		obj, ok := it.(map[string]any)
		if !ok {
			continue
		}
		ideas = append(ideas, draftFrom(obj))
	}
	return ideas, nil
}

func draftFrom(obj map[string]any) models.IdeaDraft {
	return models.IdeaDraft{
		Title:        looseString(obj["title"]),
		Description:  looseString(obj["description"]),
		Keywords:     looseKeywords(obj["keywords"]),
		SearchVolume: int(math.Round(looseNumber(obj["searchVolume"]))),
		Competition:  models.Competition(looseString(obj["competition"])),
		SearchIntent: models.SearchIntent(looseString(obj["searchIntent"])),
		Score:        looseNumber(obj["score"]),
		Source:       models.IdeaSource(looseString(obj["source"])),
	}
}

func looseString(v any) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// looseNumber accepts numbers and numeric strings such as "5000" or
// "12,500"; anything else is 0.
func looseNumber(v any) float64 {
	if s, ok := v.(string); ok {
		v = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}

func looseKeywords(v any) []string {
	switch k := v.(type) {
	case string:
		return prompts.ParseKeywords(k)
	case []any:
		out := make([]string, 0, len(k))
		for _, item := range k {
			if s := looseString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}
