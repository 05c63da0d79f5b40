package services

import (
	"context"
	"testing"

	"github.com/emmyxjay/contentFlow-New/internal/generator"
	"github.com/emmyxjay/contentFlow-New/internal/metrics"
	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/prompts"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGeneration(gen generator.ContentGenerator) (*GenerationService, *metrics.Metrics) {
	m := metrics.New()
	return NewGenerationService(gen, m, zap.NewNop()), m
}

func TestGenerateContentRequiresTopic(t *testing.T) {
	gen := &fakeGenerator{reply: "x"}
	svc, m := newGeneration(gen)

	_, err := svc.GenerateContent(context.Background(), prompts.Request{Type: "blog", Topic: "  "})
	assert.ErrorIs(t, err, ErrTopicRequired)
	assert.Empty(t, gen.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationRequests.WithLabelValues(metrics.KindContent, metrics.OutcomeInvalid)))
}

func TestGenerateContentPassthrough(t *testing.T) {
	gen := &fakeGenerator{reply: "<h2>Intro</h2>"}
	svc, m := newGeneration(gen)

	out, err := svc.GenerateContent(context.Background(), prompts.Request{Type: "blog", Topic: "AI tools", Mode: "generate", Length: "short"})
	require.NoError(t, err)
	assert.Equal(t, "<h2>Intro</h2>", out)

	require.Len(t, gen.calls, 1)
	call := gen.calls[0]
	assert.Equal(t, prompts.ContentSystemPrompt, call.System)
	assert.Contains(t, call.Prompt, "500-800 words")
	assert.InDelta(t, 0.7, call.Temperature, 1e-6)
	assert.Equal(t, 2000, call.MaxTokens)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationRequests.WithLabelValues(metrics.KindContent, metrics.OutcomeOK)))
}

func TestGenerateContentUpstreamErrorSurfacesMessage(t *testing.T) {
	gen := &fakeGenerator{err: &generator.UpstreamError{StatusCode: 401, Message: "Incorrect API key provided"}}
	svc, _ := newGeneration(gen)

	_, err := svc.GenerateContent(context.Background(), prompts.Request{Topic: "x"})
	require.Error(t, err)
	assert.Equal(t, "Incorrect API key provided", err.Error())
}

func TestGenerateContentEmptyCompletionIsAnError(t *testing.T) {
	svc, _ := newGeneration(&fakeGenerator{reply: "  \n"})
	_, err := svc.GenerateContent(context.Background(), prompts.Request{Topic: "x"})
	assert.ErrorIs(t, err, generator.ErrEmptyCompletion)
}

func TestGenerateIdeasStripsFences(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n[{\"title\":\"A\",\"keywords\":[\"k\"],\"searchVolume\":1200,\"competition\":\"low\",\"searchIntent\":\"informational\",\"score\":88,\"source\":\"keyword\"},{\"title\":\"B\",\"score\":61}]\n```\n"}
	svc, _ := newGeneration(gen)

	ideas, err := svc.GenerateIdeas(context.Background(), "content marketing")
	require.NoError(t, err)
	require.Len(t, ideas, 2)
	assert.Equal(t, "A", ideas[0].Title)
	assert.Equal(t, 1200, ideas[0].SearchVolume)
	assert.EqualValues(t, 88, ideas[0].Score)

	call := gen.calls[0]
	assert.Equal(t, prompts.IdeasSystemPrompt, call.System)
	assert.Contains(t, call.Prompt, "Generate 4 unique content ideas")
	assert.Equal(t, 1500, call.MaxTokens)
}

func TestGenerateIdeasParseFailure(t *testing.T) {
	svc, m := newGeneration(&fakeGenerator{reply: "Here are some ideas: 1. blogging"})
	_, err := svc.GenerateIdeas(context.Background(), "x")
	assert.ErrorIs(t, err, ErrIdeasParse)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationRequests.WithLabelValues(metrics.KindIdeas, metrics.OutcomeParseError)))
}

func TestGenerateIdeasRequiresTopic(t *testing.T) {
	svc, _ := newGeneration(&fakeGenerator{})
	_, err := svc.GenerateIdeas(context.Background(), "")
	assert.ErrorIs(t, err, ErrTopicRequired)
}

func TestParseIdeas(t *testing.T) {
	ideas, err := ParseIdeas("null")
	require.NoError(t, err)
	assert.NotNil(t, ideas)
	assert.Empty(t, ideas)

	_, err = ParseIdeas(`{"title":"not an array"}`)
	assert.ErrorIs(t, err, ErrIdeasParse)

	// values outside the documented ranges are kept as-is
	ideas, err = ParseIdeas(`[{"title":"x","score":150,"competition":"extreme"}]`)
	require.NoError(t, err)
	assert.EqualValues(t, 150, ideas[0].Score)
}

func TestParseIdeasCoercesFieldTypes(t *testing.T) {
	raw := `[
		{"title":"A","searchVolume":"5000","score":"85","keywords":"seo, content ,"},
		{"title":"B","searchVolume":12500.5,"score":80,"keywords":["x", 7]},
		{"title":"C","searchVolume":"12,000","score":true,"keywords":null},
		"stray",
		{"title":42,"competition":"low"}
	]`
	ideas, err := ParseIdeas(raw)
	require.NoError(t, err)
	require.Len(t, ideas, 4)

	assert.Equal(t, 5000, ideas[0].SearchVolume)
	assert.EqualValues(t, 85, ideas[0].Score)
	assert.Equal(t, []string{"seo", "content"}, ideas[0].Keywords)

	assert.Equal(t, 12501, ideas[1].SearchVolume)
	assert.Equal(t, []string{"x", "7"}, ideas[1].Keywords)

	assert.Equal(t, 12000, ideas[2].SearchVolume)
	assert.Empty(t, ideas[2].Keywords)
	assert.NotNil(t, ideas[2].Keywords)

	assert.Equal(t, "42", ideas[3].Title)
	assert.Equal(t, models.CompetitionLow, ideas[3].Competition)
}

func TestGenerateIdeasEmptyCompletionIsNoIdeas(t *testing.T) {
	svc, _ := newGeneration(&fakeGenerator{reply: "  "})
	ideas, err := svc.GenerateIdeas(context.Background(), "x")
	require.NoError(t, err)
	assert.NotNil(t, ideas)
	assert.Empty(t, ideas)
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, "[1]", StripCodeFences("```json\n[1]\n```"))
	assert.Equal(t, "[1]", StripCodeFences("```[1]```"))
	assert.Equal(t, "[1]", StripCodeFences("  [1]  "))
}
