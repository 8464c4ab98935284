package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ripple/internal/domain/entity"
	"ripple/internal/domain/service"
	"ripple/pkg/errors"
)

type stubAI struct {
	calls    int
	analysis *entity.ReliefAnalysis
	err      error
}

func (s *stubAI) Analyze(context.Context, entity.RecommendationRequest) (*entity.ReliefAnalysis, error) {
	s.calls++
	return s.analysis, s.err
}

func TestRecommendCachesSuccessfulAnalysis(t *testing.T) {
	ai := &stubAI{analysis: &entity.ReliefAnalysis{Summary: "ok"}}
	cache := newMemCache()
	uc := NewRecommendationUseCase(ai, cache)
	ctx := context.Background()

	first, err := uc.Recommend(ctx, entity.RecommendationRequest{Description: "Flood in  the valley"})
	require.NoError(t, err)
	second, err := uc.Recommend(ctx, entity.RecommendationRequest{Description: "flood in the VALLEY "})
	require.NoError(t, err)

	assert.Equal(t, 1, ai.calls)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestRecommendDoesNotCacheFallback(t *testing.T) {
	ai := &stubAI{analysis: service.FallbackAnalysis()}
	cache := newMemCache()
	uc := NewRecommendationUseCase(ai, cache)
	ctx := context.Background()

	analysis, err := uc.Recommend(ctx, entity.RecommendationRequest{Description: "earthquake"})
	require.NoError(t, err)
	assert.Equal(t, service.FallbackNote, analysis.Note)
	assert.Zero(t, cache.sets)
}

func TestRecommendMapsProviderErrors(t *testing.T) {
	ctx := context.Background()
	req := entity.RecommendationRequest{Description: "storm"}

	uc := NewRecommendationUseCase(&stubAI{err: service.ErrNotConfigured}, newMemCache())
	_, err := uc.Recommend(ctx, req)
	assert.True(t, errors.Is(err, errors.CodeUnavailable))

	uc = NewRecommendationUseCase(&stubAI{err: &service.UpstreamError{StatusCode: 500, Message: "boom"}}, newMemCache())
	_, err = uc.Recommend(ctx, req)
	assert.True(t, errors.Is(err, errors.CodeBadGateway))

	uc = NewRecommendationUseCase(&stubAI{err: fmt.Errorf("weird")}, newMemCache())
	_, err = uc.Recommend(ctx, req)
	assert.True(t, errors.Is(err, errors.CodeInternal))

	_, err = uc.Recommend(ctx, entity.RecommendationRequest{Description: "   "})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}
