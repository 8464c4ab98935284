package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"strings"
	"time"

	"ripple/internal/domain/entity"
	"ripple/internal/domain/service"
	"ripple/pkg/errors"
	"ripple/pkg/logger"
)

const recommendationTTL = 24 * time.Hour

type RecommendationUseCase struct {
	ai    service.RecommendationService
	cache Cache
}

func NewRecommendationUseCase(ai service.RecommendationService, cache Cache) *RecommendationUseCase {
	return &RecommendationUseCase{
		ai:    ai,
		cache: cache,
	}
}

func (uc *RecommendationUseCase) Recommend(ctx context.Context, req entity.RecommendationRequest) (*entity.ReliefAnalysis, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, errors.BadRequest("Description is required", nil)
	}

	key := recommendationKey(req)
	var cached entity.ReliefAnalysis
	if hit, err := uc.cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Warn("Recommendation cache read failed: %v", err)
	} else if hit {
		return &cached, nil
	}

	analysis, err := uc.ai.Analyze(ctx, req)
	if err != nil {
		var upstream *service.UpstreamError
		switch {
		case stderrors.Is(err, service.ErrNotConfigured):
			return nil, errors.Unavailable("AI recommendations are not configured", err)
		case stderrors.As(err, &upstream):
			return nil, errors.BadGateway("Failed to get recommendation from AI provider", err)
		}
		return nil, errors.Internal("Failed to analyze request", err)
	}

	// Fallback answers are not cached so a later call can still succeed.
	if analysis.Note == "" {
		if err := uc.cache.SetJSON(ctx, key, analysis, recommendationTTL); err != nil {
			logger.Warn("Recommendation cache write failed: %v", err)
		}
	}
	return analysis, nil
}

func recommendationKey(req entity.RecommendationRequest) string {
	normalize := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	sum := sha256.Sum256([]byte(normalize(req.Description) + "\x00" + normalize(req.Headline) + "\x00" + normalize(req.Location)))
	return "ai:recommendation:" + hex.EncodeToString(sum[:])
}
