package services

import (
	"context"
	"fmt"
	"time"

	"github.com/civiclens/civitas-backend/internal/clients/ai"
	"github.com/civiclens/civitas-backend/internal/clients/rediscache"
	"github.com/civiclens/civitas-backend/internal/logger"
)

// neutralSignal is the documented fallback for any external-signal failure:
// missing credentials, timeout, malformed response. Failures are logged here
// and never propagate to the scoring engine.
const neutralSignal = 50.0

const sentimentCacheTTL = 1 * time.Hour

type SentimentService interface {
	// PublicSentiment returns a [0,100] score derived from AI sentiment
	// analysis of public perception. Never returns an error.
	PublicSentiment(ctx context.Context, politicianName string) float64
}

type sentimentService struct {
	log   *logger.Logger
	aiCli ai.Client
	cache rediscache.Cache
}

func NewSentimentService(log *logger.Logger, aiCli ai.Client, cache rediscache.Cache) SentimentService {
	return &sentimentService{
		log:   log.With("service", "SentimentService"),
		aiCli: aiCli,
		cache: cache,
	}
}

const sentimentSystemPrompt = `You are a political analyst. Estimate the current overall public sentiment toward the named politician based on their general public reputation.

Respond with JSON only:
{"sentiment": <number between -1.0 (very negative) and 1.0 (very positive)>}`

func (s *sentimentService) PublicSentiment(ctx context.Context, politicianName string) float64 {
	if s.cache != nil {
		if cached, ok := s.cache.GetFloat(ctx, "signal:sentiment:"+politicianName); ok {
			return cached
		}
	}
	if s.aiCli == nil {
		s.log.Warn("Sentiment analysis unavailable, using neutral default", "politician", politicianName)
		return neutralSignal
	}

	payload, err := s.aiCli.CompleteJSON(ctx, sentimentSystemPrompt, fmt.Sprintf("Politician: %s", politicianName))
	if err != nil {
		s.log.Warn("Sentiment analysis failed, using neutral default", "politician", politicianName, "error", err)
		return neutralSignal
	}

	raw, ok := payload["sentiment"].(float64)
	if !ok {
		s.log.Warn("Sentiment response missing numeric field, using neutral default", "politician", politicianName)
		return neutralSignal
	}
	score := clamp(0, 100, (clamp(-1, 1, raw)+1)*50)

	if s.cache != nil {
		s.cache.SetFloat(ctx, "signal:sentiment:"+politicianName, score, sentimentCacheTTL)
	}
	return score
}

func clamp(min, max, v float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
