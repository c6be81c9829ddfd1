package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/civiclens/civitas-backend/internal/clients/ai"
	"github.com/civiclens/civitas-backend/internal/clients/rediscache"
	"github.com/civiclens/civitas-backend/internal/clients/search"
	"github.com/civiclens/civitas-backend/internal/logger"
)

const mediaCacheTTL = 1 * time.Hour

type MediaService interface {
	// MediaPresence returns a [0,100] score from recent media mentions. When
	// the search integration is not configured, the signal degrades to an
	// AI-estimated approximation of the same shape. Never returns an error.
	MediaPresence(ctx context.Context, politicianName string) float64
}

type mediaService struct {
	log       *logger.Logger
	aiCli     ai.Client
	searchCli search.Client
	cache     rediscache.Cache
}

func NewMediaService(log *logger.Logger, aiCli ai.Client, searchCli search.Client, cache rediscache.Cache) MediaService {
	return &mediaService{
		log:       log.With("service", "MediaService"),
		aiCli:     aiCli,
		searchCli: searchCli,
		cache:     cache,
	}
}

const headlineSentimentPrompt = `You are a media analyst. Given recent news headlines about a politician, estimate the aggregate sentiment of the coverage.

Respond with JSON only:
{"sentiment": <number between -1.0 (very negative) and 1.0 (very positive)>}`

const mediaEstimatePrompt = `You are a media analyst. Estimate the recent news coverage of the named politician.

Respond with JSON only:
{"mentions": <estimated number of mentions in the last 30 days>, "sentiment": <number between -1.0 and 1.0 for the tone of that coverage>}`

func (s *mediaService) MediaPresence(ctx context.Context, politicianName string) float64 {
	if s.cache != nil {
		if cached, ok := s.cache.GetFloat(ctx, "signal:media:"+politicianName); ok {
			return cached
		}
	}

	score, err := s.fromSearch(ctx, politicianName)
	if err != nil {
		s.log.Debug("Live media search unavailable, falling back to AI estimate", "politician", politicianName, "error", err)
		score, err = s.fromEstimate(ctx, politicianName)
	}
	if err != nil {
		s.log.Warn("Media presence failed, using neutral default", "politician", politicianName, "error", err)
		return neutralSignal
	}

	if s.cache != nil {
		s.cache.SetFloat(ctx, "signal:media:"+politicianName, score, mediaCacheTTL)
	}
	return score
}

// fromSearch scores live search results: a mention-volume component capped at
// 50 plus a headline-sentiment bonus in [0,50].
func (s *mediaService) fromSearch(ctx context.Context, politicianName string) (float64, error) {
	if s.searchCli == nil {
		return 0, fmt.Errorf("search integration not configured")
	}
	results, err := s.searchCli.Search(ctx, politicianName, 50)
	if err != nil {
		return 0, err
	}

	mentionScore := math.Min(50, float64(len(results))*2)
	sentimentBonus := 25.0 // neutral midpoint when headline sentiment is unavailable
	if hs, err := s.headlineSentiment(ctx, results); err == nil {
		sentimentBonus = (clamp(-1, 1, hs) + 1) * 25
	}
	return clamp(0, 100, mentionScore+sentimentBonus), nil
}

func (s *mediaService) headlineSentiment(ctx context.Context, results []search.Result) (float64, error) {
	if s.aiCli == nil {
		return 0, fmt.Errorf("AI client not configured")
	}
	if len(results) == 0 {
		return 0, nil
	}
	headlines := make([]string, 0, len(results))
	for i, r := range results {
		if i == 10 {
			break
		}
		headlines = append(headlines, "- "+r.Title)
	}
	payload, err := s.aiCli.CompleteJSON(ctx, headlineSentimentPrompt, strings.Join(headlines, "\n"))
	if err != nil {
		return 0, err
	}
	raw, ok := payload["sentiment"].(float64)
	if !ok {
		return 0, fmt.Errorf("headline sentiment response missing numeric field")
	}
	return raw, nil
}

// fromEstimate asks the model for an approximation with the same shape as the
// live search path.
func (s *mediaService) fromEstimate(ctx context.Context, politicianName string) (float64, error) {
	if s.aiCli == nil {
		return 0, fmt.Errorf("AI client not configured")
	}
	payload, err := s.aiCli.CompleteJSON(ctx, mediaEstimatePrompt, fmt.Sprintf("Politician: %s", politicianName))
	if err != nil {
		return 0, err
	}
	mentions, ok := payload["mentions"].(float64)
	if !ok {
		return 0, fmt.Errorf("media estimate response missing mentions field")
	}
	sentiment, ok := payload["sentiment"].(float64)
	if !ok {
		return 0, fmt.Errorf("media estimate response missing sentiment field")
	}
	mentionScore := math.Min(50, math.Max(0, mentions)*2)
	sentimentBonus := (clamp(-1, 1, sentiment) + 1) * 25
	return clamp(0, 100, mentionScore+sentimentBonus), nil
}
