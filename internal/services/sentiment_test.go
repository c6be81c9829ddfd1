package services

import (
	"context"
	"testing"
	"time"
)

// fakeSignalCache is an in-process stand-in for the optional redis cache.
type fakeSignalCache struct {
	values map[string]float64
	sets   int
}

func newFakeSignalCache() *fakeSignalCache {
	return &fakeSignalCache{values: map[string]float64{}}
}

func (f *fakeSignalCache) GetFloat(ctx context.Context, key string) (float64, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f *fakeSignalCache) SetFloat(ctx context.Context, key string, value float64, ttl time.Duration) {
	f.values[key] = value
	f.sets++
}

func (f *fakeSignalCache) Close() error { return nil }

func TestPublicSentiment_NoClientIsNeutral(t *testing.T) {
	svc := NewSentimentService(newTestLogger(t), nil, nil)
	if got := svc.PublicSentiment(context.Background(), "Jane Roe"); got != 50 {
		t.Fatalf("expected neutral 50, got %v", got)
	}
}

func TestPublicSentiment_ErrorIsNeutral(t *testing.T) {
	svc := NewSentimentService(newTestLogger(t), &fakeAIClient{err: errBoom}, nil)
	if got := svc.PublicSentiment(context.Background(), "Jane Roe"); got != 50 {
		t.Fatalf("expected neutral 50 on failure, got %v", got)
	}
}

func TestPublicSentiment_MapsModelRange(t *testing.T) {
	cases := []struct {
		sentiment float64
		want      float64
	}{
		{-1, 0},
		{0, 50},
		{0.5, 75},
		{1, 100},
		{3, 100}, // out-of-range model output clamps
	}
	for _, tc := range cases {
		svc := NewSentimentService(newTestLogger(t), &fakeAIClient{payload: map[string]interface{}{
			"sentiment": tc.sentiment,
		}}, nil)
		if got := svc.PublicSentiment(context.Background(), "Jane Roe"); got != tc.want {
			t.Fatalf("sentiment %v: expected %v, got %v", tc.sentiment, tc.want, got)
		}
	}
}

func TestPublicSentiment_NonNumericFieldIsNeutral(t *testing.T) {
	svc := NewSentimentService(newTestLogger(t), &fakeAIClient{payload: map[string]interface{}{
		"sentiment": "positive",
	}}, nil)
	if got := svc.PublicSentiment(context.Background(), "Jane Roe"); got != 50 {
		t.Fatalf("expected neutral 50 for malformed payload, got %v", got)
	}
}

func TestPublicSentiment_CachesResult(t *testing.T) {
	cache := newFakeSignalCache()
	cli := &fakeAIClient{payload: map[string]interface{}{"sentiment": float64(0.5)}}
	svc := NewSentimentService(newTestLogger(t), cli, cache)

	ctx := context.Background()
	if got := svc.PublicSentiment(ctx, "Jane Roe"); got != 75 {
		t.Fatalf("expected 75, got %v", got)
	}
	if got := svc.PublicSentiment(ctx, "Jane Roe"); got != 75 {
		t.Fatalf("expected cached 75, got %v", got)
	}
	if cli.calls != 1 {
		t.Fatalf("expected a single AI call with a warm cache, got %d", cli.calls)
	}
}
