package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/utils"
)

// Result is one ranked search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Client is the optional web-search boundary. Its absence is a normal,
// handled condition: the media-presence signal degrades to an AI estimate.
type Client interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(os.Getenv("SEARCH_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing SEARCH_API_KEY")
	}
	baseURL := utils.GetEnv("SEARCH_API_URL", "https://newsapi.org/v2/everything", log)
	timeout := utils.GetEnvAsDuration("SEARCH_TIMEOUT", 15*time.Second, log)

	return &client{
		log:        log.With("service", "SearchClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type searchResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
	} `json:"articles"`
}

func (c *client) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("pageSize", strconv.Itoa(limit))
	params.Set("sortBy", "publishedAt")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search http %d: %s", resp.StatusCode, string(raw))
	}

	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("search decode error: %w", err)
	}

	out := make([]Result, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		out = append(out, Result{
			Title:   a.Title,
			Snippet: a.Description,
			URL:     a.URL,
		})
	}
	return out, nil
}
