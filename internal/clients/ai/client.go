package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/utils"
)

// Client is the language-model boundary used by the sentiment fetcher and the
// verification gate. Callers treat every failure as a service failure and fall
// back to their documented neutral defaults.
type Client interface {
	// CompleteJSON sends a system+user prompt pair and returns the structured
	// payload embedded in the model's reply.
	CompleteJSON(ctx context.Context, system string, user string) (map[string]interface{}, error)
}

type client struct {
	log     *logger.Logger
	api     *openai.Client
	model   string
	timeout time.Duration
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	model := utils.GetEnv("OPENAI_MODEL", "gpt-4o-mini", log)
	timeout := utils.GetEnvAsDuration("OPENAI_TIMEOUT", 30*time.Second, log)

	return &client{
		log:     log.With("service", "AIClient"),
		api:     openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}, nil
}

func (c *client) CompleteJSON(ctx context.Context, system string, user string) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response")
	}

	payload, err := ExtractJSONObject(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// ExtractJSONObject scans free-form model output for an embedded JSON object.
// Models occasionally wrap the payload in prose or markdown fences even when
// asked for raw JSON, so the parse is a scan, not a direct unmarshal.
func ExtractJSONObject(text string) (map[string]interface{}, error) {
	trimmed := strings.TrimSpace(text)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object found in model output")
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("failed to parse model JSON: %w", err)
	}
	return obj, nil
}
