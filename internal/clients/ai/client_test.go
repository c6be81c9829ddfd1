package ai

import (
	"os"
	"testing"

	"github.com/civiclens/civitas-backend/internal/logger"
)

func TestExtractJSONObject_RawObject(t *testing.T) {
	obj, err := ExtractJSONObject(`{"sentiment": 0.4}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj["sentiment"] != 0.4 {
		t.Fatalf("unexpected payload: %v", obj)
	}
}

func TestExtractJSONObject_MarkdownFencedObject(t *testing.T) {
	obj, err := ExtractJSONObject("Here you go:\n```json\n{\"confidence\": 85, \"suggested_action\": \"approve\"}\n```\nLet me know if you need more.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj["confidence"] != float64(85) {
		t.Fatalf("unexpected confidence: %v", obj["confidence"])
	}
	if obj["suggested_action"] != "approve" {
		t.Fatalf("unexpected action: %v", obj["suggested_action"])
	}
}

func TestExtractJSONObject_NestedBracesSurviveScan(t *testing.T) {
	obj, err := ExtractJSONObject(`prose {"outer": {"inner": true}} trailing`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inner, ok := obj["outer"].(map[string]interface{})
	if !ok || inner["inner"] != true {
		t.Fatalf("unexpected payload: %v", obj)
	}
}

func TestExtractJSONObject_NoObject(t *testing.T) {
	if _, err := ExtractJSONObject("I cannot answer that."); err == nil {
		t.Fatalf("expected error for missing object")
	}
}

func TestExtractJSONObject_MalformedObject(t *testing.T) {
	if _, err := ExtractJSONObject(`{"confidence": }`); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestNewClient_DefaultModel(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_MODEL", "")
	os.Unsetenv("OPENAI_MODEL")

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	cli, err := NewClient(log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, ok := cli.(*client)
	if !ok {
		t.Fatalf("unexpected client type %T", cli)
	}
	if c.model != "gpt-4o-mini" {
		t.Fatalf("unexpected default model %q", c.model)
	}
}
