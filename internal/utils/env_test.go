package utils

import (
	"os"
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("CIVITAS_TEST_STRING", "from-env")
	if got := GetEnv("CIVITAS_TEST_STRING", "fallback", nil); got != "from-env" {
		t.Fatalf("expected env value, got %q", got)
	}
	os.Unsetenv("CIVITAS_TEST_STRING")
	if got := GetEnv("CIVITAS_TEST_STRING", "fallback", nil); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("CIVITAS_TEST_INT", "512")
	if got := GetEnvAsInt("CIVITAS_TEST_INT", 256, nil); got != 512 {
		t.Fatalf("expected 512, got %d", got)
	}
	t.Setenv("CIVITAS_TEST_INT", "not-a-number")
	if got := GetEnvAsInt("CIVITAS_TEST_INT", 256, nil); got != 256 {
		t.Fatalf("expected default on parse failure, got %d", got)
	}
	os.Unsetenv("CIVITAS_TEST_INT")
	if got := GetEnvAsInt("CIVITAS_TEST_INT", 256, nil); got != 256 {
		t.Fatalf("expected default when unset, got %d", got)
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("CIVITAS_TEST_DURATION", "90s")
	if got := GetEnvAsDuration("CIVITAS_TEST_DURATION", time.Minute, nil); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
	t.Setenv("CIVITAS_TEST_DURATION", "soon")
	if got := GetEnvAsDuration("CIVITAS_TEST_DURATION", time.Minute, nil); got != time.Minute {
		t.Fatalf("expected default on parse failure, got %v", got)
	}
}
