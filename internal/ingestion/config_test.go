package ingestion

import (
	"errors"
	"testing"
)

func TestResolveServiceKey_ExplicitWins(t *testing.T) {
	t.Setenv(ServiceKeyEnv, "env-key")

	key, err := ResolveServiceKey("explicit-key")
	if err != nil {
		t.Fatalf("ResolveServiceKey failed: %v", err)
	}
	if key != "explicit-key" {
		t.Errorf("expected explicit key, got %q", key)
	}
}

func TestResolveServiceKey_EnvFallback(t *testing.T) {
	t.Setenv(ServiceKeyEnv, "env-key")

	key, err := ResolveServiceKey("")
	if err != nil {
		t.Fatalf("ResolveServiceKey failed: %v", err)
	}
	if key != "env-key" {
		t.Errorf("expected env key, got %q", key)
	}
}

func TestResolveServiceKey_Missing(t *testing.T) {
	t.Setenv(ServiceKeyEnv, "")

	_, err := ResolveServiceKey("  ")
	if !errors.Is(err, ErrNoServiceKey) {
		t.Errorf("expected ErrNoServiceKey, got %v", err)
	}
}
