package gologger

import (
	"testing"
)

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewProviderAcceptsKnownFormats(t *testing.T) {
	for _, format := range []string{"", "console", "json", "pretty"} {
		if _, err := NewProvider(Config{Format: format, Level: "debug"}); err != nil {
			t.Errorf("format %q: %v", format, err)
		}
	}
}

func TestGetLoggerNeverReturnsNil(t *testing.T) {
	provider, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	if provider.GetLogger("") == nil {
		t.Fatal("root logger is nil")
	}
	if provider.GetLogger("lexicon.corpus") == nil {
		t.Fatal("named logger is nil")
	}

	var nilProvider *Provider
	if nilProvider.GetLogger("x") == nil {
		t.Fatal("nil provider should fall back to the no-op logger")
	}
}

func TestNormalizeLevel(t *testing.T) {
	if normalizeLevel("nope") != "" {
		t.Error("unknown level should normalise to empty")
	}
	if normalizeLevel("") != "" {
		t.Error("empty level should stay empty")
	}
	if normalizeLevel("warn") != normalizeLevel("warning") {
		t.Error("warn aliases should match")
	}
	if normalizeLevel("INFO") != normalizeLevel("info") {
		t.Error("level matching should be case-insensitive")
	}
}
