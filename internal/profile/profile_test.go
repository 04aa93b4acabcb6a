package profile

import (
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"TRADEMIND_MODE", "TRADEMIND_BOT_TOKEN", "TRADEMIND_ALLOWED_USER_IDS",
		"TRADEMIND_OPENROUTER_API_KEY", "TRADEMIND_LLM_MODEL",
		"TRADEMIND_WHISPER_BIN", "TRADEMIND_WHISPER_MODEL",
		"TRADEMIND_WHISPER_LANGUAGE", "TRADEMIND_WHISPER_DEVICE",
	} {
		t.Setenv(key, "")
	}

	p := &Profile{}
	p.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"Mode default", "dev", p.Mode},
		{"LLMModel default", "openai/gpt-4o-mini", p.LLMModel},
		{"WhisperBin default", "whisper-cli", p.WhisperBin},
		{"WhisperModel default", "medium", p.WhisperModel},
		{"WhisperLanguage default", "en", p.WhisperLanguage},
		{"WhisperDevice default", "cpu", p.WhisperDevice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.actual)
			}
		})
	}

	if p.IsExtractionEnabled() {
		t.Error("extraction should be disabled without an API key")
	}
}

func TestParseUserIDs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int64
	}{
		{"empty", "", nil},
		{"single", "123", []int64{123}},
		{"multiple", "123,456,789", []int64{123, 456, 789}},
		{"spaces", " 123 , 456 ", []int64{123, 456}},
		{"skips non-numeric", "123,abc,456", []int64{123, 456}},
		{"skips empty items", "123,,456", []int64{123, 456}},
		{"only garbage", "abc,def", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseUserIDs(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	p := &Profile{Mode: "dev"}
	if err := p.Validate(); err == nil {
		t.Error("expected error when bot token is missing")
	}

	p.BotToken = "token"
	if err := p.Validate(); err == nil {
		t.Error("expected error when allow-list is empty")
	}

	p.AllowedUserIDs = []int64{42}
	if err := p.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	p.Mode = "bogus"
	if err := p.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if p.Mode != "dev" {
		t.Errorf("expected unknown mode to fall back to dev, got %q", p.Mode)
	}
}

func TestAllows(t *testing.T) {
	p := &Profile{AllowedUserIDs: []int64{1, 2, 3}}
	if !p.Allows(2) {
		t.Error("expected user 2 to be allowed")
	}
	if p.Allows(4) {
		t.Error("expected user 4 to be rejected")
	}
}
