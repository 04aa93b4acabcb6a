package profile

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the bot.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Version is the current version of the bot
	Version string

	// BotToken is the Telegram bot credential. Required.
	BotToken string // TRADEMIND_BOT_TOKEN
	// AllowedUserIDs is the set of Telegram user IDs permitted to talk to
	// the bot. Required, everyone else is silently ignored.
	AllowedUserIDs []int64 // TRADEMIND_ALLOWED_USER_IDS (comma-separated)

	// LLM configuration for structured extraction
	OpenRouterAPIKey string // TRADEMIND_OPENROUTER_API_KEY
	LLMModel         string // TRADEMIND_LLM_MODEL (default: openai/gpt-4o-mini)

	// Speech recognition configuration
	WhisperBin      string // TRADEMIND_WHISPER_BIN (default: whisper-cli)
	WhisperModel    string // TRADEMIND_WHISPER_MODEL (model file path or size name, default: medium)
	WhisperLanguage string // TRADEMIND_WHISPER_LANGUAGE (default: en, empty = autodetect)
	WhisperDevice   string // TRADEMIND_WHISPER_DEVICE (cpu or cuda, default: cpu)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsExtractionEnabled returns true when the extractor has a credential to
// call the text-generation service with.
func (p *Profile) IsExtractionEnabled() bool {
	return p.OpenRouterAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from TRADEMIND_* environment variables.
func (p *Profile) FromEnv() {
	p.Mode = getEnvOrDefault("TRADEMIND_MODE", "dev")
	p.BotToken = os.Getenv("TRADEMIND_BOT_TOKEN")
	p.AllowedUserIDs = ParseUserIDs(os.Getenv("TRADEMIND_ALLOWED_USER_IDS"))
	p.OpenRouterAPIKey = os.Getenv("TRADEMIND_OPENROUTER_API_KEY")
	p.LLMModel = getEnvOrDefault("TRADEMIND_LLM_MODEL", "openai/gpt-4o-mini")
	p.WhisperBin = getEnvOrDefault("TRADEMIND_WHISPER_BIN", "whisper-cli")
	p.WhisperModel = getEnvOrDefault("TRADEMIND_WHISPER_MODEL", "medium")
	p.WhisperLanguage = getEnvOrDefault("TRADEMIND_WHISPER_LANGUAGE", "en")
	p.WhisperDevice = getEnvOrDefault("TRADEMIND_WHISPER_DEVICE", "cpu")
}

// ParseUserIDs parses a comma-separated list of numeric user IDs.
// Non-numeric entries are skipped.
func ParseUserIDs(value string) []int64 {
	if value == "" {
		return nil
	}
	var ids []int64
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Validate checks that the required configuration is present.
// The bot must fail fast at startup when the credential or the permitted
// user set is absent.
func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}
	if p.BotToken == "" {
		return errors.New("TRADEMIND_BOT_TOKEN is not set")
	}
	if len(p.AllowedUserIDs) == 0 {
		return errors.New("TRADEMIND_ALLOWED_USER_IDS is not set, specify at least one Telegram user ID")
	}
	return nil
}

// Allows reports whether the given user ID is in the allow-list.
func (p *Profile) Allows(userID int64) bool {
	for _, id := range p.AllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
