package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Provider: ProviderConfig{
			Model:       "claude-sonnet-4-5",
			MaxTokens:   4096,
			Temperature: 0.2,
		},
		Reader: ReaderConfig{MaxTextLength: 20000},
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Provider(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Provider.Model = "  "
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Provider.MaxTokens = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Provider.Temperature = 1.5
	assert.Error(t, cfg.Validate())
}

func TestValidate_PromptPlaceholder(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Provider.VocalizePrompt = "vocalize this text please"
	assert.Error(t, cfg.Validate(), "custom template without {text} must be rejected")

	cfg.Provider.VocalizePrompt = "vocalize: {text}"
	assert.NoError(t, cfg.Validate())

	// Empty template means built-in default and is always fine.
	cfg.Provider.VocalizePrompt = ""
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Reader(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Reader.MaxTextLength = 0
	assert.Error(t, cfg.Validate())
}

func TestValidate_RateLimit(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Server.RateLimitPerMinute = -1
	assert.Error(t, cfg.Validate())

	// Zero disables limiting and is valid.
	cfg.Server.RateLimitPerMinute = 0
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ServerPort(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())
}
