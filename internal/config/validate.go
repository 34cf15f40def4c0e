package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Provider.Model) == "" {
		return fmt.Errorf("provider.model must not be empty")
	}
	if c.Provider.MaxTokens <= 0 {
		return fmt.Errorf("provider.max_tokens must be > 0 (got %d)", c.Provider.MaxTokens)
	}
	if c.Provider.Temperature < 0 || c.Provider.Temperature > 1 {
		return fmt.Errorf("provider.temperature must be in [0, 1] (got %v)", c.Provider.Temperature)
	}
	for name, tmpl := range map[string]string{
		"vocalize_prompt":  c.Provider.VocalizePrompt,
		"complete_prompt":  c.Provider.CompletePrompt,
		"syllabify_prompt": c.Provider.SyllabifyPrompt,
	} {
		if tmpl != "" && !strings.Contains(tmpl, "{text}") {
			return fmt.Errorf("provider.%s must contain a {text} placeholder", name)
		}
	}

	if c.Reader.MaxTextLength <= 0 {
		return fmt.Errorf("reader.max_text_length must be > 0 (got %d)", c.Reader.MaxTextLength)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535] (got %d)", c.Server.Port)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0 (got %d)", c.Server.RateLimitPerMinute)
	}

	return nil
}
