package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	CORS     CORSConfig     `yaml:"cors"`
	Database DatabaseConfig `yaml:"database"`
	Provider ProviderConfig `yaml:"provider"`
	Reader   ReaderConfig   `yaml:"reader"`
	Log      LogConfig      `yaml:"log"`
}

// CORSConfig holds Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// RateLimitPerMinute caps requests per client IP; zero disables the
	// limiter. Provider-backed operations are the expensive path.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// ProviderConfig holds text-generation provider settings. Prompt templates
// carry a {text} placeholder substituted per request; empty template fields
// fall back to the built-in prompts.
type ProviderConfig struct {
	APIKey      string        `yaml:"api_key"     env:"PROVIDER_API_KEY"`
	Model       string        `yaml:"model"       env:"PROVIDER_MODEL"       env-default:"claude-sonnet-4-5"`
	MaxTokens   int64         `yaml:"max_tokens"  env:"PROVIDER_MAX_TOKENS"  env-default:"4096"`
	Temperature float64       `yaml:"temperature" env:"PROVIDER_TEMPERATURE" env-default:"0.2"`
	Timeout     time.Duration `yaml:"timeout"     env:"PROVIDER_TIMEOUT"     env-default:"60s"`

	SystemPrompt    string `yaml:"system_prompt"    env:"PROVIDER_SYSTEM_PROMPT"`
	VocalizePrompt  string `yaml:"vocalize_prompt"  env:"PROVIDER_VOCALIZE_PROMPT"`
	CompletePrompt  string `yaml:"complete_prompt"  env:"PROVIDER_COMPLETE_PROMPT"`
	SyllabifyPrompt string `yaml:"syllabify_prompt" env:"PROVIDER_SYLLABIFY_PROMPT"`
}

// ReaderConfig holds reading-engine settings.
type ReaderConfig struct {
	// MaxTextLength caps the text accepted by the engine and forwarded to
	// the provider, in runes.
	MaxTextLength int `yaml:"max_text_length" env:"READER_MAX_TEXT_LENGTH" env-default:"20000"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
