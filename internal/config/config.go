package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance.
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/phishguard/")
	v.AddConfigPath("$HOME/.phishguard")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvPrefix("PHISHGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromFile creates a configuration instance from an explicit config file
// path.
func NewFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvPrefix("PHISHGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper
// instance.
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults.
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values.
func setDefaults(v *viper.Viper) {
	// LLM provider defaults. "none" disables the second opinion entirely.
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.timeout", "15s")

	// OpenAI defaults match the original deployment of the scorer.
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model_name", "gpt-3.5-turbo")
	v.SetDefault("openai.max_tokens", 500)
	v.SetDefault("openai.temperature", 0.3)
	v.SetDefault("openai.max_body_size", 4096)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-pro")
	v.SetDefault("gemini.max_tokens", 500)
	v.SetDefault("gemini.temperature", 0.3)
	v.SetDefault("gemini.max_body_size", 4096)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-v2")
	v.SetDefault("bedrock.max_tokens", 500)
	v.SetDefault("bedrock.temperature", 0.3)
	v.SetDefault("bedrock.top_p", 0.9)
	v.SetDefault("bedrock.max_body_size", 4096)

	// Scoring defaults
	v.SetDefault("scoring.weights.urgency_keywords", 0.25)
	v.SetDefault("scoring.weights.threat_keywords", 0.25)
	v.SetDefault("scoring.weights.action_keywords", 0.20)
	v.SetDefault("scoring.weights.reward_keywords", 0.15)
	v.SetDefault("scoring.weights.suspicious_urls", 0.40)
	v.SetDefault("scoring.weights.suspicious_sender", 0.30)
	v.SetDefault("scoring.weights.poor_formatting", 0.15)
	v.SetDefault("scoring.weights.sensitive_requests", 0.35)
	v.SetDefault("scoring.legitimate_domains", []string{})
	v.SetDefault("scoring.trusted_sender_domains", []string{})

	// Quota defaults (free tier: 5 scans per month, 0 = unlimited)
	v.SetDefault("quota.enabled", true)
	v.SetDefault("quota.scan_limit", 5)

	// Storage defaults
	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.sqlite_path", "/data/phishguard.db")
	v.SetDefault("storage.mysql_dsn", "user:password@tcp(localhost:3306)/phishguard")

	// Server defaults
	v.SetDefault("server.gateway_type", "smtp")
	v.SetDefault("server.listen_address", "0.0.0.0:10025")
	v.SetDefault("server.block_phishing", false)
	v.SetDefault("server.headers.flag", "X-Phishing-Flag")
	v.SetDefault("server.headers.confidence", "X-Phishing-Confidence")
	v.SetDefault("server.headers.summary", "X-Phishing-Summary")
	v.SetDefault("server.relay.address", "127.0.0.1")
	v.SetDefault("server.relay.port", 10026)
	v.SetDefault("server.relay.enabled", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration.
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration.
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration.
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration.
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration.
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance.
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
