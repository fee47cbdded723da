package openai

import "time"

// Config holds the OpenAI provider configuration. The API key is not part
// of Config; it is resolved from the environment and passed to New.
type Config struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Model   string        `mapstructure:"model" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// DefaultConfig returns defaults for the hosted completions endpoint.
// A zero Timeout leaves the transport default in place.
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api.openai.com",
		Model:   "gpt-3.5-turbo-instruct",
	}
}
