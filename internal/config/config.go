// Package config loads relay settings from defaults, an optional YAML file
// and RELAY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/HerbHall/promptrelay/internal/llm"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Settings is the decoded, validated relay configuration.
type Settings struct {
	LLM     llm.ModuleConfig `mapstructure:"llm"`
	Relay   RelaySettings    `mapstructure:"relay"`
	Journal JournalSettings  `mapstructure:"journal"`
	Metrics MetricsSettings  `mapstructure:"metrics"`
	Logging LoggingSettings  `mapstructure:"logging"`

	// APIKey is never read from flags. It comes from OPENAI_API_KEY,
	// RELAY_OPENAI_API_KEY or openai.api_key in the config file, in that
	// order.
	APIKey string `mapstructure:"-"`
}

// RelaySettings controls a single relay.
type RelaySettings struct {
	// Model overrides the selected provider's default model when set.
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens" validate:"gt=0"`
	Trailer   bool          `mapstructure:"trailer"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// JournalSettings locates the optional SQLite journal. An empty Path
// disables journaling.
type JournalSettings struct {
	Path string `mapstructure:"path"`
}

// MetricsSettings locates the optional Prometheus textfile.
type MetricsSettings struct {
	Textfile string `mapstructure:"textfile"`
}

// LoggingSettings mirrors the logging.* keys read by NewLogger.
type LoggingSettings struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// Load returns a Viper instance with defaults applied, the config file at
// configPath (or relay.yaml on the search path) merged in, and environment
// overrides enabled. A missing config file is not an error.
func Load(configPath string) (*viper.Viper, error) {
	v := viper.New()

	llmDefaults := llm.DefaultModuleConfig()
	v.SetDefault("llm.provider", llmDefaults.Provider)
	v.SetDefault("llm.openai.base_url", llmDefaults.OpenAI.BaseURL)
	v.SetDefault("llm.openai.model", llmDefaults.OpenAI.Model)
	v.SetDefault("llm.openai.timeout", llmDefaults.OpenAI.Timeout)
	v.SetDefault("llm.ollama.url", llmDefaults.Ollama.URL)
	v.SetDefault("llm.ollama.model", llmDefaults.Ollama.Model)
	v.SetDefault("llm.ollama.timeout", llmDefaults.Ollama.Timeout)
	v.SetDefault("relay.model", "")
	v.SetDefault("relay.max_tokens", 150)
	v.SetDefault("relay.trailer", false)
	v.SetDefault("relay.timeout", "0s")
	v.SetDefault("journal.path", "")
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("relay")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/relay")
		v.AddConfigPath("/etc/relay")
	}

	// RELAY_LLM_PROVIDER=ollama, RELAY_RELAY_MAX_TOKENS=200, ...
	v.SetEnvPrefix("RELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// AutomaticEnv already resolves openai.api_key from RELAY_OPENAI_API_KEY
	// and then the config file. The conventional variable outranks both.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		v.Set("openai.api_key", key)
	}

	return v, nil
}

// Decode unmarshals v into Settings and validates the result.
func Decode(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	s.APIKey = v.GetString("openai.api_key")

	if err := validator.New().Struct(s); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}
