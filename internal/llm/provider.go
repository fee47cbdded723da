// Package llm selects and constructs the completion provider the relay
// talks to, and reports its health for the ping command.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/HerbHall/promptrelay/internal/llm/ollama"
	"github.com/HerbHall/promptrelay/internal/llm/openai"
	pkgllm "github.com/HerbHall/promptrelay/pkg/llm"
	"go.uber.org/zap"
)

// Provider names accepted in configuration.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// ErrMissingAPIKey is returned when a hosted provider is selected but no
// credential was supplied through the environment or config file.
var ErrMissingAPIKey = errors.New("api key is not configured (set OPENAI_API_KEY)")

// ModuleConfig holds the provider selection with per-provider sub-configs.
type ModuleConfig struct {
	Provider string        `mapstructure:"provider" validate:"required,oneof=openai ollama"`
	OpenAI   openai.Config `mapstructure:"openai"`
	Ollama   ollama.Config `mapstructure:"ollama"`
}

// DefaultModuleConfig returns the OpenAI-backed default configuration.
func DefaultModuleConfig() ModuleConfig {
	return ModuleConfig{
		Provider: ProviderOpenAI,
		OpenAI:   openai.DefaultConfig(),
		Ollama:   ollama.DefaultConfig(),
	}
}

// Model returns the default model of the selected provider.
func (c ModuleConfig) Model() string {
	if c.Provider == ProviderOllama {
		return c.Ollama.Model
	}
	return c.OpenAI.Model
}

// NewProvider creates the provider named by cfg.Provider. apiKey is only
// consulted for hosted providers.
func NewProvider(cfg ModuleConfig, apiKey string, logger *zap.Logger) (pkgllm.Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Provider {
	case ProviderOpenAI, "":
		if apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return openai.New(cfg.OpenAI, apiKey, logger.Named(ProviderOpenAI))

	case ProviderOllama:
		return ollama.New(cfg.Ollama, logger.Named(ProviderOllama))

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// Health is the result of probing a provider.
type Health struct {
	Status  string   `json:"status"` // "healthy", "unhealthy" or "unknown".
	Message string   `json:"message,omitempty"`
	Models  []string `json:"models,omitempty"`
}

// Check probes p if it implements HealthReporter. An unreachable provider
// is reported through Health, not as an error; the error return is
// reserved for a reachable provider whose model listing fails.
func Check(ctx context.Context, p pkgllm.Provider, logger *zap.Logger) (Health, error) {
	hr, ok := p.(pkgllm.HealthReporter)
	if !ok {
		return Health{Status: "unknown", Message: "provider does not report health"}, nil
	}

	if err := hr.Heartbeat(ctx); err != nil {
		logger.Warn("llm provider not reachable", zap.Error(err))
		return Health{Status: "unhealthy", Message: err.Error()}, nil
	}

	models, err := hr.ListModels(ctx)
	if err != nil {
		return Health{Status: "healthy"}, fmt.Errorf("list models: %w", err)
	}

	logger.Info("llm provider connected", zap.Int("models", len(models)))
	return Health{Status: "healthy", Models: models}, nil
}
