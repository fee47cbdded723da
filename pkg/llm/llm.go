// Package llm provides the provider-neutral types the relay uses to talk to
// hosted completion endpoints. Concrete adapters live in
// internal/llm/{provider}/ and map their native failures onto ProviderError.
package llm

import "context"

// DefaultMaxTokens is the completion budget used when no option overrides it.
const DefaultMaxTokens = 150

// Provider is implemented by every completion backend.
type Provider interface {
	// Generate submits a single prompt and returns the primary completion.
	// Use CallOption values to override model, token budget or temperature.
	Generate(ctx context.Context, prompt string, opts ...CallOption) (*Response, error)
}

// HealthReporter is optionally implemented by providers that can report
// connection health and model availability. Detected via type assertion.
type HealthReporter interface {
	// Heartbeat checks whether the service is reachable.
	Heartbeat(ctx context.Context) error

	// ListModels returns the names of models available from this provider.
	ListModels(ctx context.Context) ([]string, error)
}

// CallOption configures a single Generate call.
type CallOption func(*CallConfig)

// CallConfig holds the resolved configuration for a single call.
// Callers interact through CallOption functions, not this struct directly.
type CallConfig struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// WithModel sets the model to use for this call, overriding the provider default.
func WithModel(model string) CallOption {
	return func(c *CallConfig) { c.Model = model }
}

// WithTemperature sets the sampling temperature. Zero leaves the provider default.
func WithTemperature(temp float64) CallOption {
	return func(c *CallConfig) { c.Temperature = temp }
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(max int) CallOption {
	return func(c *CallConfig) { c.MaxTokens = max }
}

// ApplyOptions creates a CallConfig from a list of options, starting from defaults.
func ApplyOptions(opts ...CallOption) CallConfig {
	cfg := CallConfig{
		MaxTokens: DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
