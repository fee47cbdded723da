package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HerbHall/promptrelay/internal/llm/ollama"
	"github.com/HerbHall/promptrelay/internal/llm/openai"
	pkgllm "github.com/HerbHall/promptrelay/pkg/llm"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestNewProvider_SelectsAdapter(t *testing.T) {
	cfg := DefaultModuleConfig()

	p, err := NewProvider(cfg, "sk-test", zap.NewNop())
	if err != nil {
		t.Fatalf("NewProvider(openai) error = %v", err)
	}
	if _, ok := p.(*openai.Provider); !ok {
		t.Errorf("NewProvider(openai) = %T", p)
	}

	cfg.Provider = ProviderOllama
	p, err = NewProvider(cfg, "", zap.NewNop())
	if err != nil {
		t.Fatalf("NewProvider(ollama) error = %v", err)
	}
	if _, ok := p.(*ollama.Provider); !ok {
		t.Errorf("NewProvider(ollama) = %T", p)
	}
}

func TestNewProvider_MissingAPIKey(t *testing.T) {
	_, err := NewProvider(DefaultModuleConfig(), "", zap.NewNop())
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	cfg := DefaultModuleConfig()
	cfg.Provider = "carrier-pigeon"
	if _, err := NewProvider(cfg, "k", nil); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestModuleConfig_Model(t *testing.T) {
	cfg := DefaultModuleConfig()
	if got := cfg.Model(); got != cfg.OpenAI.Model {
		t.Errorf("Model() = %q, want %q", got, cfg.OpenAI.Model)
	}
	cfg.Provider = ProviderOllama
	if got := cfg.Model(); got != cfg.Ollama.Model {
		t.Errorf("Model() = %q, want %q", got, cfg.Ollama.Model)
	}
}

func TestCheck_Healthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"gpt-3.5-turbo-instruct"}]}`)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultModuleConfig()
	cfg.OpenAI.BaseURL = srv.URL
	p, err := NewProvider(cfg, "sk-test", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	h, err := Check(context.Background(), p, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if h.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", h.Status)
	}
	if len(h.Models) != 1 || h.Models[0] != "gpt-3.5-turbo-instruct" {
		t.Errorf("Models = %v", h.Models)
	}
}

func TestCheck_Unhealthy(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := DefaultModuleConfig()
	cfg.Provider = ProviderOllama
	cfg.Ollama.URL = srv.URL
	p, err := NewProvider(cfg, "", zap.NewNop())
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	h, err := Check(context.Background(), p, zap.NewNop())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if h.Status != "unhealthy" {
		t.Errorf("Status = %q, want unhealthy", h.Status)
	}
	if h.Message == "" {
		t.Error("Message should not be empty for unhealthy status")
	}
}

type silentProvider struct{}

func (silentProvider) Generate(context.Context, string, ...pkgllm.CallOption) (*pkgllm.Response, error) {
	return &pkgllm.Response{}, nil
}

func TestCheck_NoHealthReporter(t *testing.T) {
	h, err := Check(context.Background(), silentProvider{}, zap.NewNop())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if h.Status != "unknown" {
		t.Errorf("Status = %q, want unknown", h.Status)
	}
}
