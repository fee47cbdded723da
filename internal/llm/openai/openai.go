package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/HerbHall/promptrelay/pkg/llm"
	"go.uber.org/zap"
)

// Compile-time interface guards.
var (
	_ llm.Provider       = (*Provider)(nil)
	_ llm.HealthReporter = (*Provider)(nil)
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 1 << 16

// Provider implements llm.Provider for OpenAI using the text completions API.
type Provider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cfg        Config
	logger     *zap.Logger
}

// New creates an OpenAI provider.
func New(cfg Config, apiKey string, logger *zap.Logger) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Provider{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// Generate submits prompt to /v1/completions and returns the first choice.
func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.CallOption) (*llm.Response, error) {
	cfg := llm.ApplyOptions(opts...)

	model := cfg.Model
	if model == "" {
		model = p.cfg.Model
	}

	req := completionRequest{
		Model:       model,
		Prompt:      prompt,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal completion request: %w", err)
	}

	p.logger.Debug("sending completion request",
		zap.String("model", model),
		zap.Int("max_tokens", cfg.MaxTokens),
		zap.Int("prompt_bytes", len(prompt)),
	)

	respBody, err := p.doPost(ctx, "/v1/completions", body)
	if err != nil {
		return nil, err
	}
	defer respBody.Close()

	var resp completionResponse
	if err := json.NewDecoder(respBody).Decode(&resp); err != nil {
		return nil, llm.NewProviderError(llm.ErrCodeMalformedResponse, "decode completion response", err)
	}

	if len(resp.Choices) == 0 {
		return nil, llm.NewProviderError(llm.ErrCodeMalformedResponse, "completion response has no choices", nil)
	}

	if resp.Model == "" {
		resp.Model = model
	}

	choice := resp.Choices[0]
	return &llm.Response{
		Content: choice.Text,
		Model:   resp.Model,
		Usage: llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
		Done: choice.FinishReason != "length",
	}, nil
}

// Heartbeat checks whether the OpenAI API is reachable with the configured key.
func (p *Provider) Heartbeat(ctx context.Context) error {
	resp, err := p.doGet(ctx, "/v1/models")
	if err != nil {
		return err
	}
	resp.Close()
	return nil
}

// ListModels returns the available model IDs.
func (p *Provider) ListModels(ctx context.Context) ([]string, error) {
	respBody, err := p.doGet(ctx, "/v1/models")
	if err != nil {
		return nil, err
	}
	defer respBody.Close()

	var result listResponse
	if err := json.NewDecoder(respBody).Decode(&result); err != nil {
		return nil, llm.NewProviderError(llm.ErrCodeMalformedResponse, "decode list response", err)
	}

	names := make([]string, len(result.Data))
	for i := range result.Data {
		names[i] = result.Data[i].ID
	}
	return names, nil
}

// doPost sends an authenticated POST request and returns the response body.
// The caller must close the returned body.
func (p *Provider) doPost(ctx context.Context, path string, body []byte) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, llm.NewProviderError(llm.ErrCodeInvalidRequest, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return p.do(req)
}

func (p *Provider) doGet(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, http.NoBody)
	if err != nil {
		return nil, llm.NewProviderError(llm.ErrCodeInvalidRequest, "build request", err)
	}
	return p.do(req)
}

func (p *Provider) do(req *http.Request) (io.ReadCloser, error) {
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, mapStatusError(parseStatusError(resp))
	}

	return resp.Body, nil
}

// parseStatusError reads an error response body.
func parseStatusError(resp *http.Response) *statusError {
	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || json.Unmarshal(raw, &errResp) != nil {
		return &statusError{StatusCode: resp.StatusCode}
	}

	return &statusError{
		StatusCode: resp.StatusCode,
		Type:       errResp.Error.Type,
		Message:    errResp.Error.Message,
	}
}

// --- OpenAI REST API types (internal) ---

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature,omitempty"`
}

type completionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Text         string `json:"text"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type listResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}
