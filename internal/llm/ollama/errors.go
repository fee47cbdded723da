package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/HerbHall/promptrelay/pkg/llm"
	"github.com/ollama/ollama/api"
)

// mapError translates Ollama and network errors into typed llm.ProviderError values.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return llm.NewProviderError(llm.ErrCodeTimeout, "request timed out or cancelled", err)
	}

	var se api.StatusError
	if errors.As(err, &se) {
		msg := fmt.Sprintf("Request failed with status code %d", se.StatusCode)
		if se.ErrorMessage != "" {
			msg += ": " + se.ErrorMessage
		}

		code := llm.ErrCodeRemote
		switch {
		case se.StatusCode == http.StatusUnauthorized:
			code = llm.ErrCodeAuthentication
		case se.StatusCode == http.StatusNotFound && strings.Contains(strings.ToLower(se.ErrorMessage), "model"):
			code = llm.ErrCodeModelNotFound
		case se.StatusCode >= 500:
			code = llm.ErrCodeServerError
		}
		return llm.NewStatusError(code, se.StatusCode, msg)
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return llm.NewProviderError(llm.ErrCodeMalformedResponse, "decode ollama response", err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return llm.NewProviderError(llm.ErrCodeNetwork, "ollama server unreachable", err)
	}

	// Errors reported inside a 200 stream carry the server's message only.
	return llm.NewProviderError(llm.ErrCodeRemote, "ollama error", err)
}
