package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/HerbHall/promptrelay/pkg/llm"
)

// statusError represents an HTTP error response from the OpenAI API.
type statusError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *statusError) Error() string {
	msg := fmt.Sprintf("Request failed with status code %d", e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// mapStatusError translates an API failure status into a typed remote error.
func mapStatusError(se *statusError) error {
	lower := strings.ToLower(se.Message)

	code := llm.ErrCodeRemote
	switch {
	case se.StatusCode == http.StatusUnauthorized:
		code = llm.ErrCodeAuthentication
	case se.StatusCode == http.StatusTooManyRequests:
		code = llm.ErrCodeRateLimit
	case se.StatusCode == http.StatusNotFound && strings.Contains(lower, "model"):
		code = llm.ErrCodeModelNotFound
	case se.StatusCode >= 500:
		code = llm.ErrCodeServerError
	}

	return llm.NewStatusError(code, se.StatusCode, se.Error())
}

// mapTransportError translates errors returned by the HTTP client.
func mapTransportError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return llm.NewProviderError(llm.ErrCodeTimeout, "request timed out or cancelled", err)
	}

	return llm.NewProviderError(llm.ErrCodeNetwork, "openai server unreachable", err)
}
