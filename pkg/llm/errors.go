package llm

import (
	"errors"
	"slices"
)

// Error code constants shared by all providers. The first group is the
// coarse taxonomy callers switch on; the second group refines RemoteError
// and NetworkFailure for logging and metrics.
const (
	ErrCodeNetwork           = "network_failure"
	ErrCodeRemote            = "remote_error"
	ErrCodeMalformedResponse = "malformed_response"
	ErrCodeInvalidRequest    = "invalid_request"

	ErrCodeAuthentication = "authentication_error"
	ErrCodeRateLimit      = "rate_limit_exceeded"
	ErrCodeModelNotFound  = "model_not_found"
	ErrCodeServerError    = "server_error"
	ErrCodeTimeout        = "timeout"
)

var (
	remoteCodes  = []string{ErrCodeRemote, ErrCodeAuthentication, ErrCodeRateLimit, ErrCodeModelNotFound, ErrCodeServerError}
	networkCodes = []string{ErrCodeNetwork, ErrCodeTimeout}
)

// ProviderError represents a typed error from a completion provider.
// Use the IsXxx helpers below to classify errors without inspecting fields.
type ProviderError struct {
	Code       string // One of the ErrCode* constants.
	StatusCode int    // HTTP status for remote errors, zero otherwise.
	Message    string // Human-readable description.
	Err        error  // Underlying error (may be nil).
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a typed provider error.
func NewProviderError(code, message string, err error) *ProviderError {
	return &ProviderError{Code: code, Message: message, Err: err}
}

// NewStatusError creates a remote error carrying the HTTP status code.
func NewStatusError(code string, status int, message string) *ProviderError {
	return &ProviderError{Code: code, StatusCode: status, Message: message}
}

// IsNetworkError reports whether err is a transport failure, including timeouts.
func IsNetworkError(err error) bool {
	return hasCode(err, networkCodes...)
}

// IsRemoteError reports whether the provider answered with a failure status.
func IsRemoteError(err error) bool {
	return hasCode(err, remoteCodes...)
}

// IsMalformedResponse reports whether the provider answered with a body
// that could not be decoded or carried no completion.
func IsMalformedResponse(err error) bool {
	return hasCode(err, ErrCodeMalformedResponse)
}

// IsAuthenticationError reports whether err is an authentication failure.
func IsAuthenticationError(err error) bool {
	return hasCode(err, ErrCodeAuthentication)
}

// IsRateLimitError reports whether err is a rate-limit error.
func IsRateLimitError(err error) bool {
	return hasCode(err, ErrCodeRateLimit)
}

// IsModelNotFoundError reports whether err is a model-not-found error.
func IsModelNotFoundError(err error) bool {
	return hasCode(err, ErrCodeModelNotFound)
}

// IsServerError reports whether err is a provider-side server error.
func IsServerError(err error) bool {
	return hasCode(err, ErrCodeServerError)
}

// IsTimeoutError reports whether err is a timeout.
func IsTimeoutError(err error) bool {
	return hasCode(err, ErrCodeTimeout)
}

// CodeOf returns the provider error code carried by err, or "" when err
// is not a ProviderError.
func CodeOf(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

func hasCode(err error, codes ...string) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && slices.Contains(codes, pe.Code)
}
