package relay

import (
	"context"
	"errors"

	"github.com/HerbHall/promptrelay/pkg/llm"
)

// Kind classifies a failed relay. Every kind is recorded in the sink the
// same way a successful completion is.
type Kind string

const (
	KindNone              Kind = ""
	KindFileAccess        Kind = "file_access"
	KindNetworkFailure    Kind = "network_failure"
	KindRemoteError       Kind = "remote_error"
	KindMalformedResponse Kind = "malformed_response"
)

// ErrEmptyResponse is reported when a provider returns neither a response
// nor an error.
var ErrEmptyResponse = errors.New("provider returned no completion")

// classify maps a provider error onto the relay taxonomy. Errors that carry
// no provider code are treated as transport failures.
func classify(err error) Kind {
	switch {
	case llm.IsMalformedResponse(err):
		return KindMalformedResponse
	case llm.IsRemoteError(err):
		return KindRemoteError
	case llm.IsNetworkError(err), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindNetworkFailure
	case llm.CodeOf(err) == llm.ErrCodeInvalidRequest:
		return KindRemoteError
	default:
		return KindNetworkFailure
	}
}
