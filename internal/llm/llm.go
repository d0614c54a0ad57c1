package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("no content generated")

// FailureKind classifies why a generation call failed.
type FailureKind string

const (
	FailureTimeout     FailureKind = "timeout"
	FailureRateLimit   FailureKind = "rate_limit"
	FailureEmpty       FailureKind = "empty"
	FailureService     FailureKind = "service"
	FailureUnavailable FailureKind = "unavailable"
)

// StatusError is a non-2xx answer from an HTTP provider.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s api error: status=%d body=%s", e.Provider, e.StatusCode, e.Body)
}

// Classify maps a generation error onto a FailureKind.
func Classify(err error) FailureKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	if errors.Is(err, ErrEmptyResponse) {
		return FailureEmpty
	}

	var se *StatusError
	if errors.As(err, &se) {
		return kindForHTTP(se.StatusCode)
	}
	var ge *googleapi.Error
	if errors.As(err, &ge) {
		return kindForHTTP(ge.Code)
	}
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.DeadlineExceeded:
			return FailureTimeout
		case codes.ResourceExhausted:
			return FailureRateLimit
		}
	}
	return FailureService
}

func kindForHTTP(code int) FailureKind {
	switch code {
	case http.StatusTooManyRequests:
		return FailureRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return FailureTimeout
	}
	return FailureService
}
