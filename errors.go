package daily

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/imtaco/dailyco-go/internal/errors"
)

// Error classes. Match with errors.Is:
//
//	if errors.Is(err, daily.ErrAPI) { ... }
const (
	// ErrValidation: input rejected before any I/O.
	ErrValidation errors.Code = "daily: validation error"
	// ErrTransport: the request did not complete, or a success body could not be decoded.
	ErrTransport errors.Code = "daily: transport error"
	// ErrAPI: the service answered with a non-2xx status. See APIError.
	ErrAPI errors.Code = "daily: api error"
	// ErrSigning: local token signing failed.
	ErrSigning errors.Code = "daily: signing error"
	// ErrUnsupported: the capability was compiled out.
	ErrUnsupported errors.Code = "daily: unsupported"
	// ErrRequiresPagination: a strict listing would have been truncated.
	ErrRequiresPagination errors.Code = "daily: requires pagination"
)

// APIError is a non-2xx answer. Info holds the service message verbatim, or
// the raw body when it was not the usual {"error", "info"} object.
type APIError struct {
	StatusCode int
	Kind       ErrorKind
	Info       string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "daily api status %d", e.StatusCode)
	if e.Kind != "" {
		b.WriteString(" (" + string(e.Kind) + ")")
	}
	if e.Info != "" {
		b.WriteString(": " + e.Info)
	}
	return b.String()
}

// Retryable reports throttling and server-side failures.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError ||
		e.Kind == KindRateLimit
}

// NotFound reports a missing room, token or recording.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.Kind == KindNotFound
}

// AsAPIError extracts the APIError from err, if any.
func AsAPIError(err error) (*APIError, bool) {
	return errors.As[*APIError](err)
}

// IsNotFound is a shortcut for AsAPIError + NotFound.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.NotFound()
}

// Retryable reports whether repeating the call may succeed: throttling,
// server failures and transport errors other than the caller's own
// cancellation or deadline.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Retryable()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, ErrTransport)
}

type errorBody struct {
	Error *ErrorKind `json:"error"`
	Info  *string    `json:"info"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || (eb.Error == nil && eb.Info == nil) {
		apiErr.Info = strings.TrimSpace(string(body))
		return apiErr
	}
	if eb.Error != nil {
		apiErr.Kind = *eb.Error
	}
	if eb.Info != nil {
		apiErr.Info = *eb.Info
	}
	return apiErr
}
