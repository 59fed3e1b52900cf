package backend

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why an analysis request failed
type Kind string

const (
	// KindTransport covers failures before a response arrived: refused
	// connections, DNS errors, timeouts, unreadable bodies.
	KindTransport Kind = "transport"

	// KindService covers responses that arrived but cannot be used: non-2xx
	// statuses, malformed JSON, results missing a metric domain.
	KindService Kind = "service"
)

// Error is returned by Client.Analyze for every failed attempt
type Error struct {
	Kind Kind `json:"kind"`

	// Message is the service's own error text when it sent one
	Message string `json:"message"`

	// StatusCode is set for KindService errors caused by an HTTP status
	StatusCode int `json:"status_code,omitempty"`

	Endpoint string `json:"endpoint,omitempty"`

	Cause error `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("analysis %s error", e.Kind)}

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same kind
func (e *Error) Is(target error) bool {
	if be, ok := target.(*Error); ok {
		return e.Kind == be.Kind
	}
	return false
}

// Sentinels for errors.Is
var (
	ErrTransport = &Error{Kind: KindTransport}
	ErrService   = &Error{Kind: KindService}
)

func newTransportError(endpoint, message string, cause error) *Error {
	return &Error{Kind: KindTransport, Message: message, Endpoint: endpoint, Cause: cause}
}

func newServiceError(endpoint string, status int, message string, cause error) *Error {
	return &Error{Kind: KindService, Message: message, StatusCode: status, Endpoint: endpoint, Cause: cause}
}

// IsTransport reports whether err is a transport failure
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsService reports whether err is a service failure
func IsService(err error) bool {
	return errors.Is(err, ErrService)
}
