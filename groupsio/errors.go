package groupsio

import (
	"errors"
	"fmt"
)

// ErrorType is the closed set of error kinds reported by the Groups.io API.
type ErrorType string

const (
	ErrorTypeUnknown               ErrorType = "unknown"
	ErrorTypeUnauthorized          ErrorType = "unauthorized"
	ErrorTypeBadRequest            ErrorType = "bad_request"
	ErrorTypeAuthentication        ErrorType = "authentication"
	ErrorTypeExpired               ErrorType = "expired"
	ErrorTypeRateLimit             ErrorType = "rate_limit"
	ErrorTypeInadequatePermissions ErrorType = "inadequate_permissions"
	ErrorTypeInvalidValue          ErrorType = "invalid_value"
	ErrorTypeServer                ErrorType = "server"
)

// ParseErrorType maps a wire value onto an ErrorType. Values outside the
// known set map to ErrorTypeUnknown.
func ParseErrorType(s string) ErrorType {
	switch t := ErrorType(s); t {
	case ErrorTypeUnauthorized,
		ErrorTypeBadRequest,
		ErrorTypeAuthentication,
		ErrorTypeExpired,
		ErrorTypeRateLimit,
		ErrorTypeInadequatePermissions,
		ErrorTypeInvalidValue,
		ErrorTypeServer:
		return t
	default:
		return ErrorTypeUnknown
	}
}

// Sentinel API errors. Compare with errors.Is; any *APIError of the same
// type matches regardless of status code or extra detail.
var (
	ErrUnknown               = &APIError{Type: ErrorTypeUnknown}
	ErrUnauthorized          = &APIError{Type: ErrorTypeUnauthorized}
	ErrBadRequest            = &APIError{Type: ErrorTypeBadRequest}
	ErrAuthentication        = &APIError{Type: ErrorTypeAuthentication}
	ErrExpired               = &APIError{Type: ErrorTypeExpired}
	ErrRateLimit             = &APIError{Type: ErrorTypeRateLimit}
	ErrInadequatePermissions = &APIError{Type: ErrorTypeInadequatePermissions}
	ErrInvalidValue          = &APIError{Type: ErrorTypeInvalidValue}
	ErrServer                = &APIError{Type: ErrorTypeServer}
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid groups.io client configuration")
	// ErrInvalidRequest indicates a request descriptor that cannot be built
	ErrInvalidRequest = errors.New("invalid groups.io request")
	// ErrEmptyBody indicates the API answered without a body
	ErrEmptyBody = errors.New("empty response body")
	// ErrRepeatedPageToken indicates the API handed out the same cursor twice
	ErrRepeatedPageToken = errors.New("pagination cursor repeated")
	// ErrStopPagination may be returned by a ForEachPage callback to stop early
	ErrStopPagination = errors.New("stop pagination")
)

// ErrorPayload is the error envelope returned by the API on failure. Bulk
// operations also embed it once per rejected email.
type ErrorPayload struct {
	Object string `json:"object,omitempty"`
	Type   string `json:"type"`
	Extra  string `json:"extra,omitempty"`
}

// Kind returns the classified error type of the payload.
func (p ErrorPayload) Kind() ErrorType {
	return ParseErrorType(p.Type)
}

// Err converts the payload into an *APIError.
func (p ErrorPayload) Err() error {
	return p.apiError(0)
}

func (p ErrorPayload) apiError(status int) *APIError {
	return &APIError{Type: p.Kind(), Extra: p.Extra, StatusCode: status, raw: p.Type}
}

// APIError is a request the API (or a local permission check) rejected.
type APIError struct {
	Type  ErrorType
	Extra string
	// StatusCode is the HTTP status of the response, or 0 when the error
	// was raised before any request was made.
	StatusCode int

	raw string
}

// Error implements the error interface
func (e *APIError) Error() string {
	msg := "groups.io API error: " + string(e.Type)
	if e.raw != "" && e.raw != string(e.Type) {
		msg += fmt.Sprintf(" (%s)", e.raw)
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Extra != "" {
		msg += ": " + e.Extra
	}
	return msg
}

// Is reports whether target is an *APIError of the same type.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// IsLocal reports whether the error was raised without contacting the API.
func (e *APIError) IsLocal() bool {
	return e.StatusCode == 0
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	switch e.Type {
	case ErrorTypeUnauthorized, ErrorTypeAuthentication, ErrorTypeExpired:
		return true
	}
	return false
}

// TransportError is a call that could not be completed at all: the network
// failed, or the response could not be read or decoded.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("groups.io %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("groups.io %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is, or wraps, a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func inadequatePermissions(detail string) error {
	return &APIError{Type: ErrorTypeInadequatePermissions, Extra: detail}
}
