package lastfm

import (
	"errors"
	"fmt"
)

// Error represents an error reported by the Last.fm service.
//
// Errors returned by the service are passed through the binding layer
// unchanged; use errors.As to recover the code.
type Error struct {
	Code    int    // Last.fm error code
	Message string // Error message from Last.fm
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("lastfm: error %d: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Temporary returns true if the error is temporary and the request
// may succeed when repeated.
//
// The following Last.fm error codes are considered temporary:
//   - 11: Service Offline - temporarily unavailable
//   - 16: Service Temporarily Unavailable
func (e *Error) Temporary() bool {
	switch e.Code {
	case ErrCodeServiceOffline, ErrCodeTempUnavailable:
		return true
	default:
		return false
	}
}

// Common Last.fm error codes.
const (
	ErrCodeInvalidService       = 2
	ErrCodeInvalidMethod        = 3
	ErrCodeAuthenticationFailed = 4
	ErrCodeInvalidFormat        = 5
	ErrCodeInvalidParameters    = 6
	ErrCodeInvalidResourceSpec  = 7
	ErrCodeOperationFailed      = 8
	ErrCodeInvalidSessionKey    = 9
	ErrCodeInvalidAPIKey        = 10
	ErrCodeServiceOffline       = 11
	ErrCodeSubscribersOnly      = 12
	ErrCodeInvalidSignature     = 13
	ErrCodeUnauthorizedToken    = 14
	ErrCodeExpiredToken         = 15
	ErrCodeTempUnavailable      = 16
	ErrCodeRateLimitExceeded    = 29
)

var (
	// ErrAuthenticationRequired is returned by mutating operations when the
	// session holds no write credential. No request is sent.
	ErrAuthenticationRequired = errors.New("lastfm: authentication required")

	// ErrInvalidConfig is returned when client configuration is invalid.
	ErrInvalidConfig = errors.New("lastfm: invalid configuration")

	// ErrNoRecipients is returned by share operations given no recipient.
	ErrNoRecipients = errors.New("lastfm: at least one recipient is required")

	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("lastfm: field not found")

	// ErrMalformedResponse is returned when a successfully parsed response
	// carries values that cannot be interpreted, such as a non-numeric
	// count or a chart whose from timestamp is after its to timestamp.
	ErrMalformedResponse = errors.New("lastfm: malformed response")
)

// NotFoundError is returned when an expected field or occurrence is
// absent from a response.
type NotFoundError struct {
	Field      string
	Occurrence int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("lastfm: field %q (occurrence %d) not found", e.Field, e.Occurrence)
}

// Is makes errors.Is(err, ErrNotFound) true for any *NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
