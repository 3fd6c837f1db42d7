package gyazo

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingCredential matches every MissingCredentialError via errors.Is
var ErrMissingCredential = errors.New("missing credential")

// Credential names one of the credential kinds a client can hold
type Credential int

const (
	// CredentialCookie is the Gyazo_session cookie used by the internal API
	CredentialCookie Credential = iota
	// CredentialDevice is the device identifier used by CGI and video uploads
	CredentialDevice
	// CredentialKey is the access token used by the official API
	CredentialKey
)

// String returns the human readable name of a credential kind
func (c Credential) String() string {
	switch c {
	case CredentialCookie:
		return "cookie"
	case CredentialDevice:
		return "device ID"
	case CredentialKey:
		return "API key"
	default:
		return "unknown credential"
	}
}

// MissingCredentialError reports that an operation needed a credential that was not configured
type MissingCredentialError struct {
	Credential Credential
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("no %s configured", e.Credential)
}

// Is lets errors.Is(err, ErrMissingCredential) match
func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// RequestError wraps a failure of the HTTP round trip itself
type RequestError struct {
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// FileError wraps a failure of a local file operation
type FileError struct {
	Message string
	Path    string
	Err     error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Message, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// URLError reports a response body that should have been a bare URL
type URLError struct {
	Message string
	Text    string
	Err     error
}

func (e *URLError) Error() string {
	return fmt.Sprintf("%s: %v (%q)", e.Message, e.Err, e.Text)
}

func (e *URLError) Unwrap() error {
	return e.Err
}

// APIStatus classifies a non-2xx response from the Gyazo API
type APIStatus int

const (
	StatusUndocumented APIStatus = iota
	StatusInvalidRequest
	StatusUnauthenticated
	StatusProRequired
	StatusUnauthorized
	StatusNotFound
	StatusUnprocessable
	StatusRateLimited
	StatusUnexpected
)

// ClassifyStatus maps an HTTP status code onto the documented API statuses
func ClassifyStatus(code int) APIStatus {
	switch code {
	case http.StatusBadRequest:
		return StatusInvalidRequest
	case http.StatusUnauthorized:
		return StatusUnauthenticated
	case http.StatusPaymentRequired:
		return StatusProRequired
	case http.StatusForbidden:
		return StatusUnauthorized
	case http.StatusNotFound:
		return StatusNotFound
	case http.StatusUnprocessableEntity:
		return StatusUnprocessable
	case http.StatusTooManyRequests:
		return StatusRateLimited
	case http.StatusInternalServerError:
		return StatusUnexpected
	default:
		return StatusUndocumented
	}
}

// String returns the string representation of an APIStatus
func (s APIStatus) String() string {
	switch s {
	case StatusInvalidRequest:
		return "invalid request"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusProRequired:
		return "Pro required"
	case StatusUnauthorized:
		return "unauthorized"
	case StatusNotFound:
		return "not found"
	case StatusUnprocessable:
		return "unprocessable content"
	case StatusRateLimited:
		return "rate limited"
	case StatusUnexpected:
		return "unexpected"
	default:
		return "undocumented status code"
	}
}

// APIError represents a non-2xx response
type APIError struct {
	Message    string
	Status     APIStatus
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	status := e.Status.String()
	if e.Status == StatusUndocumented {
		status = fmt.Sprintf("%s: %d", status, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Message, status, e.Body)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.Status == StatusNotFound
}

// IsRateLimited checks if the API asked us to slow down
func (e *APIError) IsRateLimited() bool {
	return e.Status == StatusRateLimited
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.Status == StatusUnauthenticated || e.Status == StatusUnauthorized
}

// DecodeError reports a response body that did not decode into the expected type.
// Text holds the body verbatim.
type DecodeError struct {
	Message  string
	Text     string
	TypeName string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s - type %s: %v (%s)", e.Message, e.TypeName, e.Err, e.Text)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a 2xx response that broke an assumption about the API
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return e.Message
}
