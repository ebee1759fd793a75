package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDomainNotFound is returned when an application domain does not
// exist.
var ErrDomainNotFound = errors.New("application domain not found")

// ErrTooManyPages is returned when a listing spans more pages than
// allowed.
var ErrTooManyPages = errors.New("too many pages")

// StatusError is returned when the cloud API responds with a non-2xx
// status code.
type StatusError struct {
	// Code is the HTTP status code of the response.
	Code int

	// Message is the (redacted) response message.
	Message string
}

// Error returns the error message.
func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cloud api responded with status %d", e.Code)
	}

	return fmt.Sprintf("cloud api responded with status %d: %s", e.Code, e.Message)
}

// Redact removes a bearer token, and everything after it, from the
// message.
func Redact(msg string) string {
	if i := strings.Index(msg, " Bearer "); i > 0 {
		return msg[:i]
	}

	return msg
}
