// package request contains necessary types and functions to handle
// served requests logging and processing.
package request

import (
	"strings"
	"time"

	"github.com/rs/xid"
)

// Record contains relevant information about the served requests.
type Record struct {
	// ID is the unique identifier of the request. It is returned to the
	// caller in the X-Request-ID header.
	ID xid.ID

	// Method is the HTTP method of the request.
	Method string

	// Host is the host of the request, without the port.
	Host string

	// Path is the URL path of the request.
	Path string

	// Status is the response status code.
	Status int

	// Correlation is the log capture origin of the request. It is empty
	// for requests that do not capture logs.
	Correlation string

	// CreatedAt is the time when the request was created.
	CreatedAt time.Time

	// Duration is the time it took to serve the request.
	Duration time.Duration
}

// NewRecord creates a new request record.
func NewRecord(method, host, path string) Record {
	return Record{
		ID:        xid.New(),
		Method:    method,
		Host:      strings.Split(host, ":")[0],
		Path:      path,
		CreatedAt: time.Now(),
	}
}

// Finish completes the record with the response details.
func (r *Record) Finish(status int, correlation string) {
	r.Status = status
	r.Correlation = correlation
	r.Duration = time.Since(r.CreatedAt)
}
