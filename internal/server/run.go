package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/davseby/asyncapi-importer/internal/capture"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

// _correlationKey is the gin context key of the request's correlation id.
const _correlationKey = "correlation"

// operation is the body of a captured request. It returns the response
// status; a zero status means 200 on success and 500 on failure.
type operation func(ctx context.Context) (int, error)

// captured runs the operation with its logs captured and returns the
// captured lines together with the response status. When the operation
// fails, its error message is the last line.
func (s *Server) captured(c *gin.Context, op operation) ([]string, int) {
	id := s.sequence.Next()
	c.Set(_correlationKey, id.String())

	sink := capture.NewSink(s.formatter, s.limits, id.String(), id.Prefix())
	s.router.Attach(sink)

	status, err := s.run(capture.WithOrigin(c.Request.Context(), id.String()), op)

	s.router.Detach(sink)

	lines := sink.Drain()
	errs := sink.Errors()

	sink.Dispose()
	sink.Clear()

	for _, ferr := range errs {
		s.log.With("error", ferr).
			With("correlation", id.String()).
			Warn("dropping captured line")
	}

	switch {
	case err != nil:
		lines = append(lines, err.Error())

		if status == 0 {
			status = http.StatusInternalServerError
		}
	case status == 0:
		status = http.StatusOK
	}

	s.metrics.captured.Observe(float64(len(lines)))

	return lines, status
}

// run executes the operation and converts a panic into an error.
func (s *Server) run(ctx context.Context, op operation) (status int, err error) {
	defer func() {
		if p := recover(); p != nil {
			s.log.ErrorContext(ctx, "operation panicked", slog.Any("panic", p))

			status = http.StatusInternalServerError
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	return op(ctx)
}
