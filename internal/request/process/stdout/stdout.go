package stdout

import (
	"github.com/davseby/asyncapi-importer/internal/request"
	"golang.org/x/exp/slog"
)

// Processor is a requests processor that uses standard output to log
// requests.
type Processor struct {
	log *slog.Logger
}

// NewProcessor creates a new request processor.
func NewProcessor(log *slog.Logger) *Processor {
	return &Processor{
		log: log.With("job", "requests-stdout-processor"),
	}
}

// Handle handles a new record.
func (p *Processor) Handle(rec request.Record) error {
	attrs := []any{
		slog.String("id", rec.ID.String()),
		slog.String("method", rec.Method),
		slog.String("host", rec.Host),
		slog.String("path", rec.Path),
		slog.Int("status", rec.Status),
		slog.Duration("duration", rec.Duration),
	}

	if rec.Correlation != "" {
		attrs = append(attrs, slog.String("correlation", rec.Correlation))
	}

	p.log.Info("publishing request record", attrs...)

	return nil
}
