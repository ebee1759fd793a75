// package capture contains per-request log capturing. Every log record
// emitted through the capture Handler is published to a process-wide
// Router, which fans it out to the Sinks attached by in-flight requests.
// A Sink keeps only the records whose origin belongs to its request.
package capture

import "context"

// originKey is the context key of the log origin.
type originKey struct{}

// WithOrigin returns a context that tags every log record emitted with it
// with the given origin.
func WithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, originKey{}, origin)
}

// Origin returns the log origin stored in the context or an empty string.
func Origin(ctx context.Context) string {
	origin, _ := ctx.Value(originKey{}).(string)
	return origin
}

// Derive returns a context with an origin derived from the parent one.
// It should be used when a request hands work over to other goroutines,
// so that their logs still reach the request's sink through its prefix
// filter.
func Derive(ctx context.Context, suffix string) context.Context {
	return WithOrigin(ctx, Origin(ctx)+"-"+suffix)
}
