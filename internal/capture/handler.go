package capture

import (
	"context"

	"golang.org/x/exp/slog"
)

// Handler is a slog.Handler that publishes records to the router before
// passing them on to the next handler.
type Handler struct {
	router *Router
	next   slog.Handler
	level  slog.Leveler

	attrs []slog.Attr
	group string
}

// NewHandler creates a new handler. Records below the level are not
// published, the next handler applies its own level.
func NewHandler(router *Router, next slog.Handler, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelDebug
	}

	return &Handler{
		router: router,
		next:   next,
		level:  level,
	}
}

// Enabled reports whether either the router or the next handler wants
// records of the level.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.captures(level) || h.next.Enabled(ctx, level)
}

// Handle publishes the record and passes it to the next handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if h.captures(r.Level) {
		h.router.Publish(h.event(ctx, r))
	}

	if !h.next.Enabled(ctx, r.Level) {
		return nil
	}

	return h.next.Handle(ctx, r)
}

// WithAttrs returns a new handler with the given attributes bound.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	h2 := h.clone()
	h2.next = h.next.WithAttrs(attrs)

	for _, a := range attrs {
		h2.attrs = append(h2.attrs, h.qualify(a))
	}

	return h2
}

// WithGroup returns a new handler that nests later attributes under the
// group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	h2 := h.clone()
	h2.next = h.next.WithGroup(name)

	if h2.group != "" {
		h2.group += "." + name
	} else {
		h2.group = name
	}

	return h2
}

// captures reports whether records of the level should be published.
func (h *Handler) captures(level slog.Level) bool {
	return level >= h.level.Level() && h.router.Len() > 0
}

// event converts the record into an event.
func (h *Handler) event(ctx context.Context, r slog.Record) Event {
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.qualify(a))
		return true
	})

	return Event{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
		Origin:  Origin(ctx),
	}
}

// qualify folds the current group into the attribute key.
func (h *Handler) qualify(a slog.Attr) slog.Attr {
	if h.group == "" {
		return a
	}

	a.Key = h.group + "." + a.Key

	return a
}

// clone returns a shallow copy with its own attribute slice.
func (h *Handler) clone() *Handler {
	h2 := *h
	h2.attrs = make([]slog.Attr, len(h.attrs), len(h.attrs)+1)
	copy(h2.attrs, h.attrs)

	return &h2
}
