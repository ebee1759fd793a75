package capture

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func Test_NewHandler(t *testing.T) {
	r := NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	next := slog.NewTextHandler(io.Discard, nil)

	h := NewHandler(r, next, nil)
	require.NotNil(t, h)
	assert.Same(t, r, h.router)
	assert.Equal(t, slog.LevelDebug, h.level.Level())
}

func Test_Handler_Handle(t *testing.T) {
	var buffer bytes.Buffer

	r := NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log := slog.New(NewHandler(
		r,
		slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.LevelDebug,
	))

	s := NewSink(newTestFormatter(t), Limits{}, "req-7", "")
	r.Attach(s)

	ctx := WithOrigin(context.Background(), "req-7")

	log.InfoContext(ctx, "start")
	log.DebugContext(ctx, "validating")
	log.Info("process level")
	log.InfoContext(WithOrigin(context.Background(), "req-8"), "other request")
	log.InfoContext(ctx, "done")

	r.Detach(s)

	assert.Equal(t, []string{
		"INFO  - start",
		"DEBUG - validating",
		"INFO  - done",
	}, s.Drain())

	// the next handler keeps its own level.
	assert.Contains(t, buffer.String(), "msg=start")
	assert.Contains(t, buffer.String(), "msg=done")
	assert.Contains(t, buffer.String(), `msg="process level"`)
	assert.NotContains(t, buffer.String(), "validating")
}

func Test_Handler_Handle_CaptureLevel(t *testing.T) {
	r := NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log := slog.New(NewHandler(r, slog.NewTextHandler(io.Discard, nil), slog.LevelInfo))

	s := NewSink(newTestFormatter(t), Limits{}, "imp-1", "")
	r.Attach(s)

	ctx := WithOrigin(context.Background(), "imp-1")

	log.DebugContext(ctx, "hidden")
	log.WarnContext(ctx, "shown")

	assert.Equal(t, []string{"WARN  - shown"}, s.Drain())
}

func Test_Handler_WithAttrs(t *testing.T) {
	r := NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log := slog.New(NewHandler(r, slog.NewTextHandler(io.Discard, nil), slog.LevelDebug))

	f, err := NewFormatter("%msg%attrs", "UTF-8")
	require.NoError(t, err)

	s := NewSink(f, Limits{}, "imp-1", "")
	r.Attach(s)

	ctx := WithOrigin(context.Background(), "imp-1")

	base := log.With("job", "importer")
	grouped := base.WithGroup("plan").With("stage", "events")

	grouped.InfoContext(ctx, "applying", "count", 3)
	base.InfoContext(ctx, "done")

	assert.Equal(t, []string{
		"applying job=importer plan.stage=events plan.count=3",
		"done job=importer",
	}, s.Drain())
}

func Test_Handler_Enabled(t *testing.T) {
	r := NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := NewHandler(
		r,
		slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.LevelDebug,
	)

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))

	s := NewSink(newTestFormatter(t), Limits{}, "imp-1", "")
	r.Attach(s)

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func Test_Handler_Handle_DerivedOrigin(t *testing.T) {
	r := NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log := slog.New(NewHandler(r, slog.NewTextHandler(io.Discard, nil), slog.LevelDebug))

	seq := NewSequence()
	id := seq.Next()
	other := seq.Next()

	s := NewSink(newTestFormatter(t), Limits{}, id.String(), id.Prefix())
	r.Attach(s)

	ctx := WithOrigin(context.Background(), id.String())
	otherCtx := WithOrigin(context.Background(), other.String())

	log.InfoContext(ctx, "request")
	log.InfoContext(Derive(ctx, "worker-1"), "worker")
	log.InfoContext(Derive(otherCtx, "worker-1"), "foreign worker")

	assert.Equal(t, []string{"INFO  - request", "INFO  - worker"}, s.Drain())
}
