package capture

import (
	"fmt"
	"strings"
	"sync"
)

// Limits bounds the amount of output a single sink may keep.
type Limits struct {
	// MaxLines is the maximum amount of lines kept. Zero means unlimited.
	MaxLines int

	// MaxBytes is the maximum total size of the kept lines. Zero means
	// unlimited.
	MaxBytes int
}

// Sink captures the formatted log lines of a single request. Only events
// whose origin equals the name filter, or starts with the prefix filter,
// are kept. A sink with neither filter captures nothing.
type Sink struct {
	name   string
	prefix string

	f   *Formatter
	lim Limits

	mu       sync.Mutex
	lines    []string
	size     int
	dropped  int
	errs     []error
	disposed bool
}

// NewSink creates a new sink. The prefix is optional.
func NewSink(f *Formatter, lim Limits, name, prefix string) *Sink {
	return &Sink{
		name:   name,
		prefix: prefix,
		f:      f,
		lim:    lim,
	}
}

// Matches reports whether events of the given origin belong to the sink.
func (s *Sink) Matches(origin string) bool {
	return (s.name != "" && origin == s.name) ||
		(s.prefix != "" && strings.HasPrefix(origin, s.prefix))
}

// OnEvent formats and stores a matching event. Events of other origins
// are ignored without taking any lock. Formatting failures are recorded
// and the event is dropped, they are never returned.
func (s *Sink) OnEvent(e Event) error {
	if !s.Matches(e.Origin) {
		return nil
	}

	line, err := s.f.Format(e)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return nil
	}

	if err != nil {
		s.errs = append(s.errs, err)
		return nil
	}

	if s.exceeds(len(line)) {
		s.dropped++
		return nil
	}

	s.lines = append(s.lines, line)
	s.size += len(line)

	return nil
}

// exceeds reports whether adding a line of the given size would break
// the sink limits.
// NOTE: Concurrently unsafe method.
func (s *Sink) exceeds(size int) bool {
	if s.dropped > 0 {
		// NOTE: Once something was dropped, later lines are dropped too,
		// otherwise the output would have holes.
		return true
	}

	if s.lim.MaxLines > 0 && len(s.lines) >= s.lim.MaxLines {
		return true
	}

	return s.lim.MaxBytes > 0 && s.size+size > s.lim.MaxBytes
}

// Drain returns the captured lines in emission order. It does not clear
// the sink. When lines were dropped because of the limits, a marker line
// is appended.
func (s *Sink) Drain() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, len(s.lines), len(s.lines)+1)
	copy(lines, s.lines)

	if s.dropped > 0 {
		lines = append(lines, fmt.Sprintf("... %d line(s) truncated by capture limit", s.dropped))
	}

	return lines
}

// Clear removes all captured lines and recorded errors.
func (s *Sink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.size = 0
	s.dropped = 0
	s.errs = nil
}

// Dispose makes the sink inactive, OnEvent becomes a no-op afterwards.
func (s *Sink) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disposed = true
}

// Errors returns the formatting errors recorded so far.
func (s *Sink) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()

	errs := make([]error, len(s.errs))
	copy(errs, s.errs)

	return errs
}
