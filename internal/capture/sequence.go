package capture

import (
	"strconv"
	"sync/atomic"
)

// CorrelationID identifies a single request within the process.
type CorrelationID uint64

// String returns the origin name of the request.
func (id CorrelationID) String() string {
	return "imp-" + strconv.FormatUint(uint64(id), 10)
}

// Prefix returns the prefix shared by all origins derived from the
// request's origin.
// NOTE: The trailing separator keeps "imp-4" from matching "imp-42".
func (id CorrelationID) Prefix() string {
	return id.String() + "-"
}

// Sequence hands out monotonically increasing correlation ids.
type Sequence struct {
	last *atomic.Uint64
}

// NewSequence creates a new sequence.
func NewSequence() *Sequence {
	return &Sequence{
		last: &atomic.Uint64{},
	}
}

// Next returns the next correlation id. It is safe for concurrent use.
func (s *Sequence) Next() CorrelationID {
	return CorrelationID(s.last.Add(1))
}
