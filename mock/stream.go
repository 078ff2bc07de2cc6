package mock

import (
	"io"

	"github.com/fwojciec/studypal"
)

// Interface compliance check.
var _ studypal.Stream = (*Stream)(nil)

// Stream is a test double for studypal.Stream.
// Set the function fields for the methods you need. NextFn panics when nil
// to catch missing setup. CloseFn and StateFn are nil-safe (no-op and zero
// value) because test code commonly calls defer stream.Close() and these
// methods rarely need custom behavior.
type Stream struct {
	NextFn  func() (studypal.Event, error)
	StateFn func() studypal.StreamState
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (studypal.Event, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream) State() studypal.StreamState {
	if s.StateFn == nil {
		return studypal.StreamStateNew
	}
	return s.StateFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Events returns a Stream that yields events in order and then io.EOF.
func Events(events ...studypal.Event) *Stream {
	i := 0
	return &Stream{
		NextFn: func() (studypal.Event, error) {
			if i >= len(events) {
				return nil, io.EOF
			}
			e := events[i]
			i++
			return e, nil
		},
	}
}
