package studypal

// StreamState indicates the current state of a Stream.
type StreamState int

const (
	StreamStateNew       StreamState = iota // Before Next() is ever called.
	StreamStateStreaming                    // Mid-stream, receiving events.
	StreamStateComplete                     // A terminal event or end of input was seen.
	StreamStateError                        // A fatal error event was delivered.
	StreamStateClosed                       // Close() called before terminal state.
)

// Stream uses a pull-based iterator pattern over decoded stream events.
// Cancellation flows through the context passed to ChatService.Stream and
// through Close, which stops dispatch and releases the transport.
//
// Next returns events in arrival order. A fatal condition (backend error
// event, transport failure, idle timeout) is delivered once as an
// EventError; afterwards, and after EventDone or EventFollowup, Next
// returns io.EOF. Calling Next after Close returns ErrStreamClosed.
type Stream interface {
	Next() (Event, error)
	State() StreamState
	Close() error
}
