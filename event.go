package studypal

// Event is a sealed interface representing one decoded stream record.
// Content events must be concatenated in arrival order. Exactly one
// terminal event (EventDone, EventFollowup or EventError) ends a stream.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// Status is a transient, UI-facing backend state change.
type Status string

// Known statuses.
const (
	StatusSearchStart     Status = "search_start"
	StatusSearchComplete  Status = "search_complete"
	StatusResponseStart   Status = "response_start"
	StatusGeneratingImage Status = "generating_image"
	StatusImageComplete   Status = "image_complete"
)

// Transient reports whether the status should be cleared automatically by
// the consumer after a short delay.
func (s Status) Transient() bool {
	return s == StatusSearchComplete || s == StatusImageComplete
}

// EventSession carries the backend-assigned session identifier.
type EventSession struct {
	SessionID string
}

func (EventSession) event() {}

// EventStatus reports a backend status change.
type EventStatus struct {
	Status Status
}

func (EventStatus) event() {}

// EventContent is an incremental text fragment of the response.
type EventContent struct {
	Content string
}

func (EventContent) event() {}

// EventFollowup signals the backend needs clarification instead of giving a
// final answer. It ends the stream.
type EventFollowup struct {
	Response  string
	Questions []string
}

func (EventFollowup) event() {}

// EventDone is the explicit stream terminator.
type EventDone struct{}

func (EventDone) event() {}

// EventError is a fatal error for the stream it appears in. Err is nil when
// the backend signalled the error and holds the cause for transport
// failures and idle timeouts.
type EventError struct {
	Message string
	Err     error
}

func (EventError) event() {}

// Terminal reports whether e ends a logical stream.
func Terminal(e Event) bool {
	switch e.(type) {
	case EventDone, EventFollowup, EventError:
		return true
	default:
		return false
	}
}

// Interface compliance checks.
var (
	_ Event = EventSession{}
	_ Event = EventStatus{}
	_ Event = EventContent{}
	_ Event = EventFollowup{}
	_ Event = EventDone{}
	_ Event = EventError{}
)
