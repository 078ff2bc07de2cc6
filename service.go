package studypal

import "context"

// ChatService is implemented by the chat backend.
type ChatService interface {
	// Stream sends a message and returns the streamed reply.
	Stream(ctx context.Context, req ChatRequest) (Stream, error)
	// NewSession asks the backend for a fresh session identifier.
	NewSession(ctx context.Context) (string, error)
	// DeleteSession discards the backend's history for a session.
	DeleteSession(ctx context.Context, id string) error
}

// CanvasSolver solves a hand-drawn problem from a PNG snapshot.
type CanvasSolver interface {
	Solve(ctx context.Context, image string) (Solution, error)
}

// Solution is the canvas solver's answer. HTML is produced by the backend
// and rendered as-is.
type Solution struct {
	Success bool
	HTML    string
	Error   string
}

// Presenter opens presentation-generation feeds.
type Presenter interface {
	Open(ctx context.Context, sessionID string) (PresentationFeed, error)
}

// PresentationFeed is a bidirectional presentation-generation channel.
// Next returns io.EOF after a terminal message (completed or error) or when
// the channel is closed by the peer.
type PresentationFeed interface {
	Start(ctx context.Context, req PresentationRequest) error
	Next() (PresentationMessage, error)
	Close() error
}
