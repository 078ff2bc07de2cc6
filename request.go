package studypal

import (
	"fmt"
	"strings"
)

// ChatRequest is a single chat turn sent to the backend.
// SessionID may be empty; the backend then assigns one and announces it
// with an EventSession.
type ChatRequest struct {
	Message   string
	SessionID string
	UserID    string
}

// Validate checks the request before it is sent.
func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("message must not be empty: %w", ErrValidation)
	}
	return nil
}

// PresentationRequest configures a presentation generation run.
type PresentationRequest struct {
	Topic      string
	SlideCount int
	Tone       string
	Theme      string
}

// DefaultPresentationRequest returns the defaults the presentation screen
// starts with.
func DefaultPresentationRequest(topic string) PresentationRequest {
	return PresentationRequest{
		Topic:      topic,
		SlideCount: 6,
		Tone:       "professional",
		Theme:      "modern",
	}
}

// Validate checks the request before it is sent.
func (r PresentationRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("topic must not be empty: %w", ErrValidation)
	}
	if r.SlideCount < 1 {
		return fmt.Errorf("slide count must be positive, got %d: %w", r.SlideCount, ErrValidation)
	}
	return nil
}
