package studypal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// FallbackMessage is shown after whatever partial text arrived when the
// transport fails.
const FallbackMessage = "I'm sorry, I'm having trouble connecting to the server right now. Please make sure the chat backend is running and try again."

// defaultFollowupResponse replaces an empty clarification preamble.
const defaultFollowupResponse = "I need more information to help you better."

// Reply is the result of draining one chat stream.
type Reply struct {
	SessionID string
	Text      string         // concatenated content fragments
	Followup  *EventFollowup // set when the backend asked clarifying questions
	Err       error          // transport, backend or cancellation error
}

// Display returns the text to show for the reply. Partial text is kept on
// failure: backend errors are appended verbatim, anything else gets
// FallbackMessage. A cancelled reply shows only what arrived.
func (r Reply) Display() string {
	if r.Followup != nil {
		return FollowupMarkdown(*r.Followup)
	}
	if r.Err == nil || errors.Is(r.Err, context.Canceled) {
		return r.Text
	}
	msg := FallbackMessage
	var be *BackendError
	if errors.As(r.Err, &be) {
		msg = be.Message
	}
	if r.Text == "" {
		return msg
	}
	return r.Text + "\n\n" + msg
}

// FollowupMarkdown formats clarifying questions as a numbered bold list.
func FollowupMarkdown(f EventFollowup) string {
	resp := f.Response
	if resp == "" {
		resp = defaultFollowupResponse
	}
	var b strings.Builder
	b.WriteString(resp)
	b.WriteString("\n\n")
	for i, q := range f.Questions {
		fmt.Fprintf(&b, "**%d.** %s\n\n", i+1, q)
	}
	return b.String()
}

// CollectOption configures a single Collect invocation.
type CollectOption func(*collectConfig)

type collectConfig struct {
	onEvent func(Event)
}

// WithEventHandler sets a callback that receives each event, synchronously
// and in arrival order. If nil or not set, events are silently discarded.
func WithEventHandler(h func(Event)) CollectOption {
	return func(c *collectConfig) {
		c.onEvent = h
	}
}

// Drain reads s until its terminal event, calling handler for each event
// synchronously and in arrival order, and closes s before returning. The
// returned error is non-nil only when s could not be read to its terminal
// event (cancellation or Close); backend and transport failures reach
// handler as EventError.
func Drain(ctx context.Context, s Stream, handler func(Event)) error {
	defer s.Close()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		evt, err := s.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if handler != nil {
			handler(evt)
		}
		if Terminal(evt) {
			return nil
		}
	}
}

// Collect drains s and assembles a Reply. It stops at the first terminal
// event and closes s before returning.
func Collect(ctx context.Context, s Stream, opts ...CollectOption) Reply {
	var cfg collectConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var reply Reply
	var text strings.Builder
	err := Drain(ctx, s, func(evt Event) {
		if cfg.onEvent != nil {
			cfg.onEvent(evt)
		}
		switch e := evt.(type) {
		case EventSession:
			reply.SessionID = e.SessionID
		case EventContent:
			text.WriteString(e.Content)
		case EventFollowup:
			reply.Followup = &e
		case EventError:
			if e.Err != nil {
				reply.Err = e.Err
			} else {
				reply.Err = &BackendError{Message: e.Message}
			}
		}
	})
	if err != nil {
		reply.Err = err
	}
	reply.Text = text.String()
	return reply
}

// Chat runs chat turns against a ChatService and records them in a Session.
type Chat struct {
	service ChatService
	userID  string
}

// NewChat creates a Chat for the given service and user.
func NewChat(service ChatService, userID string) *Chat {
	return &Chat{service: service, userID: userID}
}

// Send sends text as a new turn. The user message and the displayed reply
// are appended to session; a backend-assigned session ID is adopted when
// session has none. The returned error is only non-nil when the request was
// rejected before anything was sent; stream failures are reported in
// Reply.Err and rendered through Reply.Display.
func (c *Chat) Send(ctx context.Context, session *Session, text string, opts ...CollectOption) (Reply, error) {
	req := ChatRequest{Message: text, SessionID: session.ID, UserID: c.userID}
	if err := req.Validate(); err != nil {
		return Reply{}, err
	}

	session.Messages = append(session.Messages, UserMessage{Text: text, Timestamp: time.Now()})
	session.UpdatedAt = time.Now()

	var reply Reply
	stream, err := c.service.Stream(ctx, req)
	if err != nil {
		reply.Err = err
	} else {
		reply = Collect(ctx, stream, opts...)
	}

	if session.ID == "" && reply.SessionID != "" {
		session.ID = reply.SessionID
	}
	msg := AssistantMessage{
		Text:      reply.Display(),
		Failed:    reply.Err != nil,
		Timestamp: time.Now(),
	}
	if reply.Followup != nil {
		msg.Followup = reply.Followup.Questions
	}
	session.Messages = append(session.Messages, msg)
	session.UpdatedAt = time.Now()
	return reply, nil
}

// Reset discards the backend history for session and starts a new one.
func (c *Chat) Reset(ctx context.Context, session *Session) error {
	if session.ID != "" {
		if err := c.service.DeleteSession(ctx, session.ID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	id, err := c.service.NewSession(ctx)
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	now := time.Now()
	*session = Session{ID: id, CreatedAt: now, UpdatedAt: now}
	return nil
}
