// Package bubbletea provides a Bubble Tea chat TUI for the StudyPal backend.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/studypal"
)

// SendFunc sends one chat turn. The onEvent callback is called for each
// stream event. The function blocks until the reply is complete or the
// context is cancelled.
type SendFunc func(ctx context.Context, session *studypal.Session, text string, onEvent func(studypal.Event)) (studypal.Reply, error)

// ResetFunc starts a fresh backend session.
type ResetFunc func(ctx context.Context, session *studypal.Session) error

// ChatFuncs adapts a [studypal.Chat] to the TUI.
func ChatFuncs(chat *studypal.Chat) (SendFunc, ResetFunc) {
	send := func(ctx context.Context, session *studypal.Session, text string, onEvent func(studypal.Event)) (studypal.Reply, error) {
		return chat.Send(ctx, session, text, studypal.WithEventHandler(onEvent))
	}
	return send, chat.Reset
}

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// StreamEventMsg wraps a stream event for delivery to the Bubble Tea model.
type StreamEventMsg struct {
	Event studypal.Event
}

// ReplyMsg signals that a chat turn has completed. Err is set when the turn
// was rejected before anything was sent.
type ReplyMsg struct {
	Reply studypal.Reply
	Err   error
}

// ResetDoneMsg signals that a session reset has completed.
type ResetDoneMsg struct {
	Err error
}

// statusExpiredMsg clears a transient status if no newer status replaced it.
type statusExpiredMsg struct {
	seq int
}
