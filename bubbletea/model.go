package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/studypal"
)

// statusTTL is how long a transient status stays in the status line.
const statusTTL = time.Second

// resetCommand typed into the input starts a new session.
const resetCommand = "/new"

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the chat TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model
	// Spinner animates the status line while a reply streams.
	Spinner spinner.Model

	send    SendFunc
	reset   ResetFunc
	session *studypal.Session
	theme   studypal.Theme
	styles  Styles

	blocks []MessageBlock
	active *AssistantTextBlock // block receiving content for the current turn

	status    studypal.Status
	statusSeq int

	running bool
	cancel  context.CancelFunc
	eventCh chan studypal.Event
	doneCh  chan ReplyMsg
	err     error
	ready   bool
}

// Option configures a [Model].
type Option func(*Model)

// WithReset enables the "/new" command.
func WithReset(reset ResetFunc) Option {
	return func(m *Model) { m.reset = reset }
}

// New creates a new TUI Model with the given send function, session, and theme.
func New(send SendFunc, session *studypal.Session, theme studypal.Theme, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask a study question..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	styles := NewStyles(theme)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.Accent

	m := Model{
		Input:   ti,
		Spinner: sp,
		send:    send,
		session: session,
		theme:   theme,
		styles:  styles,
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Running returns whether a reply is currently streaming.
func (m Model) Running() bool { return m.running }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Status returns the status currently shown in the status line.
func (m Model) Status() studypal.Status { return m.status }

// SetRunningWithCancel is a test helper that puts the model in a running state
// with a cancel function.
func SetRunningWithCancel(m Model, cancel func()) (Model, tea.Cmd) {
	m.running = true
	m.cancel = cancel
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case StreamEventMsg:
		var cmd tea.Cmd
		m, cmd = m.processEvent(msg.Event)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		cmds = append(cmds, cmd)
		if m.eventCh != nil {
			cmds = append(cmds, listenForEvent(m.eventCh, m.doneCh))
		}
		return m, tea.Batch(cmds...)

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case ReplyMsg:
		m = m.finishReply(msg)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		return m, m.Input.Focus()

	case ResetDoneMsg:
		m.running = false
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.blocks = nil
			m.active = nil
			m.Viewport.SetContent("")
		}
		return m, m.Input.Focus()
	}

	// Pass remaining messages to sub-components.
	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := msg.Height - inputH - statusHeight - borderHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m = m.renderSession()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		if text == resetCommand && m.reset != nil {
			return m.startReset()
		}
		return m.submitInput(text)
	}

	// When idle, pass keys to both input (for typing) and viewport
	// (for scrolling). Only forward non-character keys to viewport to avoid
	// conflicts (e.g. 'j'/'k' are viewport scroll AND text characters).
	if !m.running {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil
	m.status = ""

	m.blocks = append(m.blocks, NewUserMessageBlock(text, m.styles))
	m.active = nil
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.eventCh = make(chan studypal.Event, 256)
	m.doneCh = make(chan ReplyMsg, 1)
	m.running = true

	m.Input.Blur()

	return m, tea.Batch(
		startSend(m.send, ctx, m.session, text, m.eventCh, m.doneCh),
		listenForEvent(m.eventCh, m.doneCh),
		m.Spinner.Tick,
	)
}

func (m Model) startReset() (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil
	m.running = true
	m.Input.Blur()
	reset, session := m.reset, m.session
	return m, func() tea.Msg {
		return ResetDoneMsg{Err: reset(context.Background(), session)}
	}
}

// renderSession creates blocks from existing session messages.
func (m Model) renderSession() Model {
	for _, msg := range m.session.Messages {
		switch msg := msg.(type) {
		case studypal.UserMessage:
			m.blocks = append(m.blocks, NewUserMessageBlock(msg.Text, m.styles))
		case studypal.AssistantMessage:
			block := NewAssistantTextBlock(m.theme, m.styles)
			block.Finish(msg.Text, msg.Failed)
			m.blocks = append(m.blocks, block)
		}
	}
	return m
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

// processEvent routes a stream event to the active block or status line.
func (m Model) processEvent(evt studypal.Event) (Model, tea.Cmd) {
	switch e := evt.(type) {
	case studypal.EventContent:
		m.activeBlock().Append(e.Content)
	case studypal.EventStatus:
		m.status = e.Status
		m.statusSeq++
		if e.Status.Transient() {
			seq := m.statusSeq
			return m, tea.Tick(statusTTL, func(time.Time) tea.Msg {
				return statusExpiredMsg{seq: seq}
			})
		}
	}
	return m, nil
}

// activeBlock returns the block for the current turn, creating it on the
// first fragment.
func (m *Model) activeBlock() *AssistantTextBlock {
	if m.active == nil {
		m.active = NewAssistantTextBlock(m.theme, m.styles)
		m.blocks = append(m.blocks, m.active)
	}
	return m.active
}

func (m Model) finishReply(msg ReplyMsg) Model {
	m.running = false
	m.cancel = nil
	m.eventCh = nil
	m.doneCh = nil
	m.status = ""

	if msg.Err != nil {
		m.err = msg.Err
		return m
	}
	reply := msg.Reply
	failed := reply.Err != nil && !errors.Is(reply.Err, context.Canceled)
	if text := reply.Display(); text != "" {
		m.activeBlock().Finish(text, failed)
	}
	m.active = nil
	return m
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.running {
		label := statusLabel(m.status)
		if label == "" {
			label = "Thinking..."
		}
		return m.Spinner.View() + " " + m.styles.Muted.Render(label)
	}
	if m.status != "" {
		return m.styles.Success.Render(statusLabel(m.status))
	}
	help := "Enter to send, Ctrl+C to quit"
	if m.reset != nil {
		help = "Enter to send, " + resetCommand + " for a new session, Ctrl+C to quit"
	}
	return m.styles.Muted.Render(help)
}

func statusLabel(s studypal.Status) string {
	switch s {
	case studypal.StatusSearchStart:
		return "Searching the web..."
	case studypal.StatusSearchComplete:
		return "Search complete"
	case studypal.StatusResponseStart:
		return "Writing response..."
	case studypal.StatusGeneratingImage:
		return "Generating image..."
	case studypal.StatusImageComplete:
		return "Image ready"
	default:
		return string(s)
	}
}

// startSend runs one chat turn in a goroutine and signals completion.
func startSend(send SendFunc, ctx context.Context, session *studypal.Session, text string, eventCh chan<- studypal.Event, doneCh chan<- ReplyMsg) tea.Cmd {
	return func() tea.Msg {
		reply, err := send(ctx, session, text, func(e studypal.Event) {
			select {
			case eventCh <- e:
			case <-ctx.Done():
			}
		})
		close(eventCh)
		doneCh <- ReplyMsg{Reply: reply, Err: err}
		return nil
	}
}

// listenForEvent waits for the next event from the channel.
// When the channel closes, it returns the ReplyMsg from doneCh.
func listenForEvent(ch <-chan studypal.Event, doneCh <-chan ReplyMsg) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return <-doneCh
		}
		return StreamEventMsg{Event: evt}
	}
}
