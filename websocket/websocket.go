// Package websocket implements [studypal.PresentationFeed] over a gorilla
// WebSocket connection.
package websocket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/studypal"
	spjson "github.com/fwojciec/studypal/json"
	"github.com/gorilla/websocket"
)

const (
	defaultPingInterval = 30 * time.Second
	writeTimeout        = 10 * time.Second
)

// Interface compliance checks.
var (
	_ studypal.PresentationFeed = (*Feed)(nil)
	_ studypal.Presenter        = (*Presenter)(nil)
)

// Option configures a [Feed].
type Option func(*config)

type config struct {
	pingInterval time.Duration
	logger       *slog.Logger
	dialer       *websocket.Dialer
}

// WithPingInterval sets how often a keepalive ping is sent after Start.
// Zero disables keepalives.
func WithPingInterval(d time.Duration) Option {
	return func(c *config) { c.pingInterval = d }
}

// WithLogger sets the logger for skipped messages and keepalive failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithDialer sets a custom dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *config) { c.dialer = d }
}

// Presenter opens feeds at <baseURL>/ws/<session id>.
type Presenter struct {
	baseURL string
	opts    []Option
}

// NewPresenter creates a [Presenter] for a ws:// or wss:// base URL.
func NewPresenter(baseURL string, opts ...Option) *Presenter {
	return &Presenter{baseURL: strings.TrimRight(baseURL, "/"), opts: opts}
}

// Open dials the feed for sessionID.
func (p *Presenter) Open(ctx context.Context, sessionID string) (studypal.PresentationFeed, error) {
	return Dial(ctx, p.baseURL+"/ws/"+sessionID, p.opts...)
}

// Feed is one presentation-generation connection. Next must be called from
// a single goroutine; Start and Close may be called concurrently with it.
type Feed struct {
	conn   *websocket.Conn
	cfg    config
	logger *slog.Logger

	writeMu sync.Mutex
	started bool
	stop    chan struct{}
	once    sync.Once

	done bool
}

// Dial connects to url. The caller must call Close.
func Dial(ctx context.Context, url string, opts ...Option) (*Feed, error) {
	cfg := config{
		pingInterval: defaultPingInterval,
		logger:       slog.New(slog.DiscardHandler),
		dialer:       websocket.DefaultDialer,
	}
	for _, o := range opts {
		o(&cfg)
	}

	conn, resp, err := cfg.dialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket: dial %s: HTTP %d: %w", url, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket: dial %s: %w", url, err)
	}
	return &Feed{
		conn:   conn,
		cfg:    cfg,
		logger: cfg.logger,
		stop:   make(chan struct{}),
	}, nil
}

// Start sends the start_presentation request and begins keepalive pings.
func (f *Feed) Start(ctx context.Context, req studypal.PresentationRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("websocket: %w", err)
	}
	data, err := spjson.MarshalStart(req)
	if err != nil {
		return fmt.Errorf("websocket: %w", err)
	}
	if err := f.write(ctx, data); err != nil {
		return err
	}

	f.writeMu.Lock()
	startPing := !f.started && f.cfg.pingInterval > 0
	f.started = true
	f.writeMu.Unlock()
	if startPing {
		go f.keepalive()
	}
	return nil
}

// Next returns the next presentation message. Unknown message types are
// skipped. After a completed or error message, and when the peer closes the
// connection, Next returns io.EOF.
func (f *Feed) Next() (studypal.PresentationMessage, error) {
	for !f.done {
		_, data, err := f.conn.ReadMessage()
		if err != nil {
			f.done = true
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || f.closed() {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("websocket: read: %w", err)
		}
		msg, err := spjson.DecodePresentationMessage(data)
		if err != nil {
			f.logger.Warn("websocket: skipping malformed message", "error", err)
			continue
		}
		if msg == nil {
			continue
		}
		switch msg.(type) {
		case studypal.PresentationCompleted, studypal.PresentationError:
			f.done = true
		}
		return msg, nil
	}
	return nil, io.EOF
}

// Close stops keepalives, says goodbye to the peer and closes the
// connection. It is safe to call more than once.
func (f *Feed) Close() error {
	var err error
	f.once.Do(func() {
		close(f.stop)
		f.writeMu.Lock()
		_ = f.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		f.writeMu.Unlock()
		err = f.conn.Close()
	})
	return err
}

func (f *Feed) closed() bool {
	select {
	case <-f.stop:
		return true
	default:
		return false
	}
}

func (f *Feed) keepalive() {
	t := time.NewTicker(f.cfg.pingInterval)
	defer t.Stop()
	for {
		select {
		case <-f.stop:
			return
		case <-t.C:
			if err := f.write(context.Background(), spjson.Ping); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					f.logger.Warn("websocket: keepalive failed", "error", err)
				}
				return
			}
		}
	}
}

// write sends one text frame. gorilla connections allow a single concurrent
// writer.
func (f *Feed) write(ctx context.Context, data []byte) error {
	if f.closed() {
		return fmt.Errorf("websocket: %w", studypal.ErrStreamClosed)
	}
	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	if err := f.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("websocket: %w", err)
	}
	if err := f.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("websocket: write: %w", err)
	}
	return nil
}
