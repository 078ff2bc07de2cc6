package sse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/studypal"
)

const readSize = 4096

// Interface compliance check.
var _ studypal.Stream = (*Stream)(nil)

// Stream implements [studypal.Stream] over a chunked response body. A
// reader goroutine moves chunks off the body so Next can honour the context,
// the idle timeout and a concurrent Close.
//
// A transport error, cancellation or idle timeout is delivered as an
// EventError. If the body ends without a terminal record, Next delivers one
// EventDone so every stream ends with exactly one terminal event.
type Stream struct {
	ctx    context.Context
	body   io.ReadCloser
	dec    *Decoder
	idle   time.Duration
	chunks chan chunk
	stop   chan struct{}
	once   sync.Once

	mu    sync.Mutex
	state studypal.StreamState

	queue []studypal.Event
}

type chunk struct {
	data []byte
	err  error
}

// Option configures a [Stream].
type Option func(*Stream)

// WithIdleTimeout fails the stream when the body delivers nothing for d.
// Zero disables the timeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Stream) { s.idle = d }
}

// WithLogger sets the logger that receives malformed-record reports.
func WithLogger(l *slog.Logger) Option {
	return func(s *Stream) { s.dec = NewDecoder(l) }
}

// NewStream starts reading body. The caller must call Close.
func NewStream(ctx context.Context, body io.ReadCloser, opts ...Option) *Stream {
	s := &Stream{
		ctx:    ctx,
		body:   body,
		dec:    NewDecoder(nil),
		chunks: make(chan chunk),
		stop:   make(chan struct{}),
		state:  studypal.StreamStateNew,
	}
	for _, o := range opts {
		o(s)
	}
	go s.read()
	return s
}

func (s *Stream) read() {
	for {
		buf := make([]byte, readSize)
		n, err := s.body.Read(buf)
		if n > 0 {
			select {
			case s.chunks <- chunk{data: buf[:n]}:
			case <-s.stop:
				return
			}
		}
		if err != nil {
			select {
			case s.chunks <- chunk{err: err}:
			case <-s.stop:
			}
			return
		}
	}
}

// Next returns the next event. It returns io.EOF after the terminal event
// and [studypal.ErrStreamClosed] once Close has been called.
func (s *Stream) Next() (studypal.Event, error) {
	switch s.State() {
	case studypal.StreamStateClosed:
		return nil, studypal.ErrStreamClosed
	case studypal.StreamStateComplete, studypal.StreamStateError:
		return nil, io.EOF
	}

	for len(s.queue) == 0 {
		c, err := s.wait()
		if errors.Is(err, studypal.ErrStreamClosed) {
			return nil, err
		}
		if err != nil {
			return s.fail(err)
		}
		switch {
		case c.err == io.EOF:
			s.queue = append(s.queue, s.dec.Flush()...)
			if !s.dec.Done() {
				s.queue = append(s.queue, studypal.EventDone{})
			}
		case c.err != nil:
			return s.fail(fmt.Errorf("sse: %w", c.err))
		default:
			s.queue = append(s.queue, s.dec.Feed(c.data)...)
		}
	}

	evt := s.queue[0]
	s.queue = s.queue[1:]
	switch evt.(type) {
	case studypal.EventError:
		s.finish(studypal.StreamStateError)
	case studypal.EventDone, studypal.EventFollowup:
		s.finish(studypal.StreamStateComplete)
	default:
		s.setState(studypal.StreamStateStreaming)
	}
	return evt, nil
}

// wait blocks until the reader delivers a chunk.
func (s *Stream) wait() (chunk, error) {
	var timeout <-chan time.Time
	if s.idle > 0 {
		t := time.NewTimer(s.idle)
		defer t.Stop()
		timeout = t.C
	}
	select {
	case c := <-s.chunks:
		if s.State() == studypal.StreamStateClosed {
			return chunk{}, studypal.ErrStreamClosed
		}
		return c, nil
	case <-s.ctx.Done():
		return chunk{}, s.ctx.Err()
	case <-timeout:
		return chunk{}, fmt.Errorf("sse: no data for %s: %w", s.idle, studypal.ErrIdleTimeout)
	case <-s.stop:
		return chunk{}, studypal.ErrStreamClosed
	}
}

// fail converts a local failure into the stream's terminal EventError.
func (s *Stream) fail(err error) (studypal.Event, error) {
	s.finish(studypal.StreamStateError)
	return studypal.EventError{Message: err.Error(), Err: err}, nil
}

func (s *Stream) finish(state studypal.StreamState) {
	s.setState(state)
	s.queue = nil
	s.release()
}

// State returns the current stream state.
func (s *Stream) State() studypal.StreamState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Stream) setState(state studypal.StreamState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != studypal.StreamStateClosed {
		s.state = state
	}
}

// Close stops dispatch and closes the body. It is safe to call from another
// goroutine while Next is blocked.
func (s *Stream) Close() error {
	s.mu.Lock()
	if s.state != studypal.StreamStateComplete && s.state != studypal.StreamStateError {
		s.state = studypal.StreamStateClosed
	}
	s.mu.Unlock()
	return s.release()
}

func (s *Stream) release() error {
	var err error
	s.once.Do(func() {
		close(s.stop)
		err = s.body.Close()
	})
	return err
}
