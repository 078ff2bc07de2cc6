// Package sse decodes the StudyPal chat stream: a chunked sequence of
// newline-separated "data: <json>" records.
//
// Decoder is the synchronous core. It owns the incomplete-line buffer and an
// incremental UTF-8 decoder, so a record (or a multi-byte character) split
// across chunks is reassembled before decoding. Stream wraps a Decoder around
// an io.ReadCloser and implements [studypal.Stream].
package sse

import (
	"bytes"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/studypal"
	"github.com/fwojciec/studypal/json"
)

const dataPrefix = "data: "

// Decoder turns raw stream chunks into events. It is not safe for concurrent
// use; each stream owns its own Decoder.
type Decoder struct {
	logger  *slog.Logger
	partial []byte // trailing bytes of an incomplete UTF-8 sequence
	pending string // decoded text not yet terminated by a newline
	done    bool
}

// NewDecoder creates a Decoder. Malformed records are reported to logger;
// a nil logger discards them.
func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Decoder{logger: logger}
}

// Feed decodes chunk and returns the events found in every line it
// completes, in order. After a terminal event Feed returns nothing.
func (d *Decoder) Feed(chunk []byte) []studypal.Event {
	if d.done {
		return nil
	}
	text := d.decode(chunk)
	if !strings.Contains(text, "\n") {
		d.pending += text
		return nil
	}

	lines := strings.Split(d.pending+text, "\n")
	d.pending = lines[len(lines)-1]

	var events []studypal.Event
	for _, line := range lines[:len(lines)-1] {
		if evt := d.line(line); evt != nil {
			events = append(events, evt)
			if d.done {
				break
			}
		}
	}
	return events
}

// Flush processes whatever remains after the last newline. Call it once at
// end of input.
func (d *Decoder) Flush() []studypal.Event {
	rest := d.pending + toValid(d.partial)
	d.pending, d.partial = "", nil
	if d.done || rest == "" {
		return nil
	}
	if evt := d.line(rest); evt != nil {
		return []studypal.Event{evt}
	}
	return nil
}

// Done reports whether a terminal event has been decoded.
func (d *Decoder) Done() bool { return d.done }

// decode converts chunk to text, holding back a trailing incomplete UTF-8
// sequence until the next chunk arrives.
func (d *Decoder) decode(chunk []byte) string {
	buf := make([]byte, 0, len(d.partial)+len(chunk))
	buf = append(buf, d.partial...)
	buf = append(buf, chunk...)
	d.partial = nil

	// A rune is at most utf8.UTFMax bytes, so only the tail needs checking.
	for i := len(buf) - 1; i >= 0 && i >= len(buf)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(buf[i]) {
			continue
		}
		if !utf8.FullRune(buf[i:]) {
			d.partial = bytes.Clone(buf[i:])
			buf = buf[:i]
		}
		break
	}
	return toValid(buf)
}

func (d *Decoder) line(line string) studypal.Event {
	if d.done {
		return nil
	}
	line = strings.TrimSuffix(line, "\r")
	if !strings.HasPrefix(line, dataPrefix) {
		return nil
	}
	payload := line[len(dataPrefix):]
	evt, err := json.DecodeEvent([]byte(payload))
	if err != nil {
		d.logger.Warn("sse: skipping malformed record", "record", payload, "error", err)
		return nil
	}
	if evt == nil {
		return nil
	}
	if studypal.Terminal(evt) {
		d.done = true
	}
	return evt
}

func toValid(b []byte) string {
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
