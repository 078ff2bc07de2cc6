package sse_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/studypal"
	"github.com/fwojciec/studypal/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloStream = `data: {"type":"content","content":"Hel"}` + "\n" +
	`data: {"type":"content","content":"lo"}` + "\n" +
	`data: {"done":true}` + "\n"

func decodeChunks(chunks ...[]byte) []studypal.Event {
	dec := sse.NewDecoder(nil)
	var events []studypal.Event
	for _, c := range chunks {
		events = append(events, dec.Feed(c)...)
	}
	return append(events, dec.Flush()...)
}

func contentOf(events []studypal.Event) string {
	var b strings.Builder
	for _, e := range events {
		if c, ok := e.(studypal.EventContent); ok {
			b.WriteString(c.Content)
		}
	}
	return b.String()
}

func terminalCount(events []studypal.Event) int {
	n := 0
	for _, e := range events {
		if studypal.Terminal(e) {
			n++
		}
	}
	return n
}

func TestDecoder_SplitAnywhere(t *testing.T) {
	t.Parallel()

	in := []byte(`data: {"type":"session","session_id":"s-1"}` + "\n" +
		`data: {"type":"search_start"}` + "\n" +
		`data: {"type":"content","content":"Hel"}` + "\n" +
		`data: {"type":"content","content":"lo"}` + "\n" +
		`data: {"type":"followup_questions","data":{"response":"Hello","followup_questions":["Why?"]}}` + "\n")
	want := []studypal.Event{
		studypal.EventSession{SessionID: "s-1"},
		studypal.EventStatus{Status: studypal.StatusSearchStart},
		studypal.EventContent{Content: "Hel"},
		studypal.EventContent{Content: "lo"},
		studypal.EventFollowup{Response: "Hello", Questions: []string{"Why?"}},
	}
	require.Equal(t, want, decodeChunks(in))

	for i := 0; i <= len(in); i++ {
		for j := i; j <= len(in); j++ {
			got := decodeChunks(in[:i], in[i:j], in[j:])
			assert.Equal(t, want, got, "split at %d,%d", i, j)
		}
	}
}

func TestDecoder_ContentThenDone(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []studypal.Event{
		studypal.EventContent{Content: "Hel"},
		studypal.EventContent{Content: "lo"},
		studypal.EventDone{},
	}, decodeChunks([]byte(helloStream)))
}

func TestDecoder_ErrorRecordIsTerminal(t *testing.T) {
	t.Parallel()

	got := decodeChunks([]byte(`data: {"error":"backend failure"}` + "\n" +
		`data: {"type":"content","content":"ignored"}` + "\n"))

	require.Equal(t, []studypal.Event{studypal.EventError{Message: "backend failure"}}, got)
}

func TestDecoder_SplitInsideRune(t *testing.T) {
	t.Parallel()

	in := []byte(`data: {"type":"content","content":"naïve 数学 🎓"}` + "\n" +
		`data: {"type":"content","content":" ∑"}` + "\n" +
		`data: {"done":true}` + "\n")

	for i := 0; i <= len(in); i++ {
		got := decodeChunks(in[:i], in[i:])
		assert.Equal(t, "naïve 数学 🎓 ∑", contentOf(got), "split at %d", i)
	}

	bytewise := make([][]byte, len(in))
	for i := range in {
		bytewise[i] = in[i : i+1]
	}
	assert.Equal(t, "naïve 数学 🎓 ∑", contentOf(decodeChunks(bytewise...)))
}

func TestDecoder_IgnoresNonDataLines(t *testing.T) {
	t.Parallel()

	got := decodeChunks([]byte(": keepalive\r\n" +
		"event: message\r\n" +
		`data: {"type":"session","session_id":"s1","done":false}` + "\r\n" +
		"\r\n" +
		`data: {"type":"heartbeat"}` + "\r\n" +
		`data: {"type":"stream_complete"}` + "\r\n"))

	assert.Equal(t, []studypal.Event{
		studypal.EventSession{SessionID: "s1"},
		studypal.EventDone{},
	}, got)
}

func TestDecoder_MalformedRecordIsSkippedAndLogged(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	dec := sse.NewDecoder(slog.New(slog.NewTextHandler(&logs, nil)))
	got := dec.Feed([]byte(`data: {"type":"content","content":"a"}` + "\n" +
		`data: {not json}` + "\n" +
		`data: {"type":"content","content":"b"}` + "\n"))

	assert.Equal(t, "ab", contentOf(got))
	assert.Contains(t, logs.String(), "skipping malformed record")
	assert.False(t, dec.Done())
}

func TestDecoder_FlushTrailingLine(t *testing.T) {
	t.Parallel()

	dec := sse.NewDecoder(nil)
	assert.Empty(t, dec.Feed([]byte(`data: {"type":"content","content":"tail"}`)))
	assert.Equal(t, []studypal.Event{studypal.EventContent{Content: "tail"}}, dec.Flush())
	assert.Empty(t, dec.Flush())
}

func TestDecoder_DiscardsAfterTerminal(t *testing.T) {
	t.Parallel()

	dec := sse.NewDecoder(nil)
	got := dec.Feed([]byte(`data: {"type":"followup_questions","data":{"response":"Which?","followup_questions":["A?"]}}` + "\n" +
		`data: {"type":"content","content":"late"}` + "\n"))
	require.Len(t, got, 1)
	assert.True(t, dec.Done())
	assert.Empty(t, dec.Feed([]byte(`data: {"type":"content","content":"later"}`+"\n")))
	assert.Empty(t, dec.Flush())
}
