package json_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/studypal"
	spjson "github.com/fwojciec/studypal/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() studypal.Session {
	ts := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	return studypal.Session{
		ID:        "s1",
		CreatedAt: ts,
		UpdatedAt: ts.Add(time.Minute),
		Messages: []studypal.Message{
			studypal.UserMessage{Text: "Explain mitosis", Timestamp: ts},
			studypal.AssistantMessage{Text: "**Mitosis**\n* prophase", Timestamp: ts.Add(time.Second)},
			studypal.UserMessage{Text: "more", Timestamp: ts.Add(2 * time.Second)},
			studypal.AssistantMessage{
				Text:      "Which part?",
				Followup:  []string{"Phases?", "Purpose?"},
				Timestamp: ts.Add(3 * time.Second),
			},
			studypal.AssistantMessage{Text: studypal.FallbackMessage, Failed: true, Timestamp: ts.Add(4 * time.Second)},
		},
	}
}

func TestMarshalSession_RoundTrip(t *testing.T) {
	t.Parallel()

	s := testSession()
	data, err := spjson.MarshalSession(s)
	require.NoError(t, err)

	got, err := spjson.UnmarshalSession(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestUnmarshalSession_Errors(t *testing.T) {
	t.Parallel()

	_, err := spjson.UnmarshalSession([]byte(`{"version":2}`))
	assert.ErrorContains(t, err, "unsupported envelope version")

	_, err = spjson.UnmarshalSession([]byte(`{"version":1,"messages":[{"role":"system","text":"x"}]}`))
	assert.ErrorContains(t, err, "unknown role")

	_, err = spjson.UnmarshalSession([]byte(`{`))
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := testSession()
	require.NoError(t, spjson.Save(path, s))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	got, err := spjson.Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := spjson.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
