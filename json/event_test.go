package json_test

import (
	"testing"

	"github.com/fwojciec/studypal"
	spjson "github.com/fwojciec/studypal/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want studypal.Event
	}{
		{
			name: "session",
			data: `{"type":"session","session_id":"abc","done":false}`,
			want: studypal.EventSession{SessionID: "abc"},
		},
		{
			name: "status",
			data: `{"type":"status","status":"search_start"}`,
			want: studypal.EventStatus{Status: studypal.StatusSearchStart},
		},
		{
			name: "status by type",
			data: `{"type":"search_complete"}`,
			want: studypal.EventStatus{Status: studypal.StatusSearchComplete},
		},
		{
			name: "image start maps to generating image",
			data: `{"type":"image_start"}`,
			want: studypal.EventStatus{Status: studypal.StatusGeneratingImage},
		},
		{
			name: "image complete",
			data: `{"type":"image_complete"}`,
			want: studypal.EventStatus{Status: studypal.StatusImageComplete},
		},
		{
			name: "content",
			data: `{"type":"content","content":"Hel"}`,
			want: studypal.EventContent{Content: "Hel"},
		},
		{
			name: "content without type",
			data: `{"content":"lo"}`,
			want: studypal.EventContent{Content: "lo"},
		},
		{
			name: "done flag",
			data: `{"done":true}`,
			want: studypal.EventDone{},
		},
		{
			name: "complete type",
			data: `{"type":"stream_complete"}`,
			want: studypal.EventDone{},
		},
		{
			name: "followup questions",
			data: `{"type":"followup_questions","data":{"response":"Which one?","followup_questions":["A?","B?"]}}`,
			want: studypal.EventFollowup{Response: "Which one?", Questions: []string{"A?", "B?"}},
		},
		{
			name: "error field wins over type",
			data: `{"type":"content","content":"x","error":"backend failure"}`,
			want: studypal.EventError{Message: "backend failure"},
		},
		{
			name: "error type",
			data: `{"type":"error","message":"rate limited"}`,
			want: studypal.EventError{Message: "rate limited"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := spjson.DecodeEvent([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeEvent_Ignored(t *testing.T) {
	t.Parallel()

	for _, data := range []string{
		`{}`,
		`{"type":"heartbeat"}`,
		`{"type":"content","content":""}`,
		`{"type":"session"}`,
	} {
		got, err := spjson.DecodeEvent([]byte(data))
		require.NoError(t, err, data)
		assert.Nil(t, got, data)
	}
}

func TestDecodeEvent_Malformed(t *testing.T) {
	t.Parallel()

	_, err := spjson.DecodeEvent([]byte(`{"type":`))
	assert.Error(t, err)

	_, err = spjson.DecodeEvent([]byte(`{"type":"followup_questions","data":"nope"}`))
	assert.Error(t, err)
}

func TestDecodeEvent_NonStringError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		data string
		want studypal.Event
	}{
		{`{"error":{"code":500,"detail":"boom"}}`, studypal.EventError{Message: `{"code":500,"detail":"boom"}`}},
		{`{"error":true,"type":"content","content":"x"}`, studypal.EventError{Message: "true"}},
		{`{"error":42}`, studypal.EventError{Message: "42"}},
		{`{"error":null,"type":"content","content":"x"}`, studypal.EventContent{Content: "x"}},
		{`{"error":"","type":"content","content":"x"}`, studypal.EventContent{Content: "x"}},
	}
	for _, tt := range tests {
		got, err := spjson.DecodeEvent([]byte(tt.data))
		require.NoError(t, err, tt.data)
		assert.Equal(t, tt.want, got, tt.data)
	}
}
