package json_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/studypal"
	spjson "github.com/fwojciec/studypal/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalStart(t *testing.T) {
	t.Parallel()

	data, err := spjson.MarshalStart(studypal.DefaultPresentationRequest("Photosynthesis"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "start_presentation",
		"data": {"topic": "Photosynthesis", "slideCount": 6, "tone": "professional", "theme": "modern"}
	}`, string(data))
}

func TestPing(t *testing.T) {
	t.Parallel()

	var v map[string]any
	require.NoError(t, json.Unmarshal(spjson.Ping, &v))
	assert.Equal(t, "ping", v["type"])
}

func TestDecodePresentationMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want studypal.PresentationMessage
	}{
		{
			name: "progress",
			data: `{"type":"progress","data":{"progress":40,"message":"Writing slides","step":"content"}}`,
			want: studypal.PresentationProgress{Progress: 40, Message: "Writing slides", Step: "content"},
		},
		{
			name: "image status",
			data: `{"type":"image_status","data":{"slide_number":2,"status":"completed","thumbnail":"data:image/png;base64,AA"}}`,
			want: studypal.ImageStatus{SlideNumber: 2, Status: studypal.ImageCompleted, Thumbnail: "data:image/png;base64,AA"},
		},
		{
			name: "slide preview",
			data: `{"type":"slide_preview","data":{"slide_number":1,"title":"Intro","points":["a","b"],"image_thumbnail":"t","status":"ready"}}`,
			want: studypal.SlidePreview{SlideNumber: 1, Title: "Intro", Points: []string{"a", "b"}, Thumbnail: "t", Status: "ready"},
		},
		{
			name: "slide completed",
			data: `{"type":"slide_completed","data":{"title":"Intro"}}`,
			want: studypal.SlideCompleted{Title: "Intro"},
		},
		{
			name: "presentation created",
			data: `{"type":"presentation_created","data":{"presentation_url":"https://docs.example/p/1"}}`,
			want: studypal.PresentationCreated{URL: "https://docs.example/p/1"},
		},
		{
			name: "completed",
			data: `{"type":"completed","data":{"title":"Cells","presentation_url":"u","presentation_embed_url":"e","total_slides":6,"message":"done"}}`,
			want: studypal.PresentationCompleted{Title: "Cells", URL: "u", EmbedURL: "e", TotalSlides: 6, Message: "done"},
		},
		{
			name: "error",
			data: `{"type":"error","data":{"message":"quota exceeded"}}`,
			want: studypal.PresentationError{Message: "quota exceeded"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := spjson.DecodePresentationMessage([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodePresentationMessage_Unknown(t *testing.T) {
	t.Parallel()

	got, err := spjson.DecodePresentationMessage([]byte(`{"type":"browser_opened","data":{}}`))
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = spjson.DecodePresentationMessage([]byte(`not json`))
	assert.Error(t, err)
}
