package studypal_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/studypal"
	"github.com/stretchr/testify/assert"
)

func TestEventTypeSwitch_Exhaustive(t *testing.T) {
	t.Parallel()
	events := []studypal.Event{
		studypal.EventSession{SessionID: "s1"},
		studypal.EventStatus{Status: studypal.StatusSearchStart},
		studypal.EventContent{Content: "hello"},
		studypal.EventFollowup{Response: "which?", Questions: []string{"a"}},
		studypal.EventDone{},
		studypal.EventError{Message: "boom"},
	}
	assert.Len(t, events, 6, "update slice and switch when adding new Event types")
	for _, e := range events {
		switch e.(type) {
		case studypal.EventSession:
		case studypal.EventStatus:
		case studypal.EventContent:
		case studypal.EventFollowup:
		case studypal.EventDone:
		case studypal.EventError:
		default:
			t.Fatalf("unexpected event type: %T", e)
		}
	}
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	assert.True(t, studypal.Terminal(studypal.EventDone{}))
	assert.True(t, studypal.Terminal(studypal.EventFollowup{}))
	assert.True(t, studypal.Terminal(studypal.EventError{Message: "x"}))
	assert.True(t, studypal.Terminal(studypal.EventError{Err: errors.New("reset")}))

	assert.False(t, studypal.Terminal(studypal.EventSession{}))
	assert.False(t, studypal.Terminal(studypal.EventStatus{}))
	assert.False(t, studypal.Terminal(studypal.EventContent{Content: "x"}))
}

func TestStatus_Transient(t *testing.T) {
	t.Parallel()

	assert.True(t, studypal.StatusSearchComplete.Transient())
	assert.True(t, studypal.StatusImageComplete.Transient())
	assert.False(t, studypal.StatusSearchStart.Transient())
	assert.False(t, studypal.StatusResponseStart.Transient())
	assert.False(t, studypal.StatusGeneratingImage.Transient())
}
