package studypal_test

import (
	"testing"

	"github.com/fwojciec/studypal"
	"github.com/stretchr/testify/assert"
)

func TestChatRequest_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, studypal.ChatRequest{Message: "hi"}.Validate())
	assert.ErrorIs(t, studypal.ChatRequest{Message: "  \n"}.Validate(), studypal.ErrValidation)
	assert.ErrorIs(t, studypal.ChatRequest{}.Validate(), studypal.ErrValidation)
}

func TestPresentationRequest_Validate(t *testing.T) {
	t.Parallel()

	req := studypal.DefaultPresentationRequest("Photosynthesis")
	assert.NoError(t, req.Validate())
	assert.Equal(t, 6, req.SlideCount)
	assert.Equal(t, "professional", req.Tone)
	assert.Equal(t, "modern", req.Theme)

	req.SlideCount = 0
	assert.ErrorIs(t, req.Validate(), studypal.ErrValidation)

	assert.ErrorIs(t, studypal.DefaultPresentationRequest(" ").Validate(), studypal.ErrValidation)
}
