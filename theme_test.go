package studypal_test

import (
	"testing"

	"github.com/fwojciec/studypal"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	theme := studypal.DefaultTheme()

	assert.Equal(t, 4, theme.UserMsg)
	assert.Equal(t, 6, theme.Heading)
	assert.Equal(t, 14, theme.Section)
	assert.Equal(t, 2, theme.Code)
	assert.Equal(t, 1, theme.Error)
	assert.Equal(t, 2, theme.Success)
	assert.Equal(t, 8, theme.Muted)
	assert.Equal(t, 6, theme.Accent)
}
