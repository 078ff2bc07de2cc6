package studypal_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/studypal"
	"github.com/stretchr/testify/assert"
)

func TestValidImageSource(t *testing.T) {
	t.Parallel()

	valid := []string{
		"data:image/png;base64,iVBORw0KGgo=",
		"data:image/jpeg;base64,/9j/4AAQ",
		"http://example.com/a.png",
		"https://example.com/a.png",
	}
	for _, src := range valid {
		assert.True(t, studypal.ValidImageSource(src), src)
		assert.NoError(t, studypal.ValidateImageSource(src), src)
	}

	invalid := []string{
		"",
		"notaurl",
		"data:image/png,rawbytes",
		"data:text/plain;base64,aGk=",
		"ftp://example.com/a.png",
		"HTTPS://example.com/a.png",
		"/relative/a.png",
	}
	for _, src := range invalid {
		assert.False(t, studypal.ValidImageSource(src), src)
		assert.ErrorIs(t, studypal.ValidateImageSource(src), studypal.ErrInvalidImage, src)
	}
}

func TestTruncateSource(t *testing.T) {
	t.Parallel()

	t.Run("short source is unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "notaurl", studypal.TruncateSource("notaurl", 50))
	})

	t.Run("long source keeps prefix", func(t *testing.T) {
		t.Parallel()
		src := "data:image/png;base64," + strings.Repeat("A", 100)
		got := studypal.TruncateSource(src, 50)
		assert.Equal(t, src[:50]+"...", got)
	})

	t.Run("does not split grapheme clusters", func(t *testing.T) {
		t.Parallel()
		// "é" as e + combining acute accent is one cluster of two runes.
		src := "ééé"
		assert.Equal(t, "é...", studypal.TruncateSource(src, 1))
	})

	t.Run("zero length", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", studypal.TruncateSource("abc", 0))
	})

	t.Run("exact length is unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "abc", studypal.TruncateSource("abc", 3))
	})
}
