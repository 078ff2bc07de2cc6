package studypal

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// DefaultImageAlt is the alt text used when an image reference has none.
const DefaultImageAlt = "Generated Image"

// ValidImageSource reports whether src can be rendered as an image: a base64
// data URI ("data:image/...;base64,...") or an http(s) URL.
func ValidImageSource(src string) bool {
	if strings.HasPrefix(src, "data:image/") && strings.Contains(src, "base64,") {
		return true
	}
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// ValidateImageSource returns an error wrapping ErrInvalidImage when src is
// not a renderable image source.
func ValidateImageSource(src string) error {
	if ValidImageSource(src) {
		return nil
	}
	return fmt.Errorf("%q: %w", TruncateSource(src, 50), ErrInvalidImage)
}

// TruncateSource returns at most n grapheme clusters of src followed by
// "..." when src was longer. Base64 payloads can be megabytes long, so
// placeholders only ever show a prefix.
func TruncateSource(src string, n int) string {
	if n <= 0 {
		return ""
	}
	g := uniseg.NewGraphemes(src)
	count := 0
	for g.Next() {
		if count == n {
			start, _ := g.Positions()
			return src[:start] + "..."
		}
		count++
	}
	return src
}
