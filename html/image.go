package html

import (
	"strconv"
	"strings"

	"github.com/fwojciec/studypal"
	"github.com/yuin/goldmark/util"
)

// sourcePreview is how many grapheme clusters of a rejected source the
// invalid-format placeholder shows.
const sourcePreview = 50

// Image renders an image reference. A source that is not a data URI or
// http(s) URL renders the invalid-format placeholder. A valid source
// renders an <img> paired with a hidden load-failure placeholder that
// offers a retry; the two failure modes are visually distinct.
func Image(src, alt string) string {
	if alt == "" {
		alt = studypal.DefaultImageAlt
	}
	if !studypal.ValidImageSource(src) {
		return invalidImage(src)
	}

	var b strings.Builder
	b.WriteString(`<figure class="generated-image"><img src="`)
	b.Write(util.EscapeHTML(util.URLEscape([]byte(src), false)))
	b.WriteString(`" alt="`)
	b.WriteString(escape(alt))
	b.WriteString(`" loading="lazy" onerror="this.hidden=true;this.nextElementSibling.hidden=false">`)
	b.WriteString(`<div class="image-load-error" hidden>`)
	b.WriteString(`<p>❌ Failed to load generated image</p>`)
	b.WriteString(`<p>Image size: ` + strconv.Itoa(len(src)) + ` characters</p>`)
	b.WriteString(`<button class="retry" onclick="var img=this.parentNode.previousElementSibling;this.parentNode.hidden=true;img.hidden=false;img.src=img.src">Retry</button>`)
	b.WriteString(`</div></figure>`)
	return b.String()
}

func invalidImage(src string) string {
	got := "(empty)"
	if src != "" {
		got = studypal.TruncateSource(src, sourcePreview)
	}
	var b strings.Builder
	b.WriteString(`<div class="image-invalid">`)
	b.WriteString(`<p>⚠️ Invalid image format</p>`)
	b.WriteString(`<p>Expected: URL (http://...) or base64 (data:image/...;base64,...)</p>`)
	b.WriteString(`<p>Got: `)
	b.WriteString(escape(got))
	b.WriteString(`</p></div>`)
	return b.String()
}
