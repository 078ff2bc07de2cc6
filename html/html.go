// Package html renders classified reply lines as HTML fragments for
// embedding in a web view.
//
// Copy feedback is driven by the embedding view: it calls
// CopyState.MarkCopied when a code block's copy button is used and
// CopyState.Clear when the feedback should end, then re-renders. The render
// command's -copied flag marks blocks the same way for static output.
package html

import (
	"strconv"
	"strings"

	"github.com/fwojciec/studypal"
	"github.com/fwojciec/studypal/markdown"
	"github.com/yuin/goldmark/util"
)

// Render renders nodes in order. Code blocks are numbered "code-1",
// "code-2", ... in render order; cs decides which of them show the
// "Copied!" label. A nil cs shows none as copied.
func Render(nodes []studypal.Node, cs *CopyState) string {
	var b strings.Builder
	b.WriteString(`<div class="markdown-content">`)
	blockID := 0
	for _, n := range nodes {
		switch n := n.(type) {
		case studypal.NodeCodeBlock:
			blockID++
			writeCodeBlock(&b, n, "code-"+strconv.Itoa(blockID), cs)
		case studypal.NodeBlank:
			b.WriteString(`<div class="blank"></div>`)
		case studypal.NodeBoldHeader:
			b.WriteString(`<div class="bold-header">`)
			b.WriteString(escape(n.Text))
			b.WriteString(`</div>`)
		case studypal.NodeBullet:
			b.WriteString(`<div class="bullet"><span class="marker">•</span><span>`)
			b.WriteString(Inline(n.Text))
			b.WriteString(`</span></div>`)
		case studypal.NodeNumberedItem:
			b.WriteString(`<div class="numbered"><span class="marker">`)
			b.WriteString(escape(n.Marker))
			b.WriteString(`</span><span>`)
			b.WriteString(Inline(n.Text))
			b.WriteString(`</span></div>`)
		case studypal.NodeImage:
			b.WriteString(Image(n.Src, n.Alt))
		case studypal.NodeSectionHeader:
			b.WriteString(`<div class="section-header">`)
			b.WriteString(Inline(n.Text))
			b.WriteString(`</div>`)
		case studypal.NodePlain:
			b.WriteString(`<div class="line">`)
			b.WriteString(Inline(n.Text))
			b.WriteString(`</div>`)
		}
	}
	b.WriteString(`</div>`)
	return b.String()
}

// Inline renders the inline spans of a single line.
func Inline(text string) string {
	var b strings.Builder
	for _, s := range markdown.FormatInline(text) {
		switch s := s.(type) {
		case studypal.SpanText:
			b.WriteString(s.HTML)
		case studypal.SpanImage:
			b.WriteString(Image(s.Src, s.Alt))
		}
	}
	return b.String()
}

func writeCodeBlock(b *strings.Builder, n studypal.NodeCodeBlock, id string, cs *CopyState) {
	lang := n.Language
	if lang == "" {
		lang = "code"
	}
	label := "Copy"
	if cs.Copied(id) {
		label = "Copied!"
	}
	b.WriteString(`<div class="code-block" id="`)
	b.WriteString(id)
	b.WriteString(`"><div class="code-header"><span class="language">`)
	b.WriteString(escape(lang))
	b.WriteString(`</span><button class="copy" data-block="`)
	b.WriteString(id)
	b.WriteString(`">`)
	b.WriteString(label)
	b.WriteString(`</button></div><pre><code>`)
	b.WriteString(escape(n.Text))
	b.WriteString(`</code></pre></div>`)
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
