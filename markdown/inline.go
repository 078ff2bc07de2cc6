package markdown

import (
	"strconv"
	"strings"

	"github.com/fwojciec/studypal"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// TokenKind identifies an inline token.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenBoldStart
	TokenBoldEnd
	TokenCodeStart
	TokenCodeEnd
	TokenLinkStart // Text is the raw destination
	TokenLinkEnd   // Text is the raw destination
	TokenImage     // Text is the source, Alt the alt text
)

// Token is one element of a formatted line. Text is raw, never escaped.
type Token struct {
	Kind TokenKind
	Text string
	Alt  string
}

// FormatInline splits a line into text and image spans, left to right.
// Text between images is formatted with FormatText; whitespace-only text
// between images is omitted. A line without images is a single SpanText.
// Image sources are not validated here.
func FormatInline(text string) []studypal.Span {
	segs := segments(text)
	spans := make([]studypal.Span, 0, len(segs))
	for _, seg := range segs {
		if seg.image {
			spans = append(spans, studypal.SpanImage{Alt: imageAlt(seg.ref.alt), Src: seg.ref.src})
			continue
		}
		spans = append(spans, studypal.SpanText{HTML: FormatText(seg.text)})
	}
	return spans
}

// TokenizeLine returns the tokens of a whole line: image references become
// TokenImage and the text around them is tokenized like FormatInline
// formats it.
func TokenizeLine(text string) []Token {
	var toks []Token
	for _, seg := range segments(text) {
		if seg.image {
			toks = append(toks, Token{Kind: TokenImage, Text: seg.ref.src, Alt: imageAlt(seg.ref.alt)})
			continue
		}
		toks = append(toks, Tokenize(seg.text)...)
	}
	return toks
}

// FormatText converts **bold**, `code` and [text](url) to HTML. All other
// text is HTML-escaped.
func FormatText(text string) string {
	var b strings.Builder
	for _, tok := range Tokenize(text) {
		switch tok.Kind {
		case TokenText:
			b.Write(util.EscapeHTML([]byte(tok.Text)))
		case TokenBoldStart:
			b.WriteString("<strong>")
		case TokenBoldEnd:
			b.WriteString("</strong>")
		case TokenCodeStart:
			b.WriteString("<code>")
		case TokenCodeEnd:
			b.WriteString("</code>")
		case TokenLinkStart:
			b.WriteString(`<a href="` + href(tok.Text) + `" target="_blank" rel="noopener noreferrer">`)
		case TokenLinkEnd:
			b.WriteString("</a>")
		}
	}
	return b.String()
}

// Tokenize applies the bold, inline code and link passes, in that order,
// each pass running over the output of the previous one. Markers produced
// by a pass are held as opaque placeholders until the end, so a later pass
// can match around them but never rewrites them.
func Tokenize(text string) []Token {
	f := &formatter{}
	s := strings.ReplaceAll(text, placeholder, "\uFFFD")
	s = f.apply(s, f.bold)
	s = f.apply(s, f.code)
	s = f.apply(s, f.link)

	var toks []Token
	for i, part := range strings.Split(s, placeholder) {
		if i%2 == 1 {
			n, _ := strconv.Atoi(part)
			toks = append(toks, f.tags[n].tok)
			continue
		}
		if part != "" {
			toks = append(toks, Token{Kind: TokenText, Text: part})
		}
	}
	return toks
}

// segment is either plain text or an image reference of a line.
type segment struct {
	text  string
	ref   imageRef
	image bool
}

// segments splits text around ![alt](src) references. Whitespace-only text
// between images is dropped; a line without images is one text segment.
func segments(text string) []segment {
	var (
		segs  []segment
		last  int
		found bool
	)
	for i := 0; i < len(text); {
		img, ok := findImage(text, i)
		if !ok {
			break
		}
		found = true
		if before := text[last:img.start]; strings.TrimSpace(before) != "" {
			segs = append(segs, segment{text: before})
		}
		segs = append(segs, segment{ref: img, image: true})
		i, last = img.end, img.end
	}
	if !found {
		return []segment{{text: text}}
	}
	if rest := text[last:]; strings.TrimSpace(rest) != "" {
		segs = append(segs, segment{text: rest})
	}
	return segs
}

// placeholder brackets the index of a generated tag. It cannot occur in
// input text, and neither it nor the index contains a delimiter character.
const placeholder = "\x00"

type formatter struct {
	tags []tag
}

// tag is a generated token and the source text it replaced.
type tag struct {
	tok Token
	raw string
}

func (f *formatter) mark(tok Token, raw string) string {
	f.tags = append(f.tags, tag{tok: tok, raw: raw})
	return placeholder + strconv.Itoa(len(f.tags)-1) + placeholder
}

// matcher tries to match at s[i:]. On success it returns the replacement
// and the end offset of the match.
type matcher func(s string, i int) (string, int, bool)

// apply replaces every non-overlapping match, scanning left to right.
func (f *formatter) apply(s string, match matcher) string {
	var b strings.Builder
	last := 0
	for i := 0; i < len(s); {
		repl, end, ok := match(s, i)
		if !ok {
			i++
			continue
		}
		b.WriteString(s[last:i])
		b.WriteString(repl)
		i, last = end, end
	}
	b.WriteString(s[last:])
	return b.String()
}

// bold matches "**" one-or-more non-asterisks "**".
func (f *formatter) bold(s string, i int) (string, int, bool) {
	if !strings.HasPrefix(s[i:], "**") {
		return "", 0, false
	}
	j := indexFrom(s, i+2, '*')
	if j <= i+2 || !strings.HasPrefix(s[j:], "**") {
		return "", 0, false
	}
	return f.mark(Token{Kind: TokenBoldStart}, "**") + s[i+2:j] + f.mark(Token{Kind: TokenBoldEnd}, "**"), j + 2, true
}

// code matches a backtick, one-or-more non-backticks, a backtick.
func (f *formatter) code(s string, i int) (string, int, bool) {
	if s[i] != '`' {
		return "", 0, false
	}
	j := indexFrom(s, i+1, '`')
	if j <= i+1 {
		return "", 0, false
	}
	return f.mark(Token{Kind: TokenCodeStart}, "`") + s[i+1:j] + f.mark(Token{Kind: TokenCodeEnd}, "`"), j + 1, true
}

// link matches [text](url) with non-empty text and url.
func (f *formatter) link(s string, i int) (string, int, bool) {
	if s[i] != '[' {
		return "", 0, false
	}
	j := indexFrom(s, i+1, ']')
	if j <= i+1 || j+1 >= len(s) || s[j+1] != '(' {
		return "", 0, false
	}
	k := indexFrom(s, j+2, ')')
	if k <= j+2 {
		return "", 0, false
	}
	dest := f.expand(s[j+2 : k])
	return f.mark(Token{Kind: TokenLinkStart, Text: dest}, "") + s[i+1:j] + f.mark(Token{Kind: TokenLinkEnd, Text: dest}, ""), k + 1, true
}

// expand restores the source text of generated tags inside a link
// destination so the URL is escaped as written.
func (f *formatter) expand(s string) string {
	if !strings.Contains(s, placeholder) {
		return s
	}
	var b strings.Builder
	for i, part := range strings.Split(s, placeholder) {
		if i%2 == 0 {
			b.WriteString(part)
			continue
		}
		n, _ := strconv.Atoi(part)
		b.WriteString(f.tags[n].raw)
	}
	return b.String()
}

func href(dest string) string {
	b := []byte(dest)
	if html.IsDangerousURL(b) {
		return ""
	}
	return string(util.EscapeHTML(util.URLEscape(b, true)))
}

// imageRef is a located ![alt](src) reference.
type imageRef struct {
	alt, src   string
	start, end int
}

// findImage returns the first ![alt](src) at or after offset i. alt may be
// empty and contain no "]"; src is non-empty and contains no ")".
func findImage(s string, i int) (imageRef, bool) {
	for {
		k := strings.Index(s[i:], "![")
		if k < 0 {
			return imageRef{}, false
		}
		start := i + k
		if ref, ok := imageAt(s, start); ok {
			return ref, true
		}
		i = start + 1
	}
}

func imageAt(s string, start int) (imageRef, bool) {
	j := indexFrom(s, start+2, ']')
	if j < 0 || j+1 >= len(s) || s[j+1] != '(' {
		return imageRef{}, false
	}
	k := indexFrom(s, j+2, ')')
	if k <= j+2 {
		return imageRef{}, false
	}
	return imageRef{alt: s[start+2 : j], src: s[j+2 : k], start: start, end: k + 1}, true
}

// indexFrom returns the index of the first c in s at or after i, or -1.
func indexFrom(s string, i int, c byte) int {
	if i > len(s) {
		return -1
	}
	j := strings.IndexByte(s[i:], c)
	if j < 0 {
		return -1
	}
	return i + j
}
