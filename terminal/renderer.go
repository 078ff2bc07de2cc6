package terminal

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/studypal"
	"github.com/fwojciec/studypal/markdown"
	"github.com/mattn/go-runewidth"
)

const invalidImagePrefix = "⚠ invalid image format: "

type ansiRenderer struct {
	bold      lipgloss.Style
	heading   lipgloss.Style
	section   lipgloss.Style
	code      lipgloss.Style
	marker    lipgloss.Style
	muted     lipgloss.Style
	errorText lipgloss.Style
	link      lipgloss.Style
}

func newRenderer(theme studypal.Theme) *ansiRenderer {
	return &ansiRenderer{
		bold:      lipgloss.NewStyle().Bold(true),
		heading:   lipgloss.NewStyle().Foreground(ansiColor(theme.Heading)).Bold(true),
		section:   lipgloss.NewStyle().Foreground(ansiColor(theme.Section)).Bold(true),
		code:      lipgloss.NewStyle().Foreground(ansiColor(theme.Code)),
		marker:    lipgloss.NewStyle().Foreground(ansiColor(theme.Heading)),
		muted:     lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		errorText: lipgloss.NewStyle().Foreground(ansiColor(theme.Error)),
		link:      lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Underline(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *ansiRenderer) render(nodes []studypal.Node, width int) string {
	var buf bytes.Buffer
	for _, n := range nodes {
		r.renderNode(sanitizeNode(n), width, &buf)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (r *ansiRenderer) renderNode(node studypal.Node, width int, buf *bytes.Buffer) {
	switch n := node.(type) {
	case studypal.NodeCodeBlock:
		lang := n.Language
		if lang == "" {
			lang = "code"
		}
		buf.WriteString(r.muted.Render(lang))
		buf.WriteString("\n")
		gutter := r.muted.Render("│") + " "
		for _, line := range strings.Split(n.Text, "\n") {
			buf.WriteString(gutter + r.code.Render(line))
			buf.WriteString("\n")
		}

	case studypal.NodeBlank:
		buf.WriteString("\n")

	case studypal.NodeBoldHeader:
		wrapped := lipgloss.NewStyle().Width(width).Render(r.heading.Render(n.Text))
		buf.WriteString(wrapped)
		buf.WriteString("\n")

	case studypal.NodeBullet:
		r.writeListItem(buf, "• ", r.inline(n.Text, width), width)

	case studypal.NodeNumberedItem:
		r.writeListItem(buf, n.Marker+" ", r.inline(n.Text, width), width)

	case studypal.NodeImage:
		buf.WriteString(r.image(n.Src, n.Alt, width))
		buf.WriteString("\n")

	case studypal.NodeSectionHeader:
		wrapped := lipgloss.NewStyle().Width(width).Render(r.section.Render(r.inline(n.Text, width)))
		buf.WriteString(wrapped)
		buf.WriteString("\n")

	case studypal.NodePlain:
		wrapped := lipgloss.NewStyle().Width(width).Render(r.inline(n.Text, width))
		buf.WriteString(wrapped)
		buf.WriteString("\n")
	}
}

// writeListItem writes a list item with proper continuation-line indentation.
func (r *ansiRenderer) writeListItem(buf *bytes.Buffer, marker, content string, width int) {
	prefixWidth := runewidth.StringWidth(marker)
	itemWidth := width - prefixWidth
	if itemWidth < 10 {
		itemWidth = 10
	}
	wrapped := lipgloss.NewStyle().Width(itemWidth).Render(content)
	continuation := strings.Repeat(" ", prefixWidth)
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			buf.WriteString(r.marker.Render(marker) + line + "\n")
		} else {
			buf.WriteString(continuation + line + "\n")
		}
	}
}

// image renders an image reference as a one-line label. Invalid sources
// are truncated to fit width.
func (r *ansiRenderer) image(src, alt string, width int) string {
	if alt == "" {
		alt = studypal.DefaultImageAlt
	}
	if studypal.ValidImageSource(src) {
		return r.muted.Render("[image: " + alt + "]")
	}
	room := width - runewidth.StringWidth(invalidImagePrefix)
	if room < 4 {
		room = 4
	}
	return r.errorText.Render(invalidImagePrefix + runewidth.Truncate(src, room, "..."))
}

// inline styles one line's text from the same tokens the HTML view is
// built from.
func (r *ansiRenderer) inline(line string, width int) string {
	var (
		buf              strings.Builder
		bold, code, link bool
	)
	for _, tok := range markdown.TokenizeLine(line) {
		switch tok.Kind {
		case markdown.TokenText:
			buf.WriteString(r.textStyle(bold, code, link).Render(tok.Text))
		case markdown.TokenBoldStart:
			bold = true
		case markdown.TokenBoldEnd:
			bold = false
		case markdown.TokenCodeStart:
			code = true
		case markdown.TokenCodeEnd:
			code = false
		case markdown.TokenLinkStart:
			link = true
		case markdown.TokenLinkEnd:
			link = false
			buf.WriteString(" " + r.muted.Render("("+tok.Text+")"))
		case markdown.TokenImage:
			buf.WriteString(r.image(tok.Text, tok.Alt, width))
		}
	}
	return buf.String()
}

func (r *ansiRenderer) textStyle(bold, code, link bool) lipgloss.Style {
	st := lipgloss.NewStyle()
	if code {
		st = st.Inherit(r.code)
	}
	if link {
		st = st.Inherit(r.link)
	}
	if bold {
		st = st.Inherit(r.bold)
	}
	return st
}
