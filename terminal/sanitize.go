package terminal

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/studypal"
)

// sanitize strips escape sequences and control characters from backend
// text so it cannot drive the terminal. Tabs and newlines survive; carriage
// returns are dropped.
func sanitize(s string) string {
	s = ansi.Strip(s)
	clean := true
	for _, r := range s {
		if isControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !isControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isControl(r rune) bool {
	if r == '\t' || r == '\n' {
		return false
	}
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f)
}

// sanitizeNode returns node with every text field sanitized.
func sanitizeNode(node studypal.Node) studypal.Node {
	switch n := node.(type) {
	case studypal.NodeCodeBlock:
		n.Language, n.Text = sanitize(n.Language), sanitize(n.Text)
		return n
	case studypal.NodeBoldHeader:
		n.Text = sanitize(n.Text)
		return n
	case studypal.NodeBullet:
		n.Text = sanitize(n.Text)
		return n
	case studypal.NodeNumberedItem:
		n.Text = sanitize(n.Text)
		return n
	case studypal.NodeImage:
		n.Alt, n.Src = sanitize(n.Alt), sanitize(n.Src)
		return n
	case studypal.NodeSectionHeader:
		n.Text = sanitize(n.Text)
		return n
	case studypal.NodePlain:
		n.Text = sanitize(n.Text)
		return n
	default:
		return node
	}
}
