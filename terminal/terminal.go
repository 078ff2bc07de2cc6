// Package terminal renders classified reply lines as ANSI-styled terminal
// output using lipgloss for styling.
//
// Line structure comes from [markdown.Parse]. The inline content of each
// line is styled from [markdown.TokenizeLine], the tokens the HTML view
// formats, so both views agree on bold, code, links and images.
package terminal

import "github.com/fwojciec/studypal"

// Render renders nodes to ANSI text wrapped to width. Code blocks are
// rendered at full width without reflow.
func Render(nodes []studypal.Node, width int, theme studypal.Theme) string {
	if len(nodes) == 0 {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	return newRenderer(theme).render(nodes, width)
}
