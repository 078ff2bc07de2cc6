package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/studypal"
	"github.com/fwojciec/studypal/markdown"
	"github.com/fwojciec/studypal/terminal"
)

var _ MessageBlock = (*AssistantTextBlock)(nil)

// AssistantTextBlock renders a streamed reply through the line renderer.
// Finalized text (up to the last blank line outside a code fence) is
// rendered once per width and cached; only the trailing text is
// re-rendered on each fragment.
type AssistantTextBlock struct {
	content strings.Builder
	theme   studypal.Theme
	styles  Styles
	failed  bool

	finalizedRaw     string
	finalizedByWidth map[int]string
}

// NewAssistantTextBlock creates a new block for streaming reply text.
func NewAssistantTextBlock(theme studypal.Theme, styles Styles) *AssistantTextBlock {
	return &AssistantTextBlock{
		theme:            theme,
		styles:           styles,
		finalizedByWidth: make(map[int]string),
	}
}

// Append adds a content fragment.
func (b *AssistantTextBlock) Append(text string) {
	b.content.WriteString(text)
	b.promoteFinalized()
}

// Finish replaces the streamed text with the final displayed reply. A
// failed reply is marked with the error style.
func (b *AssistantTextBlock) Finish(text string, failed bool) {
	if text != b.content.String() {
		b.content.Reset()
		b.content.WriteString(text)
		b.finalizedRaw = ""
		clear(b.finalizedByWidth)
		b.promoteFinalized()
	}
	b.failed = failed
}

// Text returns the raw accumulated text.
func (b *AssistantTextBlock) Text() string { return b.content.String() }

func (b *AssistantTextBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *AssistantTextBlock) View(width int) string {
	view := b.render(width)
	if b.failed && view != "" {
		return b.styles.ErrorBorder.Render(view)
	}
	return view
}

func (b *AssistantTextBlock) render(width int) string {
	finalizedRendered := b.renderFinalized(width)
	trailing := b.trailingRaw()
	if hasUnclosedFence(trailing) {
		// Close the fence for rendering only, so code shows while it streams.
		trailing += "\n```"
	}
	if strings.TrimSpace(trailing) == "" {
		return finalizedRendered
	}
	trailingRendered := terminal.Render(markdown.Parse(trailing), width, b.theme)
	if strings.TrimSpace(trailingRendered) == "" {
		return finalizedRendered
	}
	if finalizedRendered == "" {
		return trailingRendered
	}
	return strings.TrimRight(finalizedRendered, "\n") + "\n\n" + strings.TrimLeft(trailingRendered, "\n")
}

// promoteFinalized moves the finalization point to the last "\n\n" that is
// not inside an open code fence.
func (b *AssistantTextBlock) promoteFinalized() {
	raw := b.content.String()
	for end := len(raw); ; {
		idx := strings.LastIndex(raw[:end], "\n\n")
		if idx <= 0 {
			return
		}
		candidate := raw[:idx]
		if !hasUnclosedFence(candidate) {
			if candidate != b.finalizedRaw {
				b.finalizedRaw = candidate
				clear(b.finalizedByWidth)
			}
			return
		}
		end = idx
	}
}

func (b *AssistantTextBlock) renderFinalized(width int) string {
	if width <= 0 || b.finalizedRaw == "" {
		return ""
	}
	if cached, ok := b.finalizedByWidth[width]; ok {
		return cached
	}
	rendered := terminal.Render(markdown.Parse(b.finalizedRaw), width, b.theme)
	b.finalizedByWidth[width] = rendered
	return rendered
}

func (b *AssistantTextBlock) trailingRaw() string {
	raw := b.content.String()
	if b.finalizedRaw == "" {
		return raw
	}
	return strings.TrimPrefix(raw, b.finalizedRaw+"\n\n")
}

// hasUnclosedFence reports an odd number of fence lines, using the same
// trimmed "```" prefix rule as markdown.Parse.
func hasUnclosedFence(s string) bool {
	open := false
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			open = !open
		}
	}
	return open
}
