package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// StatusTTL exports statusTTL for testing.
const StatusTTL = statusTTL

// ExpireStatus returns the message that expires the current status.
func ExpireStatus(m Model) tea.Msg {
	return statusExpiredMsg{seq: m.statusSeq}
}

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}
