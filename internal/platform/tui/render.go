package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	echoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	replyStyle = lipgloss.NewStyle()
	winStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	endStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

// entryKind selects how a transcript entry is styled.
type entryKind int

const (
	entryEcho entryKind = iota
	entryReply
	entryWin
	entryEnd
	entryTitle
)

// entry is one block of the transcript.
type entry struct {
	kind entryKind
	text string
}

// renderTranscript styles every entry and joins them one per line.
func renderTranscript(entries []entry) string {
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(styleFor(e.kind).Render(e.text))
	}
	return sb.String()
}

func styleFor(kind entryKind) lipgloss.Style {
	switch kind {
	case entryEcho:
		return echoStyle
	case entryWin:
		return winStyle
	case entryEnd:
		return endStyle
	case entryTitle:
		return titleStyle
	default:
		return replyStyle
	}
}
