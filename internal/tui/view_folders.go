package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) renderPaneView() string {
	var body strings.Builder
	body.WriteString(m.renderTitleBar())
	body.WriteString("\n")
	body.WriteString(m.renderSenderLine())
	body.WriteString("\n\n")
	body.WriteString(m.renderFolderList())

	return renderFixedLayout(m.ui.height, body.String(), m.renderStatusline())
}

func (m *Model) renderTitleBar() string {
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Pane.TitleBg)).
		Foreground(lipgloss.Color(m.theme.Pane.TitleFg)).
		Bold(true)

	title := " mailflow"
	if m.item != nil {
		if subject := strings.TrimSpace(stripZeroWidth(m.item.Subject())); subject != "" {
			title += " · " + subject
		}
	}
	title = truncateWidth(title, max(m.ui.width, 1))
	if m.ui.width > 0 {
		style = style.Width(m.ui.width)
	}
	return style.Render(title)
}

func (m *Model) renderSenderLine() string {
	if m.item == nil {
		return ""
	}
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Pane.HeaderLabelFg))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Pane.HeaderValueFg))

	from := "-"
	if addr := m.item.From(); addr != nil && addr.EmailAddress != "" {
		from = addr.EmailAddress
	}
	line := labelStyle.Render(" From ") + valueStyle.Render(from)
	if refs := m.item.Attachments(); len(refs) > 0 {
		var total int64
		for _, ref := range refs {
			total += ref.Size
		}
		noun := "attachment"
		if len(refs) != 1 {
			noun = "attachments"
		}
		line += labelStyle.Render(fmt.Sprintf("  %d %s (%s)", len(refs), noun, formatAttachmentSize(total)))
	}
	return line
}

func (m *Model) renderFolderList() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.List.EmptyFg))

	switch {
	case m.hostErr != nil:
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Modal.ErrorFg))
		return " " + errStyle.Render(msgHostFailed)
	case m.state == stateIdle:
		return " " + m.ui.spinner.View() + " " + dimStyle.Render(msgWaitingHost)
	case m.state == stateFoldersLoading:
		return " " + m.ui.spinner.View() + " " + dimStyle.Render(msgLoadingFolders)
	case len(m.folders.items) == 0:
		return " " + dimStyle.Render(MessageNoFolders)
	}

	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.List.Fg))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.List.SelectedFg)).
		Background(lipgloss.Color(m.theme.List.SelectedBg)).
		Bold(true)

	nameWidth := max(m.ui.width-6, 1)
	start, end := m.getVisibleFolderRange()
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		name := truncateWidth(stripZeroWidth(m.folders.items[i].Nome), nameWidth)
		if i == m.folders.cursor {
			rows = append(rows, selectedStyle.Render("> "+m.uiConfig.FolderIcon+" "+name))
			continue
		}
		rows = append(rows, rowStyle.Render("  "+m.uiConfig.FolderIcon+" "+name))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderStatusline() string {
	left := modeSegments(m.theme, strings.ToUpper(m.state.String()))
	if m.canSelect() || m.state == stateConfirmPending || m.state == stateUploading {
		label := fmt.Sprintf("%d folders", len(m.folders.items))
		if len(m.folders.items) == 1 {
			label = "1 folder"
		}
		left = append(left, textSegment(m.theme, label))
	}

	var right []statusSegment
	switch {
	case m.state == stateUploading:
		right = append(right, dimSegment(m.theme, "sending"))
	case m.run.inFlight:
		right = append(right, dimSegment(m.theme, "running"))
	default:
		if n, ok := m.lastNotice(); ok {
			right = append(right, noticeSegment(m.theme, n))
		}
	}

	km := m.keyMap()
	if m.state == stateConfirmPending {
		right = append(right,
			dimSegment(m.theme, km.confirm.Yes.Help().Key+" confirm"),
			dimSegment(m.theme, km.confirm.No.Help().Key+" cancel"),
		)
	} else {
		right = append(right,
			dimSegment(m.theme, km.folders.Help.Help().Key+" help"),
			dimSegment(m.theme, km.folders.Quit.Help().Key+" quit"),
		)
	}

	return renderStatusline(m.theme, m.ui.width, left, right)
}
