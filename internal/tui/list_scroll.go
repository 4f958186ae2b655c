package tui

const (
	// title bar, sender line and a blank spacer
	listHeaderHeight = 3
	listFooterHeight = 1
)

func (m *Model) visibleRowCount() int {
	return max(m.ui.height-listHeaderHeight-listFooterHeight, 0)
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleRowCount()
	count := len(m.folders.items)
	if visible <= 0 || count <= visible {
		m.folders.scrollOffset = 0
		return
	}

	maxOffset := count - visible
	if m.folders.cursor < m.folders.scrollOffset {
		m.folders.scrollOffset = m.folders.cursor
	} else if m.folders.cursor >= m.folders.scrollOffset+visible {
		m.folders.scrollOffset = m.folders.cursor - visible + 1
	}
	m.folders.scrollOffset = min(max(m.folders.scrollOffset, 0), maxOffset)
}

// getVisibleFolderRange calculates which folders fit on screen.
func (m *Model) getVisibleFolderRange() (start, end int) {
	total := len(m.folders.items)
	visible := m.visibleRowCount()
	if visible <= 0 || total <= visible {
		return 0, total
	}
	start = min(max(m.folders.scrollOffset, 0), total-visible)
	return start, start + visible
}

// folderAtRow maps a screen row to a folder index.
func (m *Model) folderAtRow(y int) (int, bool) {
	start, end := m.getVisibleFolderRange()
	idx := start + y - listHeaderHeight
	if y < listHeaderHeight || idx >= end {
		return 0, false
	}
	return idx, true
}
