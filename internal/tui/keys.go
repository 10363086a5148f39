package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/symplify/triage/internal/inbox"
)

// handleKeys dispatches key presses outside of search mode.
func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.level == levelDetail {
			m.level = levelInbox
			m.detailScroll = 0
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if m.level == levelDetail {
			m.level = levelInbox
			m.detailScroll = 0
		}
		return m, nil
	}

	switch m.level {
	case levelDetail:
		return m.handleDetailKeys(msg)
	case levelNotifications:
		return m.handleNotificationKeys(msg)
	default:
		return m.handleInboxKeys(msg)
	}
}

func (m Model) handleInboxKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.cursor = 0
		m.scrollOffset = 0
	case "G", "end":
		m.cursor = len(m.emails) - 1
		m.clampCursor()
		m.ensureVisible()

	case "enter":
		if e := m.selectedEmail(); e != nil {
			m.inbox.MarkRead(e.ID)
			m.reload()
			m.level = levelDetail
			m.detailScroll = 0
		}

	case "tab", "n":
		m.level = levelNotifications
		m.cursor = 0
		m.scrollOffset = 0

	case "1", "2", "3", "4", "5", "6", "7":
		idx := int(msg.String()[0] - '1')
		if idx < len(folderOrder) {
			m.setFolder(folderOrder[idx])
		}

	case "r":
		if e := m.selectedEmail(); e != nil {
			if e.Read {
				m.inbox.MarkUnread(e.ID)
			} else {
				m.inbox.MarkRead(e.ID)
			}
			m.reload()
		}

	case "s":
		if e := m.selectedEmail(); e != nil {
			m.inbox.ToggleStar(e.ID)
			m.reload()
		}

	case "a":
		if e := m.selectedEmail(); e != nil {
			m.inbox.Archive(e.ID)
			m.reload()
			return m.showFlash("archived")
		}

	case "x", "delete":
		if e := m.selectedEmail(); e != nil {
			m.inbox.Delete(e.ID)
			m.reload()
			return m.showFlash("deleted")
		}

	case "A":
		m.inbox.MarkAllRead(m.inbox.ActiveFolder())
		m.reload()
		return m.showFlash("folder marked read")

	case "o":
		m.cycleSort()

	case "/":
		m.searchActive = true
		m.searchInput.SetValue(m.inbox.CurrentFilter().Search)
		m.searchInput.Focus()
		return m, textinput.Blink

	case "R":
		return m.triggerRefresh()
	}
	return m, nil
}

func (m Model) handleNotificationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.cursor = 0
		m.scrollOffset = 0

	case "tab", "n":
		m.level = levelInbox
		m.cursor = 0
		m.scrollOffset = 0
		m.reload()

	case "enter", "r":
		if n := m.selectedNotification(); n != nil {
			m.notify.MarkRead(n.ID)
			m.reload()
		}

	case "a":
		if n := m.selectedNotification(); n != nil {
			m.notify.Acknowledge(n.ID)
			m.reload()
			return m.showFlash("acknowledged")
		}

	case "x", "delete":
		if n := m.selectedNotification(); n != nil {
			m.notify.Dismiss(n.ID)
			m.reload()
			return m.showFlash("dismissed")
		}

	case "A":
		m.notify.MarkAllRead()
		m.reload()
		return m.showFlash("all notifications read")

	case "R":
		return m.triggerRefresh()
	}
	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.detailScroll++
	case "k", "up":
		if m.detailScroll > 0 {
			m.detailScroll--
		}
	case "J":
		m.moveCursor(1)
		m.markSelectedRead()
	case "K":
		m.moveCursor(-1)
		m.markSelectedRead()
	case "s":
		if e := m.selectedEmail(); e != nil {
			m.inbox.ToggleStar(e.ID)
			m.reload()
		}
	case "a":
		if e := m.selectedEmail(); e != nil {
			m.inbox.Archive(e.ID)
			m.reload()
			m.level = levelInbox
			return m.showFlash("archived")
		}
	}
	return m, nil
}

func (m Model) triggerRefresh() (tea.Model, tea.Cmd) {
	if m.refresher == nil {
		return m, nil
	}
	if err := m.refresher.Trigger(); err != nil {
		return m.showFlash("refresh already running")
	}
	return m.showFlash("refresh triggered")
}

func (m *Model) markSelectedRead() {
	if e := m.selectedEmail(); e != nil {
		m.inbox.MarkRead(e.ID)
		m.reload()
	}
}

// handleSearchKeys handles input while the search bar is active.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchActive = false
		m.searchInput.Blur()
		m.applySearch(m.searchInput.Value())
		return m, nil
	case "esc":
		m.searchActive = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.applySearch("")
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	// Live filtering as the user types, like typeahead search.
	m.applySearch(m.searchInput.Value())
	return m, cmd
}

func (m *Model) applySearch(q string) {
	f := m.inbox.CurrentFilter()
	f.Search = q
	m.inbox.SetFilter(f)
	m.cursor = 0
	m.scrollOffset = 0
	m.reload()
}

func (m *Model) cycleSort() {
	key, order := m.inbox.CurrentSort()
	switch key {
	case inbox.SortPriority:
		key = inbox.SortDate
	case inbox.SortDate:
		key = inbox.SortSender
	default:
		key = inbox.SortPriority
	}
	m.inbox.SetSort(key, order)
	m.reload()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+m.pageSize {
		m.scrollOffset = m.cursor - m.pageSize + 1
	}
}
