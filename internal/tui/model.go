// Package tui provides a terminal user interface for the triage inbox.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/symplify/triage/internal/inbox"
	"github.com/symplify/triage/internal/message"
	"github.com/symplify/triage/internal/notify"
	"github.com/symplify/triage/internal/triage"
)

// viewLevel represents the current navigation depth.
type viewLevel int

const (
	levelInbox viewLevel = iota
	levelDetail
	levelNotifications
)

// Options configuration for TUI.
type Options struct {
	Version string
	Now     func() time.Time
}

// Refresher triggers a reload of the backing sources.
type Refresher interface {
	Trigger() error
}

// viewState encapsulates cursor and scroll position for a view.
type viewState struct {
	level        viewLevel
	cursor       int
	scrollOffset int
	detailScroll int
}

// Model is the main TUI model following the Elm architecture.
type Model struct {
	viewState

	inbox     *inbox.Store
	notify    *notify.Store
	refresher Refresher
	version   string
	now       func() time.Time

	// Cached query results, refreshed after every mutation.
	emails        []triage.AnalyzedEmail
	notifications []triage.AnalyzedNotification

	// Search state (vim-like search bar on the footer line)
	searchActive bool
	searchInput  textinput.Model

	pageSize int
	width    int
	height   int

	// Flash message (temporary notification)
	flashMessage   string
	flashExpiresAt time.Time

	quitting bool
}

// New creates a new TUI model over the given stores.
func New(ib *inbox.Store, nf *notify.Store, refresher Refresher, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "search subject, sender, preview"
	ti.CharLimit = 120
	ti.Width = 40

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		inbox:       ib,
		notify:      nf,
		refresher:   refresher,
		version:     opts.Version,
		now:         now,
		searchInput: ti,
		pageSize:    20,
	}
	m.reload()
	return m
}

// reload refreshes the cached query results from both stores.
func (m *Model) reload() {
	m.emails = m.inbox.Query()
	m.notifications = m.notify.Query()
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := m.rowCount()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.scrollOffset > m.cursor {
		m.scrollOffset = m.cursor
	}
}

func (m *Model) rowCount() int {
	if m.level == levelNotifications {
		return len(m.notifications)
	}
	return len(m.emails)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// flashTickMsg clears an expired flash message.
type flashTickMsg struct{}

func flashTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return flashTickMsg{} })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.height > 6 {
			m.pageSize = m.height - 6
		}
		return m, nil

	case flashTickMsg:
		if !m.flashExpiresAt.IsZero() && m.now().After(m.flashExpiresAt) {
			m.flashMessage = ""
			m.flashExpiresAt = time.Time{}
		}
		return m, nil

	case tea.KeyMsg:
		if m.searchActive {
			return m.handleSearchKeys(msg)
		}
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m Model) showFlash(text string) (Model, tea.Cmd) {
	m.flashMessage = text
	m.flashExpiresAt = m.now().Add(2 * time.Second)
	return m, flashTick(2 * time.Second)
}

// selectedEmail returns the email under the cursor, or nil.
func (m *Model) selectedEmail() *triage.AnalyzedEmail {
	if m.cursor < 0 || m.cursor >= len(m.emails) {
		return nil
	}
	return &m.emails[m.cursor]
}

// selectedNotification returns the notification under the cursor, or nil.
func (m *Model) selectedNotification() *triage.AnalyzedNotification {
	if m.cursor < 0 || m.cursor >= len(m.notifications) {
		return nil
	}
	return &m.notifications[m.cursor]
}

// folderOrder is the order folders cycle through with the number keys.
var folderOrder = message.Folders()

func (m *Model) setFolder(f message.Folder) {
	m.inbox.SetActiveFolder(f)
	m.cursor = 0
	m.scrollOffset = 0
	m.reload()
}
