package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/symplify/triage/internal/message"
)

// Monochrome theme - adaptive for light and dark terminals
var (
	bgBase   = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}
	bgCursor = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#282828"}

	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#333333"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"}).
			Padding(0, 1)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Background(bgBase)

	cursorRowStyle = lipgloss.NewStyle().
			Background(bgCursor)

	normalRowStyle = lipgloss.NewStyle().
			Background(bgBase)

	unreadRowStyle = lipgloss.NewStyle().
			Bold(true).
			Background(bgBase)

	criticalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#aa0000", Dark: "#ff5555"})

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#999999"}).
			Background(bgBase).
			Padding(0, 1)

	flashStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#996600", Dark: "#ffcc00"}).
			Background(bgBase)

	detailLabelStyle = lipgloss.NewStyle().Bold(true)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		m.width = 100
	}

	var b strings.Builder
	b.WriteString(m.renderTitleBar())
	b.WriteString("\n")

	switch m.level {
	case levelDetail:
		b.WriteString(m.renderDetail())
	case levelNotifications:
		b.WriteString(m.renderNotificationList())
	default:
		b.WriteString(m.renderInboxList())
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTitleBar() string {
	title := "triage"
	if m.version != "" {
		title += " " + m.version
	}

	var section string
	if m.level == levelNotifications {
		section = fmt.Sprintf("Notifications (%d unread, %d critical)",
			m.notify.UnreadCount(), m.notify.CriticalCount())
	} else {
		counts := m.inbox.Counts()
		folder := m.inbox.ActiveFolder()
		c := counts[folder]
		section = fmt.Sprintf("%s (%d/%d unread)", folderLabel(folder), c.Unread, c.Total)
	}

	bar := title + "  |  " + section
	return titleBarStyle.Width(m.width).Render(truncate(bar, m.width-2))
}

func (m Model) renderInboxList() string {
	if len(m.emails) == 0 {
		return normalRowStyle.Render("  no messages") + "\n"
	}

	// Column layout: flag(2) badge(5) sender(22) time(7) subject(rest)
	senderW := 22
	timeW := 7
	subjectW := m.width - 2 - 5 - senderW - 1 - timeW - 2
	if subjectW < 10 {
		subjectW = 10
	}

	var b strings.Builder
	header := fmt.Sprintf("  %-5s%-*s %-*s %s", "PRI", senderW, "SENDER", timeW, "WHEN", "SUBJECT")
	b.WriteString(tableHeaderStyle.Width(m.width).Render(truncate(header, m.width)))
	b.WriteString("\n")

	end := m.scrollOffset + m.pageSize
	if end > len(m.emails) {
		end = len(m.emails)
	}
	now := m.now()
	for i := m.scrollOffset; i < end; i++ {
		e := m.emails[i]

		flag := " "
		if e.Starred {
			flag = "*"
		}
		marker := " "
		if !e.Read {
			marker = "●"
		}

		badge := priorityBadge(e.Analysis.Priority)
		sender := truncate(e.Sender.Name, senderW)
		when := relativeTime(e.Timestamp, now)
		subject := truncate(e.Subject, subjectW)

		row := fmt.Sprintf("%s%s %s %-*s %-*s %s",
			marker, flag, badge, senderW, sender, timeW, when, subject)
		row = padRight(truncate(row, m.width), m.width)

		style := normalRowStyle
		if !e.Read {
			style = unreadRowStyle
		}
		if i == m.cursor {
			style = cursorRowStyle
		}
		line := style.Render(row)
		if e.Analysis.Priority == message.PriorityCritical && i != m.cursor {
			line = criticalStyle.Render(row)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderNotificationList() string {
	if len(m.notifications) == 0 {
		return normalRowStyle.Render("  no notifications") + "\n"
	}

	sourceW := 18
	timeW := 7
	titleW := m.width - 2 - 5 - sourceW - 1 - timeW - 2
	if titleW < 10 {
		titleW = 10
	}

	var b strings.Builder
	header := fmt.Sprintf("  %-5s%-*s %-*s %s", "CRIT", sourceW, "SOURCE", timeW, "WHEN", "TITLE")
	b.WriteString(tableHeaderStyle.Width(m.width).Render(truncate(header, m.width)))
	b.WriteString("\n")

	end := m.scrollOffset + m.pageSize
	if end > len(m.notifications) {
		end = len(m.notifications)
	}
	now := m.now()
	for i := m.scrollOffset; i < end; i++ {
		n := m.notifications[i]

		marker := " "
		if !n.Read {
			marker = "●"
		}
		badge := criticalityBadge(n.Analysis.Criticality)
		source := truncate(n.Source.Name, sourceW)
		when := relativeTime(n.Timestamp, now)
		title := truncate(n.Title, titleW)

		row := fmt.Sprintf("%s  %s %-*s %-*s %s",
			marker, badge, sourceW, source, timeW, when, title)
		row = padRight(truncate(row, m.width), m.width)

		style := normalRowStyle
		if !n.Read {
			style = unreadRowStyle
		}
		if i == m.cursor {
			style = cursorRowStyle
		}
		line := style.Render(row)
		if n.Analysis.Criticality == message.CriticalityCritical && i != m.cursor {
			line = criticalStyle.Render(row)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDetail() string {
	e := m.selectedEmail()
	if e == nil {
		return normalRowStyle.Render("  message no longer available") + "\n"
	}

	width := m.width - 4
	if width < 20 {
		width = 20
	}

	var lines []string
	lines = append(lines,
		detailLabelStyle.Render("Subject: ")+e.Subject,
		detailLabelStyle.Render("From:    ")+fmt.Sprintf("%s <%s>", e.Sender.Name, e.Sender.Address),
		detailLabelStyle.Render("Date:    ")+e.Timestamp.Format("Mon, 2 Jan 2006 15:04"),
		detailLabelStyle.Render("Triage:  ")+fmt.Sprintf("%s / %s (confidence %d%%, respond %s)",
			e.Analysis.Priority, e.Analysis.Category, e.Analysis.Confidence, e.Analysis.EstimatedResponseTime),
	)
	if len(e.Analysis.Indicators) > 0 {
		lines = append(lines, detailLabelStyle.Render("Matched: ")+strings.Join(e.Analysis.Indicators, ", "))
	}
	folders := make([]string, len(e.Folders))
	for i, f := range e.Folders {
		folders[i] = string(f)
	}
	lines = append(lines, detailLabelStyle.Render("Folders: ")+strings.Join(folders, ", "), "")
	lines = append(lines, wrapText(e.Preview, width)...)

	// Clamp scroll to content.
	maxScroll := len(lines) - m.pageSize
	if maxScroll < 0 {
		maxScroll = 0
	}
	scroll := m.detailScroll
	if scroll > maxScroll {
		scroll = maxScroll
	}
	end := scroll + m.pageSize
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for _, line := range lines[scroll:end] {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	if m.searchActive {
		return footerStyle.Width(m.width).Render("/" + m.searchInput.View())
	}
	if m.flashMessage != "" {
		return flashStyle.Width(m.width).Render("  " + m.flashMessage)
	}

	var help string
	switch m.level {
	case levelDetail:
		help = "j/k scroll  J/K next/prev  s star  a archive  esc back  q quit"
	case levelNotifications:
		help = "j/k move  enter read  a ack  x dismiss  A read-all  tab inbox  q quit"
	default:
		key, _ := m.inbox.CurrentSort()
		help = fmt.Sprintf("j/k move  enter open  r read  s star  a archive  x del  A read-all  / search  o sort:%s  1-7 folder  tab notif  q quit", key)
	}

	pos := ""
	if n := m.rowCount(); n > 0 && m.level != levelDetail {
		pos = fmt.Sprintf("  [%d/%d]", m.cursor+1, n)
	}
	return footerStyle.Width(m.width).Render(truncate(help+pos, m.width-2))
}
