package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/symplify/triage/internal/message"
)

// truncate shortens s to at most width display cells, appending an ellipsis
// when truncation occurs. Width-aware so CJK and emoji line up.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "…")
}

// padRight pads s with spaces to exactly width display cells.
// Uses ansi.StringWidth so styled strings measure correctly.
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// relativeTime formats a timestamp relative to now for list rows.
func relativeTime(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

// priorityBadge returns the short uppercase label shown in list rows.
func priorityBadge(p message.Priority) string {
	switch p {
	case message.PriorityCritical:
		return "CRIT"
	case message.PriorityHigh:
		return "HIGH"
	case message.PriorityMedium:
		return "MED "
	default:
		return "LOW "
	}
}

// criticalityBadge returns the short label for notification rows.
func criticalityBadge(c message.Criticality) string {
	switch c {
	case message.CriticalityCritical:
		return "CRIT"
	case message.CriticalityHigh:
		return "HIGH"
	case message.CriticalityMedium:
		return "MED "
	case message.CriticalityLow:
		return "LOW "
	default:
		return "INFO"
	}
}

// folderLabel returns the display name for a folder.
func folderLabel(f message.Folder) string {
	switch f {
	case message.FolderUrgent:
		return "Urgent"
	case message.FolderLabResults:
		return "Lab Results"
	case message.FolderReferrals:
		return "Referrals"
	case message.FolderInsurance:
		return "Insurance"
	case message.FolderClinical:
		return "Clinical"
	case message.FolderAdministrative:
		return "Administrative"
	default:
		return "Inbox"
	}
}

// wrapText wraps body text to the given display width for the detail view.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		var line string
		for _, word := range strings.Fields(para) {
			if line == "" {
				line = word
				continue
			}
			if runewidth.StringWidth(line)+1+runewidth.StringWidth(word) > width {
				lines = append(lines, line)
				line = word
			} else {
				line += " " + word
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
