package cmd

import (
	"github.com/mattn/go-runewidth"
)

// clip truncates s to at most width display cells for table output.
func clip(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
