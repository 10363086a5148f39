package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/symplify/triage/internal/inbox"
	"github.com/symplify/triage/internal/message"
)

var (
	listFolder     string
	listUnreadOnly bool
	listSearch     string
	listSort       string
	listOrder      string
	listJSON       bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List triaged emails in a folder",
	Long: `List the emails routed to a folder, ordered by triage priority.

Examples:
  triage list
  triage list --folder urgent --unread
  triage list --search "lab" --sort date --order desc
  triage list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ib, _, _, err := loadStores(cmd.Context())
		if err != nil {
			return err
		}

		folder := message.Folder(listFolder)
		if !validFolder(folder) {
			return fmt.Errorf("unknown folder %q (one of: %s)", listFolder, folderNames())
		}
		ib.SetActiveFolder(folder)

		filter := inbox.Filter{Search: listSearch}
		if listUnreadOnly {
			unread := false
			filter.Read = &unread
		}
		ib.SetFilter(filter)

		key, order, err := parseSort(listSort, listOrder)
		if err != nil {
			return err
		}
		ib.SetSort(key, order)

		emails := ib.Query()
		if listJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(emails)
		}

		if len(emails) == 0 {
			fmt.Println("No messages.")
			return nil
		}

		styled := isatty.IsTerminal(os.Stdout.Fd())
		bold := lipgloss.NewStyle().Bold(true)
		faint := lipgloss.NewStyle().Faint(true)

		header := fmt.Sprintf("%-9s %-24s %-17s %s", "PRIORITY", "SENDER", "DATE", "SUBJECT")
		if styled {
			header = bold.Render(header)
		}
		fmt.Println(header)

		for _, e := range emails {
			marker := " "
			if !e.Read {
				marker = "*"
			}
			row := fmt.Sprintf("%-8s%s %-24s %-17s %s",
				e.Analysis.Priority, marker,
				clip(e.Sender.Name, 24),
				e.Timestamp.Format("2006-01-02 15:04"),
				e.Subject)
			if styled && e.Read {
				row = faint.Render(row)
			}
			fmt.Println(row)
		}

		c := ib.Counts()[folder]
		fmt.Printf("\n%d messages, %d unread\n", c.Total, c.Unread)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listFolder, "folder", "inbox", "folder to list")
	listCmd.Flags().BoolVar(&listUnreadOnly, "unread", false, "only unread messages")
	listCmd.Flags().StringVar(&listSearch, "search", "", "substring filter on subject, preview, and sender")
	listCmd.Flags().StringVar(&listSort, "sort", "priority", "sort key: priority, date, sender")
	listCmd.Flags().StringVar(&listOrder, "order", "asc", "sort order: asc, desc")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
}

func validFolder(f message.Folder) bool {
	for _, known := range message.Folders() {
		if f == known {
			return true
		}
	}
	return false
}

func folderNames() string {
	names := make([]string, 0, len(message.Folders()))
	for _, f := range message.Folders() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func parseSort(sortKey, order string) (inbox.SortKey, inbox.SortOrder, error) {
	var key inbox.SortKey
	switch sortKey {
	case "priority":
		key = inbox.SortPriority
	case "date":
		key = inbox.SortDate
	case "sender":
		key = inbox.SortSender
	default:
		return "", "", fmt.Errorf("unknown sort key %q (one of: priority, date, sender)", sortKey)
	}

	var ord inbox.SortOrder
	switch order {
	case "asc":
		ord = inbox.OrderAsc
	case "desc":
		ord = inbox.OrderDesc
	default:
		return "", "", fmt.Errorf("unknown sort order %q (one of: asc, desc)", order)
	}
	return key, ord, nil
}
