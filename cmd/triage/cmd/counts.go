package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/symplify/triage/internal/message"
)

var countsJSON bool

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Show per-folder message counts",
	Long: `Show the total and unread message count for every folder.

Examples:
  triage counts
  triage counts --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ib, nf, _, err := loadStores(cmd.Context())
		if err != nil {
			return err
		}

		counts := ib.Counts()
		if countsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(counts)
		}

		fmt.Printf("%-16s %7s %7s\n", "FOLDER", "TOTAL", "UNREAD")
		for _, f := range message.Folders() {
			c := counts[f]
			fmt.Printf("%-16s %7d %7d\n", f, c.Total, c.Unread)
		}
		fmt.Printf("\nnotifications: %d unread, %d critical\n",
			nf.UnreadCount(), nf.CriticalCount())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countsCmd)
	countsCmd.Flags().BoolVar(&countsJSON, "json", false, "output as JSON")
}
