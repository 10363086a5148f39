package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/symplify/triage/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the triage inbox in the terminal",
	Long: `Open an interactive terminal UI over the triage inbox.

Navigate with j/k, open a message with Enter, and switch between the
inbox and notifications with Tab. The footer line shows the keys
available in the current view.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ib, nf, ref, err := loadStores(cmd.Context())
		if err != nil {
			return err
		}

		m := tui.New(ib, nf, ref, tui.Options{Version: version})
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run tui: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
