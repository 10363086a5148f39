package cmd

import (
	"github.com/spf13/cobra"
	mcpserver "github.com/symplify/triage/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP server for assistant integration",
	Long: `Start an MCP (Model Context Protocol) server over stdio.

This allows an MCP client to query the triage inbox using tools like
list_inbox, get_email, folder_counts, list_notifications, and
analyze_message.

Add to the client config:
  {
    "mcpServers": {
      "triage": {
        "command": "triage",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ib, nf, _, err := loadStores(cmd.Context())
		if err != nil {
			return err
		}
		return mcpserver.Serve(cmd.Context(), ib, nf)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
