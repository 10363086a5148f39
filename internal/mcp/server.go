// Package mcp exposes the triage engine to LLM assistants over the
// Model Context Protocol. Tools are read-only views plus the ad-hoc
// analyzer; mutations stay on the HTTP API where they are audited.
package mcp

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/symplify/triage/internal/inbox"
	"github.com/symplify/triage/internal/notify"
)

// Tool name constants.
const (
	ToolListInbox         = "list_inbox"
	ToolGetEmail          = "get_email"
	ToolFolderCounts      = "folder_counts"
	ToolListNotifications = "list_notifications"
	ToolAnalyzeMessage    = "analyze_message"
)

// Serve creates an MCP server with triage tools and serves over stdio.
// It blocks until stdin is closed or the context is cancelled.
func Serve(ctx context.Context, ib *inbox.Store, nf *notify.Store) error {
	s := server.NewMCPServer(
		"triage",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	h := &handlers{inbox: ib, notify: nf}

	s.AddTool(listInboxTool(), h.listInbox)
	s.AddTool(getEmailTool(), h.getEmail)
	s.AddTool(folderCountsTool(), h.folderCounts)
	s.AddTool(listNotificationsTool(), h.listNotifications)
	s.AddTool(analyzeMessageTool(), h.analyzeMessage)

	stdio := server.NewStdioServer(s)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func listInboxTool() mcp.Tool {
	return mcp.NewTool(ToolListInbox,
		mcp.WithDescription("List triaged emails in a folder, ordered by priority. Each email carries its computed priority, confidence, category, matched urgency indicators, and folder assignment."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("folder",
			mcp.Description("Folder to list (default inbox)"),
			mcp.Enum("inbox", "urgent", "clinical", "lab-results", "referrals", "insurance", "administrative"),
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive substring filter over subject, preview, and sender"),
		),
		mcp.WithBoolean("unread_only",
			mcp.Description("Only unread emails"),
		),
	)
}

func getEmailTool() mcp.Tool {
	return mcp.NewTool(ToolGetEmail,
		mcp.WithDescription("Get one analyzed email by id, including its full analysis."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Email id"),
		),
	)
}

func folderCountsTool() mcp.Tool {
	return mcp.NewTool(ToolFolderCounts,
		mcp.WithDescription("Get per-folder total and unread counts for the inbox."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func listNotificationsTool() mcp.Tool {
	return mcp.NewTool(ToolListNotifications,
		mcp.WithDescription("List triaged notifications ordered by criticality, with suggested actions and time context."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("criticality",
			mcp.Description("Filter to one criticality"),
			mcp.Enum("critical", "high", "medium", "low", "info"),
		),
		mcp.WithBoolean("unread_only",
			mcp.Description("Only unread notifications"),
		),
	)
}

func analyzeMessageTool() mcp.Tool {
	return mcp.NewTool(ToolAnalyzeMessage,
		mcp.WithDescription("Score an arbitrary message without storing it. Returns the priority/criticality label, confidence, matched keywords, category, and (for notifications) suggested actions."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("kind",
			mcp.Description("Message kind (default email)"),
			mcp.Enum("email", "notification"),
		),
		mcp.WithString("subject",
			mcp.Description("Subject (email) or title (notification)"),
		),
		mcp.WithString("body",
			mcp.Description("Preview or message body text"),
		),
		mcp.WithString("sender",
			mcp.Description("Sender address/name (email) or source type (notification)"),
		),
	)
}
