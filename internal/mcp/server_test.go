package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/symplify/triage/internal/inbox"
	"github.com/symplify/triage/internal/message"
	"github.com/symplify/triage/internal/notify"
	"github.com/symplify/triage/internal/triage"
)

// toolHandler is the function signature for MCP tool handler methods.
type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// callToolDirect invokes a handler directly with the given arguments and
// returns the raw result.
func callToolDirect(t *testing.T, name string, fn toolHandler, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	result, err := fn(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return result
}

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	if len(r.Content) == 0 {
		t.Fatal("empty content")
	}
	tc, ok := r.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", r.Content[0])
	}
	return tc.Text
}

// runTool invokes a handler, asserts no error, and unmarshals the JSON
// result into T.
func runTool[T any](t *testing.T, name string, fn toolHandler, args map[string]any) T {
	t.Helper()
	r := callToolDirect(t, name, fn, args)
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, r))
	}
	var out T
	if err := json.Unmarshal([]byte(resultText(t, r)), &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return out
}

// runToolExpectError invokes a handler and asserts it returns an error
// result.
func runToolExpectError(t *testing.T, name string, fn toolHandler, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	r := callToolDirect(t, name, fn, args)
	if !r.IsError {
		t.Fatal("expected error result")
	}
	return r
}

func newTestHandlers(t *testing.T) *handlers {
	t.Helper()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	ib := inbox.NewStore()
	ib.Load(triage.AnalyzeEmails([]message.Email{
		{
			ID:        "e1",
			Subject:   "STAT lab specimen",
			Preview:   "abnormal results flagged for review",
			Sender:    message.Sender{Address: "lab@hospital.org", Name: "Clinical Laboratory"},
			Timestamp: base.Add(2 * time.Minute),
		},
		{
			ID:        "e2",
			Subject:   "lunch on friday",
			Preview:   "who is in",
			Sender:    message.Sender{Address: "friend@example.com", Name: "Sam"},
			Timestamp: base,
			Read:      true,
		},
	}))

	nf := notify.NewStore()
	nf.Load(triage.AnalyzeNotifications([]message.Notification{
		{
			ID:        "n1",
			Title:     "Code Blue Room 4",
			Message:   "cardiac arrest response in progress",
			Timestamp: base.Add(time.Minute),
			Source:    message.Source{Type: message.SourceLab, Name: "Central Lab"},
		},
		{
			ID:        "n2",
			Title:     "Backup completed",
			Message:   "nightly export finished",
			Timestamp: base,
			Read:      true,
			Source:    message.Source{Type: message.SourceSystem, Name: "Scheduler"},
		},
	}, base.Add(5*time.Minute)))

	return &handlers{inbox: ib, notify: nf}
}

func TestListInboxTool(t *testing.T) {
	h := newTestHandlers(t)

	t.Run("default folder", func(t *testing.T) {
		emails := runTool[[]triage.AnalyzedEmail](t, ToolListInbox, h.listInbox, map[string]any{})
		// e1 routes to urgent and lab-results, so only e2 lives in inbox.
		if len(emails) != 1 || emails[0].ID != "e2" {
			t.Fatalf("unexpected result: %v", emails)
		}
	})

	t.Run("urgent folder", func(t *testing.T) {
		emails := runTool[[]triage.AnalyzedEmail](t, ToolListInbox, h.listInbox, map[string]any{"folder": "urgent"})
		if len(emails) != 1 || emails[0].ID != "e1" {
			t.Fatalf("unexpected result: %v", emails)
		}
		if emails[0].Analysis.Priority != message.PriorityCritical {
			t.Errorf("priority = %s, want critical", emails[0].Analysis.Priority)
		}
	})

	t.Run("unread only", func(t *testing.T) {
		emails := runTool[[]triage.AnalyzedEmail](t, ToolListInbox, h.listInbox, map[string]any{"unread_only": true})
		if len(emails) != 0 {
			t.Fatalf("inbox has no unread emails, got %v", emails)
		}
	})

	t.Run("search", func(t *testing.T) {
		emails := runTool[[]triage.AnalyzedEmail](t, ToolListInbox, h.listInbox, map[string]any{
			"folder": "lab-results",
			"search": "specimen",
		})
		if len(emails) != 1 || emails[0].ID != "e1" {
			t.Fatalf("unexpected result: %v", emails)
		}
	})
}

func TestGetEmailTool(t *testing.T) {
	h := newTestHandlers(t)

	t.Run("found", func(t *testing.T) {
		email := runTool[triage.AnalyzedEmail](t, ToolGetEmail, h.getEmail, map[string]any{"id": "e1"})
		if email.Subject != "STAT lab specimen" {
			t.Fatalf("unexpected subject: %s", email.Subject)
		}
		if len(email.Analysis.Indicators) == 0 {
			t.Error("expected matched indicators")
		}
	})

	t.Run("missing id", func(t *testing.T) {
		runToolExpectError(t, ToolGetEmail, h.getEmail, map[string]any{})
	})

	t.Run("unknown id", func(t *testing.T) {
		r := runToolExpectError(t, ToolGetEmail, h.getEmail, map[string]any{"id": "ghost"})
		if !strings.Contains(resultText(t, r), "not found") {
			t.Errorf("unexpected error text: %s", resultText(t, r))
		}
	})
}

func TestFolderCountsTool(t *testing.T) {
	h := newTestHandlers(t)

	out := runTool[struct {
		Counts      map[message.Folder]inbox.Counts `json:"counts"`
		UnreadTotal int                             `json:"unread_total"`
	}](t, ToolFolderCounts, h.folderCounts, map[string]any{})

	if got := out.Counts[message.FolderUrgent]; got.Total != 1 || got.Unread != 1 {
		t.Errorf("urgent counts = %+v, want {1 1}", got)
	}
	if out.UnreadTotal != 1 {
		t.Errorf("unread total = %d, want 1", out.UnreadTotal)
	}
}

func TestListNotificationsTool(t *testing.T) {
	h := newTestHandlers(t)

	t.Run("all", func(t *testing.T) {
		ns := runTool[[]triage.AnalyzedNotification](t, ToolListNotifications, h.listNotifications, map[string]any{})
		if len(ns) != 2 {
			t.Fatalf("got %d notifications, want 2", len(ns))
		}
		// Criticality order puts the code blue first.
		if ns[0].ID != "n1" {
			t.Errorf("first = %s, want n1", ns[0].ID)
		}
	})

	t.Run("criticality filter", func(t *testing.T) {
		ns := runTool[[]triage.AnalyzedNotification](t, ToolListNotifications, h.listNotifications, map[string]any{"criticality": "critical"})
		if len(ns) != 1 || ns[0].ID != "n1" {
			t.Fatalf("unexpected result: %v", ns)
		}
	})

	t.Run("unread only", func(t *testing.T) {
		ns := runTool[[]triage.AnalyzedNotification](t, ToolListNotifications, h.listNotifications, map[string]any{"unread_only": true})
		if len(ns) != 1 || ns[0].ID != "n1" {
			t.Fatalf("unexpected result: %v", ns)
		}
	})
}

func TestAnalyzeMessageTool(t *testing.T) {
	h := newTestHandlers(t)

	t.Run("email", func(t *testing.T) {
		out := runTool[struct {
			Analysis triage.EmailAnalysis `json:"analysis"`
			Folders  []message.Folder     `json:"folders"`
		}](t, ToolAnalyzeMessage, h.analyzeMessage, map[string]any{
			"subject": "STAT lab specimen",
			"sender":  "lab@hospital.org",
		})
		if out.Analysis.Priority != message.PriorityCritical {
			t.Errorf("priority = %s, want critical", out.Analysis.Priority)
		}
		if len(out.Folders) == 0 {
			t.Error("expected folder assignment")
		}
	})

	t.Run("notification", func(t *testing.T) {
		out := runTool[triage.NotificationAnalysis](t, ToolAnalyzeMessage, h.analyzeMessage, map[string]any{
			"kind":    "notification",
			"subject": "code blue in room 2",
			"sender":  "lab",
		})
		if out.Criticality != message.CriticalityCritical {
			t.Errorf("criticality = %s, want critical", out.Criticality)
		}
		if len(out.SuggestedActions) == 0 {
			t.Error("expected suggested actions")
		}
	})

	t.Run("invalid kind", func(t *testing.T) {
		runToolExpectError(t, ToolAnalyzeMessage, h.analyzeMessage, map[string]any{"kind": "fax"})
	})
}
