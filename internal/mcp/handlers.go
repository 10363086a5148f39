package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/symplify/triage/internal/inbox"
	"github.com/symplify/triage/internal/message"
	"github.com/symplify/triage/internal/notify"
	"github.com/symplify/triage/internal/triage"
)

type handlers struct {
	inbox  *inbox.Store
	notify *notify.Store
}

func (h *handlers) listInbox(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	folder := message.FolderInbox
	if v, ok := args["folder"].(string); ok && v != "" {
		folder = message.Folder(v)
	}
	h.inbox.SetActiveFolder(folder)

	var filter inbox.Filter
	if v, ok := args["search"].(string); ok {
		filter.Search = v
	}
	if v, ok := args["unread_only"].(bool); ok && v {
		read := false
		filter.Read = &read
	}
	h.inbox.SetFilter(filter)
	h.inbox.SetSort(inbox.SortPriority, inbox.OrderAsc)

	return jsonResult(h.inbox.Query())
}

func (h *handlers) getEmail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := req.GetArguments()["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	email, found := h.inbox.Get(id)
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("email %s not found", id)), nil
	}
	return jsonResult(email)
}

func (h *handlers) folderCounts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp := struct {
		Counts      map[message.Folder]inbox.Counts `json:"counts"`
		UnreadTotal int                             `json:"unread_total"`
	}{
		Counts:      h.inbox.Counts(),
		UnreadTotal: h.inbox.UnreadTotal(),
	}
	return jsonResult(resp)
}

func (h *handlers) listNotifications(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	var filter notify.Filter
	if v, ok := args["criticality"].(string); ok && v != "" {
		filter.Criticalities = []message.Criticality{message.Criticality(v)}
	}
	if v, ok := args["unread_only"].(bool); ok && v {
		read := false
		filter.Read = &read
	}
	h.notify.SetFilter(filter)

	return jsonResult(h.notify.Query())
}

func (h *handlers) analyzeMessage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	subject, _ := args["subject"].(string)
	body, _ := args["body"].(string)
	sender, _ := args["sender"].(string)
	kind, _ := args["kind"].(string)

	switch kind {
	case "notification":
		n := message.Notification{
			Title:     subject,
			Message:   body,
			Timestamp: time.Now(),
			Source:    message.Source{Type: message.SourceType(sender)},
		}
		return jsonResult(triage.AnalyzeNotification(n, time.Now()).Analysis)

	case "email", "":
		e := message.Email{
			Subject: subject,
			Preview: body,
			Sender:  message.Sender{Address: sender},
		}
		analyzed := triage.AnalyzeEmail(e)
		resp := struct {
			Analysis triage.EmailAnalysis `json:"analysis"`
			Folders  []message.Folder     `json:"folders"`
		}{analyzed.Analysis, analyzed.Folders}
		return jsonResult(resp)

	default:
		return mcp.NewToolResultError(fmt.Sprintf("invalid kind: %s", kind)), nil
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
