package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/symplify/triage/internal/inbox"
	"github.com/symplify/triage/internal/message"
	"github.com/symplify/triage/internal/notify"
	"github.com/symplify/triage/internal/triage"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, err string, message string) {
	writeJSON(w, status, ErrorResponse{Error: err, Message: message})
}

// writeOK acknowledges a mutation. Mutations addressing unknown ids
// are silent no-ops, so this is the answer even when nothing changed;
// the caller observes the outcome through the next query.
func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// InboxResponse is the triaged email list plus the view that produced
// it.
type InboxResponse struct {
	Folder message.Folder         `json:"folder"`
	Total  int                    `json:"total"`
	Emails []triage.AnalyzedEmail `json:"emails"`
}

// CountsResponse carries the per-folder badge numbers.
type CountsResponse struct {
	Counts      map[message.Folder]inbox.Counts `json:"counts"`
	UnreadTotal int                             `json:"unread_total"`
}

// NotificationsResponse is the triaged notification list plus the
// aggregate counters.
type NotificationsResponse struct {
	Total         int                           `json:"total"`
	UnreadCount   int                           `json:"unread_count"`
	CriticalCount int                           `json:"critical_count"`
	Notifications []triage.AnalyzedNotification `json:"notifications"`
}

// viewFromQuery applies the request's view parameters to the store.
// Absent parameters reset to the defaults so each request describes
// its whole view; the result is observed via the following Query.
func (s *Server) viewFromQuery(r *http.Request) {
	q := r.URL.Query()

	folder := message.FolderInbox
	if v := q.Get("folder"); v != "" {
		folder = message.Folder(v)
	}
	s.inbox.SetActiveFolder(folder)

	var filter inbox.Filter
	if v := q.Get("priority"); v != "" {
		for _, p := range strings.Split(v, ",") {
			filter.Priorities = append(filter.Priorities, message.Priority(p))
		}
	}
	if v := q.Get("read"); v != "" {
		read := v == "true"
		filter.Read = &read
	}
	if v := q.Get("starred"); v != "" {
		starred := v == "true"
		filter.Starred = &starred
	}
	filter.Search = q.Get("q")
	s.inbox.SetFilter(filter)

	key := inbox.SortPriority
	switch q.Get("sort") {
	case "date":
		key = inbox.SortDate
	case "sender":
		key = inbox.SortSender
	}
	order := inbox.OrderAsc
	if q.Get("order") == "desc" {
		order = inbox.OrderDesc
	}
	s.inbox.SetSort(key, order)
}

// handleListInbox returns the triaged email list for the requested
// view.
func (s *Server) handleListInbox(w http.ResponseWriter, r *http.Request) {
	s.viewFromQuery(r)

	emails := s.inbox.Query()
	writeJSON(w, http.StatusOK, InboxResponse{
		Folder: s.inbox.ActiveFolder(),
		Total:  len(emails),
		Emails: emails,
	})
}

// handleFolderCounts returns the per-folder totals for badges.
func (s *Server) handleFolderCounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CountsResponse{
		Counts:      s.inbox.Counts(),
		UnreadTotal: s.inbox.UnreadTotal(),
	})
}

// handleGetEmail returns a single analyzed email.
func (s *Server) handleGetEmail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	email, ok := s.inbox.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "Email not found")
		return
	}
	writeJSON(w, http.StatusOK, email)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	s.inbox.MarkRead(chi.URLParam(r, "id"))
	writeOK(w)
}

func (s *Server) handleMarkUnread(w http.ResponseWriter, r *http.Request) {
	s.inbox.MarkUnread(chi.URLParam(r, "id"))
	writeOK(w)
}

func (s *Server) handleToggleStar(w http.ResponseWriter, r *http.Request) {
	s.inbox.ToggleStar(chi.URLParam(r, "id"))
	writeOK(w)
}

func (s *Server) handleArchiveEmail(w http.ResponseWriter, r *http.Request) {
	s.inbox.Archive(chi.URLParam(r, "id"))
	writeOK(w)
}

func (s *Server) handleDeleteEmail(w http.ResponseWriter, r *http.Request) {
	s.inbox.Delete(chi.URLParam(r, "id"))
	writeOK(w)
}

// handleInboxReadAll marks a folder (or everything, with no folder
// parameter) read.
func (s *Server) handleInboxReadAll(w http.ResponseWriter, r *http.Request) {
	s.inbox.MarkAllRead(message.Folder(r.URL.Query().Get("folder")))
	writeOK(w)
}

// handleListNotifications returns the triaged notification list.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter notify.Filter
	if v := q.Get("criticality"); v != "" {
		for _, c := range strings.Split(v, ",") {
			filter.Criticalities = append(filter.Criticalities, message.Criticality(c))
		}
	}
	if v := q.Get("category"); v != "" {
		for _, c := range strings.Split(v, ",") {
			filter.Categories = append(filter.Categories, message.NotificationCategory(c))
		}
	}
	if v := q.Get("read"); v != "" {
		read := v == "true"
		filter.Read = &read
	}
	s.notify.SetFilter(filter)

	notifications := s.notify.Query()
	writeJSON(w, http.StatusOK, NotificationsResponse{
		Total:         len(notifications),
		UnreadCount:   s.notify.UnreadCount(),
		CriticalCount: s.notify.CriticalCount(),
		Notifications: notifications,
	})
}

func (s *Server) handleNotificationRead(w http.ResponseWriter, r *http.Request) {
	s.notify.MarkRead(chi.URLParam(r, "id"))
	writeOK(w)
}

func (s *Server) handleNotificationAcknowledge(w http.ResponseWriter, r *http.Request) {
	s.notify.Acknowledge(chi.URLParam(r, "id"))
	writeOK(w)
}

func (s *Server) handleNotificationDismiss(w http.ResponseWriter, r *http.Request) {
	s.notify.Dismiss(chi.URLParam(r, "id"))
	writeOK(w)
}

func (s *Server) handleNotificationsReadAll(w http.ResponseWriter, r *http.Request) {
	s.notify.MarkAllRead()
	writeOK(w)
}

// AnalyzeRequest is an ad-hoc scoring request for either message kind.
type AnalyzeRequest struct {
	Kind string `json:"kind"` // "email" or "notification"

	// Email fields
	Subject string          `json:"subject,omitempty"`
	Preview string          `json:"preview,omitempty"`
	Sender  *message.Sender `json:"sender,omitempty"`

	// Notification fields
	Title     string          `json:"title,omitempty"`
	Message   string          `json:"message,omitempty"`
	Source    *message.Source `json:"source,omitempty"`
	Timestamp time.Time       `json:"timestamp,omitzero"`
}

// handleAnalyze scores a message without storing it. Useful for
// dashboards that want to preview classification of a draft or an
// external feed item.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Request body must be JSON")
		return
	}

	switch req.Kind {
	case "email", "":
		email := message.Email{
			Subject:   req.Subject,
			Preview:   req.Preview,
			Timestamp: req.Timestamp,
		}
		if req.Sender != nil {
			email.Sender = *req.Sender
		}
		writeJSON(w, http.StatusOK, triage.AnalyzeEmail(email))

	case "notification":
		n := message.Notification{
			Title:     req.Title,
			Message:   req.Message,
			Timestamp: req.Timestamp,
		}
		if req.Source != nil {
			n.Source = *req.Source
		}
		if n.Timestamp.IsZero() {
			n.Timestamp = time.Now()
		}
		writeJSON(w, http.StatusOK, triage.AnalyzeNotification(n, time.Now()))

	default:
		writeError(w, http.StatusBadRequest, "invalid_kind", "Kind must be 'email' or 'notification'")
	}
}

// handleRefreshStatus reports the refresh scheduler state plus the
// stores' last load outcomes.
func (s *Server) handleRefreshStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"refresh":       s.refresher.Status(),
		"inbox":         loadStatusJSON(s.inbox.LoadStatus()),
		"notifications": loadStatusJSON(s.notify.LoadStatus()),
	})
}

// handleTriggerRefresh starts a refresh outside the schedule.
func (s *Server) handleTriggerRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.refresher.Trigger(); err != nil {
		writeError(w, http.StatusConflict, "refresh_error", err.Error())
		return
	}
	s.logger.Info("refresh triggered via API")
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// loadStatusJSON renders a store's last load outcome.
func loadStatusJSON(loadedAt time.Time, err error) map[string]string {
	st := map[string]string{}
	if !loadedAt.IsZero() {
		st["loaded_at"] = loadedAt.Format(time.RFC3339)
	}
	if err != nil {
		st["load_error"] = err.Error()
	}
	return st
}
