package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/symplify/triage/internal/message"
	"github.com/symplify/triage/internal/triage"
)

var baseTime = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func mkNotification(id string, read bool, crit message.Criticality, age time.Duration) triage.AnalyzedNotification {
	return triage.AnalyzedNotification{
		Notification: message.Notification{
			ID:        id,
			Title:     "title " + id,
			Timestamp: baseTime.Add(-age),
			Read:      read,
		},
		Analysis: triage.NotificationAnalysis{
			Criticality: crit,
			Category:    message.CategoryClinicalRoutine,
		},
	}
}

func testNotifications() []triage.AnalyzedNotification {
	return []triage.AnalyzedNotification{
		mkNotification("n1", false, message.CriticalityCritical, 10*time.Minute),
		mkNotification("n2", false, message.CriticalityHigh, 5*time.Minute),
		mkNotification("n3", true, message.CriticalityCritical, 20*time.Minute),
		mkNotification("n4", false, message.CriticalityInfo, time.Minute),
	}
}

// checkCounters verifies the incremental counters against a full scan.
func checkCounters(t *testing.T, s *Store) {
	t.Helper()
	var unread, critical int
	for i := range s.notifications {
		if !s.notifications[i].Read {
			unread++
			if s.notifications[i].Analysis.Criticality == message.CriticalityCritical {
				critical++
			}
		}
	}
	if s.unread != unread || s.critical != critical {
		t.Fatalf("counters drifted: unread %d (scan %d), critical %d (scan %d)",
			s.unread, unread, s.critical, critical)
	}
}

func TestLoadCounts(t *testing.T) {
	s := NewStore()
	s.Load(testNotifications())

	if got := s.UnreadCount(); got != 3 {
		t.Errorf("unread = %d, want 3", got)
	}
	// n3 is critical but already read.
	if got := s.CriticalCount(); got != 1 {
		t.Errorf("critical = %d, want 1", got)
	}
	checkCounters(t, s)
}

func TestMarkRead(t *testing.T) {
	s := NewStore()
	s.Load(testNotifications())

	s.MarkRead("n1")
	if got := s.UnreadCount(); got != 2 {
		t.Errorf("unread = %d, want 2", got)
	}
	if got := s.CriticalCount(); got != 0 {
		t.Errorf("critical = %d, want 0", got)
	}

	// Idempotent.
	s.MarkRead("n1")
	if got := s.UnreadCount(); got != 2 {
		t.Errorf("unread after repeat = %d, want 2", got)
	}

	// Non-critical read does not touch the critical counter.
	s.MarkRead("n2")
	if got := s.CriticalCount(); got != 0 {
		t.Errorf("critical = %d, want 0", got)
	}

	s.MarkRead("ghost")
	checkCounters(t, s)
}

func TestAcknowledge(t *testing.T) {
	s := NewStore()
	s.Load(testNotifications())

	s.Acknowledge("n1")
	n, ok := s.Get("n1")
	if !ok || !n.Read {
		t.Fatal("acknowledged notification must be read")
	}
	if got := s.CriticalCount(); got != 0 {
		t.Errorf("critical = %d, want 0", got)
	}
	checkCounters(t, s)
}

func TestMarkAllRead(t *testing.T) {
	s := NewStore()
	s.Load(testNotifications())

	s.MarkAllRead()
	if s.UnreadCount() != 0 || s.CriticalCount() != 0 {
		t.Errorf("counts = %d/%d, want 0/0", s.UnreadCount(), s.CriticalCount())
	}
	if s.Len() != 4 {
		t.Errorf("len = %d, marking read must not remove anything", s.Len())
	}
	checkCounters(t, s)
}

func TestDismiss(t *testing.T) {
	s := NewStore()
	s.Load(testNotifications())

	s.Dismiss("n1")
	if _, ok := s.Get("n1"); ok {
		t.Fatal("n1 should be gone")
	}
	if s.UnreadCount() != 2 || s.CriticalCount() != 0 {
		t.Errorf("counts = %d/%d, want 2/0", s.UnreadCount(), s.CriticalCount())
	}

	// Dismissing a read notification only shrinks the list.
	s.Dismiss("n3")
	if s.UnreadCount() != 2 {
		t.Errorf("unread = %d, want 2", s.UnreadCount())
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}

	// Idempotent.
	s.Dismiss("n1")
	if s.Len() != 2 {
		t.Errorf("len after repeat = %d, want 2", s.Len())
	}
	checkCounters(t, s)
}

func TestQueryOrder(t *testing.T) {
	s := NewStore()
	s.Load(testNotifications())

	var ids []string
	for _, n := range s.Query() {
		ids = append(ids, n.ID)
	}
	// Criticality rank first, newest-first within a rank.
	want := []string{"n1", "n3", "n2", "n4"}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v, want %v", ids, want)
		}
	}
}

func TestQueryFilters(t *testing.T) {
	s := NewStore()
	s.Load(testNotifications())

	s.SetFilter(Filter{Criticalities: []message.Criticality{message.CriticalityCritical}})
	if got := len(s.Query()); got != 2 {
		t.Errorf("critical filter returned %d, want 2", got)
	}

	unread := false
	s.SetFilter(Filter{Read: &unread})
	if got := len(s.Query()); got != 3 {
		t.Errorf("unread filter returned %d, want 3", got)
	}

	s.SetFilter(Filter{Categories: []message.NotificationCategory{message.CategorySystem}})
	if got := len(s.Query()); got != 0 {
		t.Errorf("system category filter returned %d, want 0", got)
	}

	s.SetFilter(Filter{})
	if got := len(s.Query()); got != 4 {
		t.Errorf("empty filter returned %d, want 4", got)
	}
}

func TestLoadStatus(t *testing.T) {
	s := NewStore()

	s.RecordLoadError(errors.New("source down"))
	if _, err := s.LoadStatus(); err == nil {
		t.Fatal("load error should be reported")
	}

	s.Load(testNotifications())
	at, err := s.LoadStatus()
	if err != nil {
		t.Errorf("error should clear on load, got %v", err)
	}
	if at.IsZero() {
		t.Error("loadedAt should be set")
	}
}
