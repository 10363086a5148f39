package inbox

import (
	"testing"
	"time"

	"github.com/symplify/triage/internal/message"
	"github.com/symplify/triage/internal/triage"
)

func queryIDs(s *Store) []string {
	var ids []string
	for _, e := range s.Query() {
		ids = append(ids, e.ID)
	}
	return ids
}

func assertIDs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func queryFixture() []triage.AnalyzedEmail {
	at := func(h int) time.Time { return baseTime.Add(time.Duration(h) * time.Hour) }

	e1 := mkEmail("e1", false, message.PriorityLow, message.FolderInbox)
	e1.Timestamp = at(1)
	e1.Sender.Name = "Carol"
	e1.Subject = "flu shot reminder"

	e2 := mkEmail("e2", true, message.PriorityCritical, message.FolderInbox)
	e2.Timestamp = at(2)
	e2.Sender.Name = "Alice"
	e2.Subject = "STAT lab"

	e3 := mkEmail("e3", false, message.PriorityHigh, message.FolderInbox)
	e3.Timestamp = at(3)
	e3.Sender.Name = "Bob"
	e3.Subject = "insurance denial"
	e3.Starred = true

	e4 := mkEmail("e4", false, message.PriorityHigh, message.FolderUrgent)
	e4.Timestamp = at(4)
	e4.Sender.Name = "Dave"

	return []triage.AnalyzedEmail{e1, e2, e3, e4}
}

func TestQueryScopedToActiveFolder(t *testing.T) {
	s := NewStore()
	s.Load(queryFixture())

	// Default folder is inbox; e4 lives only in urgent.
	assertIDs(t, queryIDs(s), []string{"e2", "e3", "e1"})

	s.SetActiveFolder(message.FolderUrgent)
	assertIDs(t, queryIDs(s), []string{"e4"})

	s.SetActiveFolder(message.FolderReferrals)
	assertIDs(t, queryIDs(s), nil)
}

func TestQuerySorting(t *testing.T) {
	s := NewStore()
	s.Load(queryFixture())

	// Priority ascending: most urgent first.
	s.SetSort(SortPriority, OrderAsc)
	assertIDs(t, queryIDs(s), []string{"e2", "e3", "e1"})

	s.SetSort(SortPriority, OrderDesc)
	assertIDs(t, queryIDs(s), []string{"e1", "e3", "e2"})

	// Date ascending: newest first.
	s.SetSort(SortDate, OrderAsc)
	assertIDs(t, queryIDs(s), []string{"e3", "e2", "e1"})

	s.SetSort(SortDate, OrderDesc)
	assertIDs(t, queryIDs(s), []string{"e1", "e2", "e3"})

	s.SetSort(SortSender, OrderAsc)
	assertIDs(t, queryIDs(s), []string{"e2", "e3", "e1"}) // Alice, Bob, Carol

	s.SetSort(SortSender, OrderDesc)
	assertIDs(t, queryIDs(s), []string{"e1", "e3", "e2"})
}

func TestQueryPriorityTieBreak(t *testing.T) {
	a := mkEmail("old", false, message.PriorityHigh, message.FolderInbox)
	a.Timestamp = baseTime
	b := mkEmail("new", false, message.PriorityHigh, message.FolderInbox)
	b.Timestamp = baseTime.Add(time.Hour)

	s := NewStore()
	s.Load([]triage.AnalyzedEmail{a, b})
	assertIDs(t, queryIDs(s), []string{"new", "old"})
}

func TestQueryFilters(t *testing.T) {
	s := NewStore()
	s.Load(queryFixture())

	unread := false
	s.SetFilter(Filter{Read: &unread})
	assertIDs(t, queryIDs(s), []string{"e3", "e1"})

	read := true
	s.SetFilter(Filter{Read: &read})
	assertIDs(t, queryIDs(s), []string{"e2"})

	starred := true
	s.SetFilter(Filter{Starred: &starred})
	assertIDs(t, queryIDs(s), []string{"e3"})

	s.SetFilter(Filter{Priorities: []message.Priority{message.PriorityCritical, message.PriorityHigh}})
	assertIDs(t, queryIDs(s), []string{"e2", "e3"})

	s.SetFilter(Filter{})
	assertIDs(t, queryIDs(s), []string{"e2", "e3", "e1"})
}

func TestQuerySearch(t *testing.T) {
	s := NewStore()
	s.Load(queryFixture())

	tests := []struct {
		q    string
		want []string
	}{
		{"stat", []string{"e2"}},
		{"STAT", []string{"e2"}},      // case-insensitive
		{"alice", []string{"e2"}},     // sender name
		{"e1@clinic", []string{"e1"}}, // sender address
		{"nothing matches this", nil},
		{"", []string{"e2", "e3", "e1"}},
	}
	for _, tt := range tests {
		s.SetFilter(Filter{Search: tt.q})
		assertIDs(t, queryIDs(s), tt.want)
	}
}

func TestQueryReturnsCopies(t *testing.T) {
	s := NewStore()
	s.Load(queryFixture())

	out := s.Query()
	out[0].Subject = "mutated"
	out[0].Read = !out[0].Read

	fresh := s.Query()
	if fresh[0].Subject == "mutated" {
		t.Error("mutating the query result must not touch the store")
	}
}
