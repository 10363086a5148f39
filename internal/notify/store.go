// Package notify holds the mutable notification collection and its
// aggregate counters (unread and unread-critical). It mirrors the
// inbox store's discipline: every mutation is atomic under the store
// lock, id misses are silent no-ops, and the counters always agree
// with a scan of the collection.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/symplify/triage/internal/message"
	"github.com/symplify/triage/internal/triage"
)

// Filter narrows the notification display list. Zero-valued fields are
// inactive.
type Filter struct {
	Criticalities []message.Criticality
	Categories    []message.NotificationCategory
	Read          *bool
}

// Store is the aggregate notification state.
type Store struct {
	mu sync.Mutex

	notifications []triage.AnalyzedNotification
	unread        int
	critical      int // unread criticals only

	filter Filter

	loadedAt time.Time
	loadErr  error
}

// NewStore returns an empty notification store.
func NewStore() *Store {
	return &Store{}
}

// Load replaces the collection and recomputes both counters from
// scratch. A previous load error is cleared.
func (s *Store) Load(notifications []triage.AnalyzedNotification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = notifications
	s.unread = 0
	s.critical = 0
	for i := range notifications {
		if !notifications[i].Read {
			s.unread++
			if notifications[i].Analysis.Criticality == message.CriticalityCritical {
				s.critical++
			}
		}
	}
	s.loadedAt = time.Now()
	s.loadErr = nil
}

// RecordLoadError notes a failed ingestion attempt without touching
// the current snapshot.
func (s *Store) RecordLoadError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// LoadStatus reports the last successful load time and the last load
// error, if any.
func (s *Store) LoadStatus() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadedAt, s.loadErr
}

// locate returns the index of the notification with the given id, or
// -1. Caller must hold the lock.
func (s *Store) locate(id string) int {
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			return i
		}
	}
	return -1
}

// markRead flips one notification to read and maintains both counters.
// Caller must hold the lock.
func (s *Store) markRead(i int) {
	if s.notifications[i].Read {
		return
	}
	s.notifications[i].Read = true
	s.unread--
	if s.notifications[i].Analysis.Criticality == message.CriticalityCritical {
		s.critical--
	}
}

// MarkRead marks the notification read. Already-read and unknown ids
// are no-ops.
func (s *Store) MarkRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.locate(id); i >= 0 {
		s.markRead(i)
	}
}

// Acknowledge is the action-button path for critical alerts. Counter
// effects are identical to MarkRead; the distinct name keeps the
// caller's intent visible in logs and handlers.
func (s *Store) Acknowledge(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.locate(id); i >= 0 {
		s.markRead(i)
	}
}

// MarkAllRead marks every notification read and zeroes both counters.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	s.unread = 0
	s.critical = 0
}

// Dismiss removes the notification, crediting back the counters if it
// was unread. Dismissing an id that is already gone is a no-op.
func (s *Store) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.locate(id)
	if i < 0 {
		return
	}
	if !s.notifications[i].Read {
		s.unread--
		if s.notifications[i].Analysis.Criticality == message.CriticalityCritical {
			s.critical--
		}
	}
	s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
}

// SetFilter replaces the current filter.
func (s *Store) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// UnreadCount returns the number of unread notifications.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// CriticalCount returns the number of unread critical notifications.
func (s *Store) CriticalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.critical
}

// Len returns the number of notifications in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifications)
}

// Get returns the notification with the given id, if present.
func (s *Store) Get(id string) (triage.AnalyzedNotification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.locate(id); i >= 0 {
		return s.notifications[i], true
	}
	return triage.AnalyzedNotification{}, false
}

// Query returns the filtered display list ordered by criticality
// (most severe first) with newest-first timestamps breaking ties.
func (s *Store) Query() []triage.AnalyzedNotification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []triage.AnalyzedNotification
	for i := range s.notifications {
		if matchesFilter(&s.notifications[i], s.filter) {
			out = append(out, s.notifications[i])
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		if ra, rb := a.Analysis.Criticality.Rank(), b.Analysis.Criticality.Rank(); ra != rb {
			return ra < rb
		}
		return a.Timestamp.After(b.Timestamp)
	})
	return out
}

func matchesFilter(n *triage.AnalyzedNotification, f Filter) bool {
	if len(f.Criticalities) > 0 {
		found := false
		for _, c := range f.Criticalities {
			if n.Analysis.Criticality == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if n.Analysis.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Read != nil && n.Read != *f.Read {
		return false
	}
	return true
}
