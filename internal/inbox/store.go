// Package inbox holds the mutable email collection and its per-folder
// counters. The counters are maintained incrementally by every
// mutation and must always agree with a full scan of the collection;
// the query layer in this package derives the display list from the
// same state.
package inbox

import (
	"sync"
	"time"

	"github.com/symplify/triage/internal/message"
	"github.com/symplify/triage/internal/triage"
)

// Counts is the per-folder tally surfaced as sidebar badges.
type Counts struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}

// SortKey selects the primary ordering of the display list.
type SortKey string

const (
	SortPriority SortKey = "priority"
	SortDate     SortKey = "date"
	SortSender   SortKey = "sender"
)

// SortOrder flips the primary ordering.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Filter narrows the display list. Zero-valued fields are inactive.
type Filter struct {
	Priorities []message.Priority
	Read       *bool
	Starred    *bool
	Search     string
}

// Store is the aggregate inbox state: analyzed emails, folder
// counters, and the current view settings. All methods are safe for
// concurrent use; each runs to completion under the store lock, so no
// caller ever observes a half-applied mutation.
//
// Mutations addressing an id that is not present are silent no-ops.
// UI events routinely race with a deletion that already happened, and
// losing that race must not be an error.
type Store struct {
	mu sync.Mutex

	emails []triage.AnalyzedEmail
	counts map[message.Folder]Counts

	activeFolder message.Folder
	selectedID   string
	filter       Filter
	sortKey      SortKey
	sortOrder    SortOrder

	loadedAt time.Time
	loadErr  error
}

// NewStore returns an empty store viewing the inbox folder, sorted by
// priority ascending (most urgent first).
func NewStore() *Store {
	return &Store{
		counts:       emptyCounts(),
		activeFolder: message.FolderInbox,
		sortKey:      SortPriority,
		sortOrder:    OrderAsc,
	}
}

func emptyCounts() map[message.Folder]Counts {
	counts := make(map[message.Folder]Counts, len(message.Folders()))
	for _, f := range message.Folders() {
		counts[f] = Counts{}
	}
	return counts
}

// recount rebuilds the counter map from the collection. Used only by
// bulk load; every other mutation updates counters incrementally.
func recount(emails []triage.AnalyzedEmail) map[message.Folder]Counts {
	counts := emptyCounts()
	for _, e := range emails {
		for _, f := range e.Folders {
			c := counts[f]
			c.Total++
			if !e.Read {
				c.Unread++
			}
			counts[f] = c
		}
	}
	return counts
}

// Load replaces the whole collection and recomputes every counter from
// scratch. The selection is kept only if the selected email survived
// the reload. A previous load error is cleared.
func (s *Store) Load(emails []triage.AnalyzedEmail) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.emails = emails
	s.counts = recount(emails)
	s.loadedAt = time.Now()
	s.loadErr = nil

	if s.selectedID != "" && s.locate(s.selectedID) < 0 {
		s.selectedID = ""
	}
}

// RecordLoadError notes a failed ingestion attempt. The previous
// snapshot stays intact; callers surface the error and retry on the
// next refresh.
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

// locate returns the index of the email with the given id, or -1.
// Caller must hold the lock.
func (s *Store) locate(id string) int {
	for i := range s.emails {
		if s.emails[i].ID == id {
			return i
		}
	}
	return -1
}

// MarkRead sets the read flag and decrements the unread counter of
// every folder the email belongs to. Already-read ids and unknown ids
// leave the store untouched.
func (s *Store) MarkRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.locate(id)
	if i < 0 || s.emails[i].Read {
		return
	}
	s.emails[i].Read = true
	s.bumpUnread(s.emails[i].Folders, -1)
}

// MarkUnread clears the read flag and increments the unread counter of
// every folder the email belongs to.
func (s *Store) MarkUnread(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.locate(id)
	if i < 0 || !s.emails[i].Read {
		return
	}
	s.emails[i].Read = false
	s.bumpUnread(s.emails[i].Folders, 1)
}

func (s *Store) bumpUnread(folders []message.Folder, delta int) {
	for _, f := range folders {
		c := s.counts[f]
		c.Unread += delta
		s.counts[f] = c
	}
}

// ToggleStar flips the starred flag. Counters are untouched.
func (s *Store) ToggleStar(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.locate(id); i >= 0 {
		s.emails[i].Starred = !s.emails[i].Starred
	}
}

// Delete removes the email and credits back every folder it belonged
// to. Deleting the current selection clears the selection.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.locate(id)
	if i < 0 {
		return
	}
	e := s.emails[i]
	for _, f := range e.Folders {
		c := s.counts[f]
		c.Total--
		if !e.Read {
			c.Unread--
		}
		s.counts[f] = c
	}
	s.emails = append(s.emails[:i], s.emails[i+1:]...)
	if s.selectedID == id {
		s.selectedID = ""
	}
}

// Archive reassigns the email to the administrative folder alone,
// moving its contribution out of the old folders' counters and into
// administrative's.
func (s *Store) Archive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.locate(id)
	if i < 0 {
		return
	}
	e := &s.emails[i]
	for _, f := range e.Folders {
		c := s.counts[f]
		c.Total--
		if !e.Read {
			c.Unread--
		}
		s.counts[f] = c
	}
	e.Folders = []message.Folder{message.FolderAdministrative}
	c := s.counts[message.FolderAdministrative]
	c.Total++
	if !e.Read {
		c.Unread++
	}
	s.counts[message.FolderAdministrative] = c
}

// MarkAllRead marks every email in the given folder read, or every
// email in the store when folder is empty. The affected unread
// counters are zeroed directly; the end state is identical to marking
// each email individually.
func (s *Store) MarkAllRead(folder message.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.emails {
		if folder != "" && !hasFolder(s.emails[i].Folders, folder) {
			continue
		}
		s.emails[i].Read = true
	}

	if folder != "" {
		c := s.counts[folder]
		c.Unread = 0
		s.counts[folder] = c
		// Emails in this folder may also live in others; those
		// counters must drop too.
		s.reconcileUnread()
		return
	}
	for f, c := range s.counts {
		c.Unread = 0
		s.counts[f] = c
	}
}

// reconcileUnread recomputes only the unread side of every counter.
// Needed after folder-scoped mark-all-read, where multi-folder emails
// change the unread tally of folders other than the target.
func (s *Store) reconcileUnread() {
	fresh := recount(s.emails)
	for f, c := range s.counts {
		c.Unread = fresh[f].Unread
		s.counts[f] = c
	}
}

func hasFolder(folders []message.Folder, f message.Folder) bool {
	for _, have := range folders {
		if have == f {
			return true
		}
	}
	return false
}

// Select records the focused email id. Empty string clears the
// selection. Unknown ids clear it too rather than pointing at nothing.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && s.locate(id) < 0 {
		id = ""
	}
	s.selectedID = id
}

// SetActiveFolder switches the folder the query layer views and drops
// the selection, which belonged to the previous folder's list.
func (s *Store) SetActiveFolder(f message.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeFolder = f
	s.selectedID = ""
}

// SetFilter replaces the current filter.
func (s *Store) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// SetSort replaces the current sort key and direction.
func (s *Store) SetSort(key SortKey, order SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortKey = key
	s.sortOrder = order
}

// CurrentFilter returns the active filter.
func (s *Store) CurrentFilter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// CurrentSort returns the active sort key and direction.
func (s *Store) CurrentSort() (SortKey, SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortKey, s.sortOrder
}

// ActiveFolder returns the folder the query layer is viewing.
func (s *Store) ActiveFolder() message.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeFolder
}

// Counts returns a copy of the folder counter map.
func (s *Store) Counts() map[message.Folder]Counts {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[message.Folder]Counts, len(s.counts))
	for f, c := range s.counts {
		out[f] = c
	}
	return out
}

// Get returns the email with the given id, if present.
func (s *Store) Get(id string) (triage.AnalyzedEmail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.locate(id); i >= 0 {
		return s.emails[i], true
	}
	return triage.AnalyzedEmail{}, false
}

// Selected returns the focused email, if any.
func (s *Store) Selected() (triage.AnalyzedEmail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectedID == "" {
		return triage.AnalyzedEmail{}, false
	}
	if i := s.locate(s.selectedID); i >= 0 {
		return s.emails[i], true
	}
	return triage.AnalyzedEmail{}, false
}

// Len returns the number of emails in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.emails)
}

// UnreadTotal counts unread emails across the whole store, independent
// of folder attribution.
func (s *Store) UnreadTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.emails {
		if !s.emails[i].Read {
			n++
		}
	}
	return n
}
