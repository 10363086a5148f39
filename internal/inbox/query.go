package inbox

import (
	"sort"
	"strings"

	"github.com/symplify/triage/internal/triage"
)

// Query produces the display list for the current view: emails in the
// active folder, narrowed by the current filter, ordered by the
// current sort. The result is a copy; mutating it does not touch the
// store.
func (s *Store) Query() []triage.AnalyzedEmail {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []triage.AnalyzedEmail
	for i := range s.emails {
		e := &s.emails[i]
		if !hasFolder(e.Folders, s.activeFolder) {
			continue
		}
		if !matchesFilter(e, s.filter) {
			continue
		}
		out = append(out, *e)
	}

	sortEmails(out, s.sortKey, s.sortOrder)
	return out
}

// matchesFilter reports whether the email passes every active filter
// clause. The free-text clause is a case-insensitive substring match
// ORed across subject, preview, sender name, and sender address.
func matchesFilter(e *triage.AnalyzedEmail, f Filter) bool {
	if len(f.Priorities) > 0 {
		found := false
		for _, p := range f.Priorities {
			if e.Analysis.Priority == p {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Read != nil && e.Read != *f.Read {
		return false
	}
	if f.Starred != nil && e.Starred != *f.Starred {
		return false
	}

	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Subject), q) &&
			!strings.Contains(strings.ToLower(e.Preview), q) &&
			!strings.Contains(strings.ToLower(e.Sender.Name), q) &&
			!strings.Contains(strings.ToLower(e.Sender.Address), q) {
			return false
		}
	}

	return true
}

// sortEmails orders the list in place. The base comparisons put the
// most urgent priority, the newest timestamp, and the alphabetically
// first sender on top; descending order reverses whichever key is
// active. Priority sorting breaks ties by newest timestamp so equal
// priorities render deterministically.
func sortEmails(emails []triage.AnalyzedEmail, key SortKey, order SortOrder) {
	sort.SliceStable(emails, func(i, j int) bool {
		a, b := &emails[i], &emails[j]

		var cmp int
		switch key {
		case SortDate:
			cmp = compareTimesDesc(a, b)
		case SortSender:
			cmp = strings.Compare(a.Sender.Name, b.Sender.Name)
		default: // SortPriority
			cmp = a.Analysis.Priority.Rank() - b.Analysis.Priority.Rank()
			if cmp == 0 {
				cmp = compareTimesDesc(a, b)
			}
		}

		if order == OrderDesc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// compareTimesDesc orders newer timestamps first.
func compareTimesDesc(a, b *triage.AnalyzedEmail) int {
	switch {
	case a.Timestamp.After(b.Timestamp):
		return -1
	case b.Timestamp.After(a.Timestamp):
		return 1
	default:
		return 0
	}
}
