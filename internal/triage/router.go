package triage

import (
	"sort"
	"strings"

	"github.com/symplify/triage/internal/message"
)

// folderRule maps a folder to its keyword set and tie-break priority.
// Lower priority sorts first in the assigned folder list.
type folderRule struct {
	folder   message.Folder
	keywords []string
	priority int
}

// Folder routing rules for emails. A message matching several rules is
// attributed to every matched folder; downstream counts credit each
// one. The inbox rule has no keywords and only applies as fallback.
var folderRules = []folderRule{
	{message.FolderUrgent, []string{"urgent", "stat", "critical", "immediate", "emergency", "asap"}, 1},
	{message.FolderLabResults, []string{"lab", "result", "test", "specimen", "pathology", "bloodwork"}, 2},
	{message.FolderReferrals, []string{"referral", "consult", "transfer", "specialist"}, 3},
	{message.FolderInsurance, []string{"insurance", "authorization", "pre-auth", "claim", "coverage", "denied"}, 4},
	{message.FolderClinical, []string{"patient", "diagnosis", "treatment", "medication", "prescription"}, 5},
	{message.FolderAdministrative, []string{"meeting", "schedule", "policy", "training", "hr", "payroll"}, 6},
}

// RouteEmail returns the ordered folder list for an email. Every email
// gets at least one folder; with no keyword match the result is
// exactly [inbox].
func RouteEmail(subject, preview string) []message.Folder {
	content := strings.ToLower(subject + " " + preview)

	type match struct {
		folder   message.Folder
		priority int
	}
	var matched []match
	for _, rule := range folderRules {
		for _, kw := range rule.keywords {
			if strings.Contains(content, kw) {
				matched = append(matched, match{rule.folder, rule.priority})
				break
			}
		}
	}

	if len(matched) == 0 {
		return []message.Folder{message.FolderInbox}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].priority < matched[j].priority
	})

	folders := make([]message.Folder, len(matched))
	for i, m := range matched {
		folders[i] = m.folder
	}
	return folders
}

// CategorizeEmail derives the single content category for an email.
// The checks are ordered; the first hit wins. Indicator matches from
// the scorer promote otherwise-uncategorized mail to clinical-urgent.
func CategorizeEmail(subject, preview string, indicators []string) message.EmailCategory {
	content := strings.ToLower(subject + " " + preview)
	switch {
	case strings.Contains(content, "lab"), strings.Contains(content, "result"):
		return message.EmailCategoryLabResults
	case strings.Contains(content, "referral"):
		return message.EmailCategoryReferral
	case strings.Contains(content, "insurance"), strings.Contains(content, "auth"):
		return message.EmailCategoryInsurance
	case strings.Contains(content, "appointment"):
		return message.EmailCategoryAppointment
	case strings.Contains(content, "newsletter"), strings.Contains(content, "update"):
		return message.EmailCategoryNewsletter
	case len(indicators) > 0:
		return message.EmailCategoryClinicalUrgent
	default:
		return message.EmailCategoryAdministrative
	}
}

// CategorizeNotification derives exactly one category from the source
// type and computed criticality. Scheduling chatter from clinical
// sources is downgraded to administrative even at non-critical
// severity.
func CategorizeNotification(n message.Notification, criticality message.Criticality) message.NotificationCategory {
	content := strings.ToLower(n.Title + " " + n.Message)

	switch n.Source.Type {
	case message.SourceLab, message.SourcePharmacy:
		switch criticality {
		case message.CriticalityCritical:
			return message.CategoryClinicalEmergency
		case message.CriticalityHigh:
			return message.CategoryClinicalUrgent
		default:
			return message.CategoryClinicalRoutine
		}

	case message.SourcePatient, message.SourceDoctor, message.SourceNurse:
		switch criticality {
		case message.CriticalityCritical:
			return message.CategoryClinicalEmergency
		case message.CriticalityHigh:
			return message.CategoryClinicalUrgent
		}
		if strings.Contains(content, "appointment") || strings.Contains(content, "schedule") {
			return message.CategoryAdministrativeRoutine
		}
		return message.CategoryClinicalRoutine

	case message.SourceAdmin:
		if criticality == message.CriticalityHigh {
			return message.CategoryAdministrativeUrgent
		}
		return message.CategoryAdministrativeRoutine

	case message.SourceSystem:
		return message.CategorySystem

	default:
		return message.CategoryCommunication
	}
}
