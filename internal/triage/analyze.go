package triage

import (
	"time"

	"github.com/symplify/triage/internal/message"
	"github.com/symplify/triage/internal/textutil"
)

// EmailAnalysis is the full computed analysis attached to an email.
// It is fixed at assembly time and never mutated afterwards.
type EmailAnalysis struct {
	Priority              message.Priority      `json:"priority"`
	Category              message.EmailCategory `json:"category"`
	Confidence            int                   `json:"confidence"`
	Indicators            []string              `json:"indicators"`
	EstimatedResponseTime string                `json:"estimated_response_time"`
	RequiresAction        bool                  `json:"requires_action"`
}

// AnalyzedEmail pairs a raw email with its analysis and folder
// assignment.
type AnalyzedEmail struct {
	message.Email
	Analysis EmailAnalysis    `json:"analysis"`
	Folders  []message.Folder `json:"folders"`
}

// NotificationAnalysis is the full computed analysis attached to a
// notification.
type NotificationAnalysis struct {
	Criticality      message.Criticality          `json:"criticality"`
	Category         message.NotificationCategory `json:"category"`
	Confidence       int                          `json:"confidence"`
	Keywords         []string                     `json:"keywords"`
	SuggestedActions []Action                     `json:"suggested_actions"`
	TimeContext      TimeContext                  `json:"time_context"`
	RequiresResponse bool                         `json:"requires_response"`
}

// AnalyzedNotification pairs a raw notification with its analysis.
type AnalyzedNotification struct {
	message.Notification
	Analysis NotificationAnalysis `json:"analysis"`
}

// responseTimes maps a priority onto the display estimate shown next
// to the message.
var responseTimes = map[message.Priority]string{
	message.PriorityCritical: "Immediate",
	message.PriorityHigh:     "< 2 hours",
	message.PriorityMedium:   "< 24 hours",
	message.PriorityLow:      "When available",
}

// AnalyzeEmail assembles the full analyzed record for a raw email:
// scorer, category, folder routing, response-time estimate, and the
// requires-action flag. Text is repaired to valid UTF-8 first so
// malformed batches degrade to best-effort matching instead of
// failing.
func AnalyzeEmail(e message.Email) AnalyzedEmail {
	e.Subject = textutil.EnsureUTF8(e.Subject)
	e.Preview = textutil.EnsureUTF8(e.Preview)

	score := ScoreEmail(e.Subject, e.Preview, e.Sender)
	return AnalyzedEmail{
		Email: e,
		Analysis: EmailAnalysis{
			Priority:              score.Priority,
			Category:              CategorizeEmail(e.Subject, e.Preview, score.Indicators),
			Confidence:            score.Confidence,
			Indicators:            score.Indicators,
			EstimatedResponseTime: responseTimes[score.Priority],
			RequiresAction:        score.Priority == message.PriorityCritical || score.Priority == message.PriorityHigh,
		},
		Folders: RouteEmail(e.Subject, e.Preview),
	}
}

// AnalyzeEmails analyzes a batch in input order.
func AnalyzeEmails(emails []message.Email) []AnalyzedEmail {
	out := make([]AnalyzedEmail, len(emails))
	for i, e := range emails {
		out[i] = AnalyzeEmail(e)
	}
	return out
}

// AnalyzeNotification assembles the full analyzed record for a raw
// notification relative to now.
func AnalyzeNotification(n message.Notification, now time.Time) AnalyzedNotification {
	n.Title = textutil.EnsureUTF8(n.Title)
	n.Message = textutil.EnsureUTF8(n.Message)

	score := ScoreNotification(n, now)
	return AnalyzedNotification{
		Notification: n,
		Analysis: NotificationAnalysis{
			Criticality:      score.Criticality,
			Category:         CategorizeNotification(n, score.Criticality),
			Confidence:       score.Confidence,
			Keywords:         score.Keywords,
			SuggestedActions: SuggestActions(n, score.Criticality),
			TimeContext:      score.TimeContext,
			RequiresResponse: score.Criticality == message.CriticalityCritical || score.Criticality == message.CriticalityHigh,
		},
	}
}

// AnalyzeNotifications analyzes a batch in input order.
func AnalyzeNotifications(notifications []message.Notification, now time.Time) []AnalyzedNotification {
	out := make([]AnalyzedNotification, len(notifications))
	for i, n := range notifications {
		out[i] = AnalyzeNotification(n, now)
	}
	return out
}
