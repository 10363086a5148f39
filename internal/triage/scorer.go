// Package triage implements the lexical triage engine: keyword scoring
// of emails and notifications, folder and category routing, and
// suggested-action derivation. Everything here is a pure function of
// its inputs; the same text and sender always produce the same result.
package triage

import (
	"math"
	"strings"
	"time"

	"github.com/symplify/triage/internal/message"
)

// EmailScore is the scorer output for an email.
type EmailScore struct {
	Priority   message.Priority
	Confidence int // 0-100
	Indicators []string
}

// NotificationScore is the scorer output for a notification.
type NotificationScore struct {
	Criticality message.Criticality
	Confidence  int // 0-100
	Keywords    []string
	TimeContext TimeContext
}

// TimeContext reports how fresh a notification is. The urgency
// multiplier is surfaced for display but deliberately not folded back
// into the criticality or confidence numbers.
type TimeContext struct {
	IsRecent          bool    `json:"is_recent"`
	MinutesAgo        int     `json:"minutes_ago"`
	UrgencyMultiplier float64 `json:"urgency_multiplier"`
}

// matchKeywords accumulates weight for every tier keyword found as a
// substring of content. A keyword appearing in more than one tier
// contributes once per tier, and the indicator list keeps duplicates.
func matchKeywords(content string, keywords []string, weight float64, indicators []string) (float64, []string) {
	var score float64
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			indicators = append(indicators, kw)
			score += weight
		}
	}
	return score, indicators
}

// DetectSenderType classifies an email sender from its address and
// display name. Checks run in order so that more specific roles win
// over generic ones; anything unrecognized is external.
func DetectSenderType(address, name string) message.SourceType {
	combined := strings.ToLower(address + " " + name)
	switch {
	case strings.Contains(combined, "lab"):
		return message.SourceLab
	case strings.Contains(combined, "pharm"):
		return message.SourcePharmacy
	case strings.Contains(combined, "radiology"), strings.Contains(combined, "imaging"):
		return message.SourceRadiology
	case strings.Contains(combined, "emergency"), strings.Contains(combined, "ed"):
		return message.SourceEmergency
	case strings.Contains(combined, "dr."), strings.Contains(combined, "md"):
		return message.SourceDoctor
	case strings.Contains(combined, "rn"), strings.Contains(combined, "nurse"):
		return message.SourceNurse
	case strings.Contains(combined, "admin"), strings.Contains(combined, "hr"):
		return message.SourceAdmin
	default:
		return message.SourceExternal
	}
}

// ScoreEmail scores subject+preview against the email keyword tiers,
// applies the sender trust modifier, and maps the result onto a
// priority band with a per-band confidence estimate. Empty text scores
// zero and lands in the low band with no indicators.
func ScoreEmail(subject, preview string, sender message.Sender) EmailScore {
	content := strings.ToLower(subject + " " + preview)
	indicators := []string{}

	var score float64
	score, indicators = matchKeywords(content, emailCriticalKeywords, emailCriticalWeight, indicators)

	var high float64
	high, indicators = matchKeywords(content, emailHighKeywords, emailHighWeight, indicators)
	score += high

	senderType := DetectSenderType(sender.Address, sender.Name)
	trust, ok := senderTrustScores[senderType]
	if !ok {
		trust = defaultTrustScore
	}
	score *= float64(trust) / 100

	var priority message.Priority
	var confidence float64
	switch {
	case score >= 70:
		priority = message.PriorityCritical
		confidence = math.Min(98, 80+score/10)
	case score >= 30:
		priority = message.PriorityHigh
		confidence = math.Min(95, 70+score/5)
	case score >= 10:
		priority = message.PriorityMedium
		confidence = math.Min(90, 60+score)
	default:
		priority = message.PriorityLow
		confidence = 75
	}

	return EmailScore{
		Priority:   priority,
		Confidence: int(math.Round(confidence)),
		Indicators: indicators,
	}
}

// ScoreNotification scores title+body against all four notification
// keyword tiers, applies the source-type modifier, and maps the result
// onto a criticality band. The time context is computed relative to
// now and reported alongside the score.
func ScoreNotification(n message.Notification, now time.Time) NotificationScore {
	content := strings.ToLower(n.Title + " " + n.Message)
	found := []string{}

	var score, tier float64
	tier, found = matchKeywords(content, notifCriticalKeywords, notifCriticalWeight, found)
	score += tier
	tier, found = matchKeywords(content, notifHighKeywords, notifHighWeight, found)
	score += tier
	tier, found = matchKeywords(content, notifMediumKeywords, notifMediumWeight, found)
	score += tier
	tier, found = matchKeywords(content, notifLowKeywords, notifLowWeight, found)
	score += tier

	modifier, ok := sourceModifiers[n.Source.Type]
	if !ok {
		modifier = defaultSourceModifier
	}
	score *= modifier

	minutesAgo := int(now.Sub(n.Timestamp).Minutes())
	urgency := 1.0
	switch {
	case minutesAgo < 5:
		urgency = 1.5
	case minutesAgo < 15:
		urgency = 1.2
	}

	var criticality message.Criticality
	var confidence float64
	switch {
	case score >= 80:
		criticality = message.CriticalityCritical
		confidence = math.Min(98, 85+(score-80)/10)
	case score >= 40:
		criticality = message.CriticalityHigh
		confidence = math.Min(95, 75+(score-40)/8)
	case score >= 15:
		criticality = message.CriticalityMedium
		confidence = math.Min(90, 65+(score-15)/5)
	case score >= 5:
		criticality = message.CriticalityLow
		confidence = math.Min(85, 55+score*2)
	default:
		criticality = message.CriticalityInfo
		confidence = 70
	}

	return NotificationScore{
		Criticality: criticality,
		Confidence:  int(math.Round(confidence)),
		Keywords:    found,
		TimeContext: TimeContext{
			IsRecent:          minutesAgo < 30,
			MinutesAgo:        minutesAgo,
			UrgencyMultiplier: urgency,
		},
	}
}
