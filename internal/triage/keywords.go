package triage

import "github.com/symplify/triage/internal/message"

// Keyword tiers and weights for email scoring. Emails only use the top
// two tiers; the lower bands are covered by the category chain instead.
var (
	emailCriticalKeywords = []string{
		"stat", "emergency", "urgent", "critical", "immediate attention",
		"code blue", "life threatening", "adverse reaction", "anaphylaxis",
		"cardiac arrest", "stroke alert", "trauma", "sepsis", "critical lab",
	}

	emailHighKeywords = []string{
		"priority", "asap", "important", "time-sensitive", "abnormal results",
		"escalation", "concerning", "review needed", "authorization needed",
		"pre-auth", "denied", "appeal",
	}
)

const (
	emailCriticalWeight = 100
	emailHighWeight     = 40
)

// Sender trust scores by detected sender type, on a 0-100 scale.
// The score divided by 100 is the multiplier applied to the raw
// keyword score. Unrecognized senders fall back to external.
var senderTrustScores = map[message.SourceType]int{
	message.SourceLab:       95,
	message.SourcePharmacy:  90,
	message.SourceRadiology: 90,
	message.SourceEmergency: 100,
	message.SourceDoctor:    85,
	message.SourceNurse:     80,
	message.SourceAdmin:     70,
	message.SourceExternal:  50,
}

const defaultTrustScore = 50

// Keyword tiers and weights for notification scoring. Notifications
// use all four tiers and a separate threshold table; the two rule sets
// are tuned independently and are not meant to share a derivation.
var (
	notifCriticalKeywords = []string{
		"code blue", "cardiac arrest", "respiratory failure", "sepsis", "stroke",
		"anaphylaxis", "hemorrhage", "trauma", "seizure", "unresponsive",
		"critical", "emergency", "stat", "immediate", "life-threatening",
	}

	notifHighKeywords = []string{
		"urgent", "abnormal lab", "medication error", "drug interaction",
		"fall risk", "deteriorating", "concerning", "escalation",
		"priority", "asap", "time-sensitive",
	}

	notifMediumKeywords = []string{
		"follow-up", "review needed", "pending", "awaiting", "scheduled",
		"reminder", "upcoming", "attention needed",
	}

	notifLowKeywords = []string{
		"fyi", "information", "update", "completed", "processed",
		"routine", "standard", "normal",
	}
)

const (
	notifCriticalWeight = 100
	notifHighWeight     = 50
	notifMediumWeight   = 20
	notifLowWeight      = 5
)

// Source modifiers applied to the raw notification score.
// Unknown source types are left unscaled.
var sourceModifiers = map[message.SourceType]float64{
	message.SourceLab:      1.2,
	message.SourcePharmacy: 1.1,
	message.SourcePatient:  1.0,
	message.SourceDoctor:   1.0,
	message.SourceNurse:    0.9,
	message.SourceAdmin:    0.7,
	message.SourceSystem:   0.5,
}

const defaultSourceModifier = 1.0
