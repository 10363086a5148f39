package triage

import "github.com/symplify/triage/internal/message"

// ActionKind distinguishes what an action does when invoked.
type ActionKind string

const (
	ActionNavigate    ActionKind = "navigate"
	ActionAcknowledge ActionKind = "acknowledge"
	ActionDismiss     ActionKind = "dismiss"
)

// ActionEmphasis is the rendering weight suggested to the presentation
// layer.
type ActionEmphasis string

const (
	EmphasisPrimary   ActionEmphasis = "primary"
	EmphasisSecondary ActionEmphasis = "secondary"
	EmphasisDanger    ActionEmphasis = "danger"
)

// Action is a suggested response to a notification.
type Action struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Kind     ActionKind     `json:"kind"`
	Target   string         `json:"target,omitempty"`
	Emphasis ActionEmphasis `json:"emphasis"`
}

// SuggestActions returns the fixed action list for a notification at
// the given criticality. Critical alerts get a respond-now navigation
// plus an acknowledge; high gets a review navigation; everything ends
// with dismiss. The order never varies.
func SuggestActions(n message.Notification, criticality message.Criticality) []Action {
	var actions []Action

	if criticality == message.CriticalityCritical {
		target := "/patients"
		if n.RelatedPatientID != "" {
			target = "/patient/" + n.RelatedPatientID
		}
		actions = append(actions,
			Action{
				ID:       "respond-now",
				Label:    "Respond Now",
				Kind:     ActionNavigate,
				Target:   target,
				Emphasis: EmphasisDanger,
			},
			Action{
				ID:       "acknowledge",
				Label:    "Acknowledge",
				Kind:     ActionAcknowledge,
				Emphasis: EmphasisPrimary,
			},
		)
	}

	if criticality == message.CriticalityHigh {
		target := "/notifications"
		if n.RelatedPatientID != "" {
			target = "/patient/" + n.RelatedPatientID
		}
		actions = append(actions, Action{
			ID:       "review",
			Label:    "Review Details",
			Kind:     ActionNavigate,
			Target:   target,
			Emphasis: EmphasisPrimary,
		})
	}

	actions = append(actions, Action{
		ID:       "dismiss",
		Label:    "Dismiss",
		Kind:     ActionDismiss,
		Emphasis: EmphasisSecondary,
	})

	return actions
}
