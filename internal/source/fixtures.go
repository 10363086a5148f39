package source

import (
	"context"
	"time"

	"github.com/symplify/triage/internal/message"
)

// FixtureSource serves a built-in demo data set with timestamps
// relative to the current clock. It backs the demo mode of the CLI and
// TUI, and gives tests a deterministic ingestion path when constructed
// with a fixed clock.
type FixtureSource struct {
	Now func() time.Time
}

// NewFixtureSource returns a fixture source on the wall clock.
func NewFixtureSource() *FixtureSource {
	return &FixtureSource{Now: time.Now}
}

// FetchEmails implements EmailSource.
func (f *FixtureSource) FetchEmails(ctx context.Context) ([]message.Email, error) {
	now := f.Now()
	return []message.Email{
		{
			ID:      "email-001",
			Subject: "STAT: Critical Lab Results - Potassium 7.2",
			Preview: "Immediate attention required. Patient James Wilson has critically elevated potassium...",
			Sender: message.Sender{
				Address:    "lab@hospital.org",
				Name:       "Clinical Laboratory",
				Internal:   true,
				TrustScore: 95,
			},
			Timestamp:      now.Add(-5 * time.Minute),
			Starred:        true,
			HasAttachments: true,
		},
		{
			ID:      "email-002",
			Subject: "URGENT: Pre-Authorization Denied - Patient needs surgery",
			Preview: "Insurance has denied pre-authorization for scheduled cardiac procedure. Appeal deadline...",
			Sender: message.Sender{
				Address:    "insurance@hospital.org",
				Name:       "Insurance Coordinator",
				Internal:   true,
				TrustScore: 80,
			},
			Timestamp:      now.Add(-30 * time.Minute),
			HasAttachments: true,
		},
		{
			ID:      "email-003",
			Subject: "New Referral: Cardiology Consultation",
			Preview: "New patient referral from Dr. Martinez for cardiac evaluation...",
			Sender: message.Sender{
				Address:    "referrals@clinic.org",
				Name:       "Referral Coordinator",
				Internal:   true,
				TrustScore: 75,
			},
			Timestamp: now.Add(-2 * time.Hour),
		},
		{
			ID:      "email-004",
			Subject: "Weekly Staff Newsletter",
			Preview: "This week in hospital news: New parking policy, cafeteria menu updates...",
			Sender: message.Sender{
				Address:    "newsletter@hospital.org",
				Name:       "Communications",
				Internal:   true,
				TrustScore: 60,
			},
			Timestamp: now.Add(-24 * time.Hour),
			Read:      true,
		},
	}, nil
}

// FetchNotifications implements NotificationSource.
func (f *FixtureSource) FetchNotifications(ctx context.Context) ([]message.Notification, error) {
	now := f.Now()
	return []message.Notification{
		{
			ID:        "notif-001",
			Title:     "CODE BLUE - Room 412",
			Message:   "Patient John Smith experiencing cardiac arrest. Immediate response required.",
			Timestamp: now.Add(-2 * time.Minute),
			Source: message.Source{
				Type: message.SourceNurse, ID: "nurse-001", Name: "Sarah Johnson", Department: "ICU",
			},
			RelatedPatientID:   "patient-001",
			RelatedPatientName: "John Smith",
		},
		{
			ID:        "notif-002",
			Title:     "Critical Lab Results - Potassium 6.8 mEq/L",
			Message:   "Patient Maria Garcia has critically elevated potassium. Review and treat immediately.",
			Timestamp: now.Add(-5 * time.Minute),
			Source: message.Source{
				Type: message.SourceLab, ID: "lab-001", Name: "Clinical Laboratory",
			},
			RelatedPatientID:   "patient-002",
			RelatedPatientName: "Maria Garcia",
		},
		{
			ID:        "notif-003",
			Title:     "Drug Interaction Alert",
			Message:   "Potential severe interaction detected: Warfarin + Aspirin for patient Robert Chen.",
			Timestamp: now.Add(-15 * time.Minute),
			Source: message.Source{
				Type: message.SourcePharmacy, ID: "pharm-001", Name: "Central Pharmacy",
			},
			RelatedPatientID:   "patient-003",
			RelatedPatientName: "Robert Chen",
		},
		{
			ID:        "notif-004",
			Title:     "Abnormal Lab Results",
			Message:   "Patient Emily Davis has elevated liver enzymes. AST: 156, ALT: 189. Review needed.",
			Timestamp: now.Add(-45 * time.Minute),
			Source: message.Source{
				Type: message.SourceLab, ID: "lab-001", Name: "Clinical Laboratory",
			},
			RelatedPatientID:   "patient-004",
			RelatedPatientName: "Emily Davis",
		},
		{
			ID:        "notif-005",
			Title:     "Appointment Reminder",
			Message:   "Dr. Williams has 3 upcoming appointments in the next hour.",
			Timestamp: now.Add(-time.Hour),
			Read:      true,
			Source: message.Source{
				Type: message.SourceSystem, ID: "sys-001", Name: "Scheduling System",
			},
		},
		{
			ID:        "notif-006",
			Title:     "New Message from Dr. Patel",
			Message:   "Regarding patient discharge summary for room 305.",
			Timestamp: now.Add(-90 * time.Minute),
			Source: message.Source{
				Type: message.SourceDoctor, ID: "doc-001", Name: "Dr. Patel", Department: "Internal Medicine",
			},
		},
		{
			ID:        "notif-007",
			Title:     "Staff Meeting Reminder",
			Message:   "Weekly department meeting at 2:00 PM in Conference Room A.",
			Timestamp: now.Add(-2 * time.Hour),
			Read:      true,
			Source: message.Source{
				Type: message.SourceAdmin, ID: "admin-001", Name: "HR Department",
			},
		},
		{
			ID:        "notif-008",
			Title:     "System Maintenance Notice",
			Message:   "Scheduled maintenance tonight 2-4 AM. Brief interruptions expected.",
			Timestamp: now.Add(-3 * time.Hour),
			Read:      true,
			Source: message.Source{
				Type: message.SourceSystem, ID: "sys-001", Name: "IT Department",
			},
		},
	}, nil
}
