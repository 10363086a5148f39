// Package message defines the raw message types fed into the triage
// engine: staff emails and clinical notifications, plus the closed
// enums used to classify them.
package message

import "time"

// Priority is the urgency label assigned to an email.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// priorityRank orders priorities from most to least urgent.
// Lower rank sorts first.
var priorityRank = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

// Rank returns the sort rank of the priority (critical first).
// Unknown values rank after all known ones.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

// Criticality is the urgency label assigned to a notification.
// It extends the email scale with an "info" band below "low".
type Criticality string

const (
	CriticalityCritical Criticality = "critical"
	CriticalityHigh     Criticality = "high"
	CriticalityMedium   Criticality = "medium"
	CriticalityLow      Criticality = "low"
	CriticalityInfo     Criticality = "info"
)

var criticalityRank = map[Criticality]int{
	CriticalityCritical: 0,
	CriticalityHigh:     1,
	CriticalityMedium:   2,
	CriticalityLow:      3,
	CriticalityInfo:     4,
}

// Rank returns the sort rank of the criticality (critical first).
func (c Criticality) Rank() int {
	if r, ok := criticalityRank[c]; ok {
		return r
	}
	return len(criticalityRank)
}

// Folder is a named mailbox bucket. An email may belong to several.
type Folder string

const (
	FolderInbox          Folder = "inbox"
	FolderUrgent         Folder = "urgent"
	FolderClinical       Folder = "clinical"
	FolderLabResults     Folder = "lab-results"
	FolderReferrals      Folder = "referrals"
	FolderInsurance      Folder = "insurance"
	FolderAdministrative Folder = "administrative"
)

// Folders lists every known folder in display order.
func Folders() []Folder {
	return []Folder{
		FolderInbox,
		FolderUrgent,
		FolderClinical,
		FolderLabResults,
		FolderReferrals,
		FolderInsurance,
		FolderAdministrative,
	}
}

// EmailCategory classifies an email by content.
type EmailCategory string

const (
	EmailCategoryClinicalUrgent  EmailCategory = "clinical-urgent"
	EmailCategoryClinicalRoutine EmailCategory = "clinical-routine"
	EmailCategoryLabResults      EmailCategory = "lab-results"
	EmailCategoryReferral        EmailCategory = "referral"
	EmailCategoryInsurance       EmailCategory = "insurance"
	EmailCategoryAppointment     EmailCategory = "appointment"
	EmailCategoryAdministrative  EmailCategory = "administrative"
	EmailCategoryNewsletter      EmailCategory = "newsletter"
)

// NotificationCategory classifies a notification by source and severity.
type NotificationCategory string

const (
	CategoryClinicalEmergency     NotificationCategory = "clinical-emergency"
	CategoryClinicalUrgent        NotificationCategory = "clinical-urgent"
	CategoryClinicalRoutine       NotificationCategory = "clinical-routine"
	CategoryAdministrativeUrgent  NotificationCategory = "administrative-urgent"
	CategoryAdministrativeRoutine NotificationCategory = "administrative-routine"
	CategorySystem                NotificationCategory = "system"
	CategoryCommunication         NotificationCategory = "communication"
)

// SourceType is the coarse classification of who or what produced a
// message. The same scale is used for email senders (detected from the
// address and display name) and notification sources (declared).
type SourceType string

const (
	SourcePatient   SourceType = "patient"
	SourceDoctor    SourceType = "doctor"
	SourceNurse     SourceType = "nurse"
	SourceAdmin     SourceType = "admin"
	SourceSystem    SourceType = "system"
	SourceLab       SourceType = "lab"
	SourcePharmacy  SourceType = "pharmacy"
	SourceRadiology SourceType = "radiology"
	SourceEmergency SourceType = "emergency"
	SourceExternal  SourceType = "external"
)

// Sender describes who sent an email.
type Sender struct {
	Address    string `json:"address"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Internal   bool   `json:"internal"`
	TrustScore int    `json:"trust_score"` // 0-100
}

// Email is a raw inbound email before analysis. Only the Read and
// Starred flags change after ingestion; every other field is fixed.
type Email struct {
	ID             string    `json:"id"`
	Subject        string    `json:"subject"`
	Preview        string    `json:"preview"`
	Sender         Sender    `json:"sender"`
	Timestamp      time.Time `json:"timestamp"`
	Read           bool      `json:"read"`
	Starred        bool      `json:"starred"`
	HasAttachments bool      `json:"has_attachments"`
}

// Source describes what produced a notification.
type Source struct {
	Type       SourceType `json:"type"`
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Department string     `json:"department,omitempty"`
}

// Notification is a raw inbound notification before analysis.
// Only the Read flag changes after ingestion.
type Notification struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Message            string    `json:"message"`
	Timestamp          time.Time `json:"timestamp"`
	Read               bool      `json:"read"`
	Source             Source    `json:"source"`
	RelatedPatientID   string    `json:"related_patient_id,omitempty"`
	RelatedPatientName string    `json:"related_patient_name,omitempty"`
}
