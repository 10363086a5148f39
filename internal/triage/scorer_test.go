package triage

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/symplify/triage/internal/message"
)

func TestDetectSenderType(t *testing.T) {
	tests := []struct {
		name    string
		address string
		display string
		want    message.SourceType
	}{
		{"lab address", "lab@hospital.org", "", message.SourceLab},
		{"pharmacy address", "orders@pharmacy.com", "", message.SourcePharmacy},
		{"radiology display name", "", "Radiology Dept", message.SourceRadiology},
		{"imaging display name", "", "Imaging Center", message.SourceRadiology},
		{"emergency department", "triage@emergency.hospital.org", "", message.SourceEmergency},
		{"doctor prefix", "dr.jones@clinic.org", "", message.SourceDoctor},
		{"nurse in name", "jsmith@clinic.org", "Nurse Smith", message.SourceNurse},
		{"hr address", "hr@corp.com", "", message.SourceAdmin},
		{"unrecognized", "bob@gmail.com", "Bob", message.SourceExternal},
		{"lab wins over doctor", "dr.wu@lab.hospital.org", "", message.SourceLab},
		{"empty", "", "", message.SourceExternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectSenderType(tt.address, tt.display)
			if got != tt.want {
				t.Errorf("DetectSenderType(%q, %q) = %v, want %v", tt.address, tt.display, got, tt.want)
			}
		})
	}
}

func TestScoreEmail(t *testing.T) {
	tests := []struct {
		name       string
		subject    string
		preview    string
		sender     message.Sender
		wantPri    message.Priority
		wantConf   int
		wantTokens []string
	}{
		{
			name:       "stat from lab is critical",
			subject:    "STAT lab request",
			sender:     message.Sender{Address: "lab@hospital.org", Name: "Central Lab"},
			wantPri:    message.PriorityCritical,
			wantConf:   90, // 100 * 0.95 = 95; min(98, 80+9.5)
			wantTokens: []string{"stat"},
		},
		{
			name:       "urgent from unknown sender is dampened to high",
			subject:    "urgent",
			sender:     message.Sender{Address: "someone@gmail.com"},
			wantPri:    message.PriorityHigh,
			wantConf:   80, // 100 * 0.50 = 50; min(95, 70+10)
			wantTokens: []string{"urgent"},
		},
		{
			name:       "single high keyword from external lands medium",
			subject:    "please reply asap",
			sender:     message.Sender{Address: "friend@example.com"},
			wantPri:    message.PriorityMedium,
			wantConf:   80, // 40 * 0.50 = 20; min(90, 60+20)
			wantTokens: []string{"asap"},
		},
		{
			name:       "both tiers accumulate",
			subject:    "urgent priority",
			sender:     message.Sender{Address: "dr.smith@clinic.org"},
			wantPri:    message.PriorityCritical,
			wantConf:   92, // (100+40) * 0.85 = 119; min(98, 80+11.9)
			wantTokens: []string{"urgent", "priority"},
		},
		{
			name:       "keyword match is case-insensitive",
			subject:    "ADVERSE REACTION reported",
			sender:     message.Sender{Address: "lab@hospital.org"},
			wantPri:    message.PriorityCritical,
			wantConf:   90,
			wantTokens: []string{"adverse reaction"},
		},
		{
			name:       "preview text is scored too",
			subject:    "FW: patient note",
			preview:    "needs immediate attention per the attending",
			sender:     message.Sender{Address: "lab@hospital.org"},
			wantPri:    message.PriorityCritical,
			wantConf:   90,
			wantTokens: []string{"immediate attention"},
		},
		{
			name:     "no keywords is low with fixed confidence",
			subject:  "lunch on friday",
			sender:   message.Sender{Address: "lab@hospital.org"},
			wantPri:  message.PriorityLow,
			wantConf: 75,
		},
		{
			name:     "empty text is low",
			sender:   message.Sender{Address: "lab@hospital.org"},
			wantPri:  message.PriorityLow,
			wantConf: 75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreEmail(tt.subject, tt.preview, tt.sender)
			if got.Priority != tt.wantPri {
				t.Errorf("priority = %v, want %v", got.Priority, tt.wantPri)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("confidence = %d, want %d", got.Confidence, tt.wantConf)
			}
			if got.Indicators == nil {
				t.Fatal("indicators must never be nil")
			}
			want := tt.wantTokens
			if want == nil {
				want = []string{}
			}
			if diff := cmp.Diff(want, got.Indicators); diff != "" {
				t.Errorf("indicators mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScoreEmailDeterministic(t *testing.T) {
	sender := message.Sender{Address: "lab@hospital.org"}
	first := ScoreEmail("STAT critical lab", "abnormal results", sender)
	for i := 0; i < 10; i++ {
		again := ScoreEmail("STAT critical lab", "abnormal results", sender)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestScoreNotification(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		n        message.Notification
		wantCrit message.Criticality
		wantConf int
	}{
		{
			name: "code blue from lab is critical",
			n: message.Notification{
				Title:     "Code Blue",
				Message:   "Room 204",
				Timestamp: now.Add(-2 * time.Minute),
				Source:    message.Source{Type: message.SourceLab},
			},
			wantCrit: message.CriticalityCritical,
			wantConf: 89, // 100 * 1.2 = 120; min(98, 85+4)
		},
		{
			name: "unknown source type is unscaled",
			n: message.Notification{
				Title:     "urgent",
				Timestamp: now.Add(-time.Hour),
				Source:    message.Source{Type: "robot"},
			},
			wantCrit: message.CriticalityHigh,
			wantConf: 76, // 50 * 1.0; min(95, 75+1.25)
		},
		{
			name: "system source halves the score",
			n: message.Notification{
				Title:     "Backup completed",
				Message:   "routine",
				Timestamp: now.Add(-time.Hour),
				Source:    message.Source{Type: message.SourceSystem},
			},
			wantCrit: message.CriticalityLow,
			wantConf: 65, // (5+5) * 0.5 = 5; min(85, 55+10)
		},
		{
			name: "no keywords is info",
			n: message.Notification{
				Title:     "hello",
				Timestamp: now.Add(-time.Hour),
				Source:    message.Source{Type: message.SourceDoctor},
			},
			wantCrit: message.CriticalityInfo,
			wantConf: 70,
		},
		{
			name: "admin damping drops a high alert",
			n: message.Notification{
				Title:     "urgent", // 50 * 0.7 = 35
				Timestamp: now.Add(-time.Hour),
				Source:    message.Source{Type: message.SourceAdmin},
			},
			wantCrit: message.CriticalityMedium,
			wantConf: 69, // min(90, 65+4)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreNotification(tt.n, now)
			if got.Criticality != tt.wantCrit {
				t.Errorf("criticality = %v, want %v", got.Criticality, tt.wantCrit)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("confidence = %d, want %d", got.Confidence, tt.wantConf)
			}
			if got.Keywords == nil {
				t.Fatal("keywords must never be nil")
			}
		})
	}
}

func TestScoreNotificationTimeContext(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		age         time.Duration
		wantRecent  bool
		wantMinutes int
		wantUrgency float64
	}{
		{"just now", 0, true, 0, 1.5},
		{"four minutes", 4 * time.Minute, true, 4, 1.5},
		{"five minutes drops to 1.2", 5 * time.Minute, true, 5, 1.2},
		{"fourteen minutes", 14 * time.Minute, true, 14, 1.2},
		{"fifteen minutes drops to 1.0", 15 * time.Minute, true, 15, 1.0},
		{"twenty nine minutes still recent", 29 * time.Minute, true, 29, 1.0},
		{"thirty minutes not recent", 30 * time.Minute, false, 30, 1.0},
		{"stale", 3 * time.Hour, false, 180, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := message.Notification{
				Title:     "Code Blue",
				Timestamp: now.Add(-tt.age),
				Source:    message.Source{Type: message.SourceLab},
			}
			got := ScoreNotification(n, now)
			tc := got.TimeContext
			if tc.IsRecent != tt.wantRecent {
				t.Errorf("IsRecent = %v, want %v", tc.IsRecent, tt.wantRecent)
			}
			if tc.MinutesAgo != tt.wantMinutes {
				t.Errorf("MinutesAgo = %d, want %d", tc.MinutesAgo, tt.wantMinutes)
			}
			if tc.UrgencyMultiplier != tt.wantUrgency {
				t.Errorf("UrgencyMultiplier = %v, want %v", tc.UrgencyMultiplier, tt.wantUrgency)
			}
			// The multiplier is display-only; criticality must not move with age.
			if got.Criticality != message.CriticalityCritical {
				t.Errorf("criticality = %v, want critical regardless of age", got.Criticality)
			}
		})
	}
}
