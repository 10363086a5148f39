package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/symplify/triage/internal/inbox"
	"github.com/symplify/triage/internal/message"
	"github.com/symplify/triage/internal/notify"
)

type stubEmails struct {
	emails []message.Email
	err    error
	calls  int
}

func (s *stubEmails) FetchEmails(ctx context.Context) ([]message.Email, error) {
	s.calls++
	return s.emails, s.err
}

type stubNotifications struct {
	notifications []message.Notification
	err           error
}

func (s *stubNotifications) FetchNotifications(ctx context.Context) ([]message.Notification, error) {
	return s.notifications, s.err
}

func newStores() (*inbox.Store, *notify.Store) {
	return inbox.NewStore(), notify.NewStore()
}

func TestRunOnceLoadsBothStores(t *testing.T) {
	emails := &stubEmails{emails: []message.Email{
		{ID: "e1", Subject: "STAT lab"},
		{ID: "e2", Subject: "hello"},
	}}
	notifications := &stubNotifications{notifications: []message.Notification{
		{ID: "n1", Title: "Code Blue", Timestamp: time.Now()},
	}}

	ib, nf := newStores()
	r := New(emails, notifications, ib, nf)

	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	if ib.Len() != 2 {
		t.Errorf("inbox len = %d, want 2", ib.Len())
	}
	if nf.Len() != 1 {
		t.Errorf("notify len = %d, want 1", nf.Len())
	}
	// Analysis runs during ingestion.
	if e, ok := ib.Get("e1"); !ok || e.Analysis.Priority == "" {
		t.Error("ingested email should carry analysis")
	}

	st := r.Status()
	if st.LastRun.IsZero() {
		t.Error("last run should be recorded")
	}
	if st.LastError != "" {
		t.Errorf("last error = %q, want none", st.LastError)
	}
}

func TestRunOnceFetchFailureKeepsSnapshot(t *testing.T) {
	emails := &stubEmails{emails: []message.Email{{ID: "e1"}}}
	notifications := &stubNotifications{}

	ib, nf := newStores()
	r := New(emails, notifications, ib, nf)
	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatal(err)
	}

	emails.err = errors.New("source down")
	if err := r.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	// Previous snapshot survives the failed refresh.
	if ib.Len() != 1 {
		t.Errorf("inbox len = %d, want previous snapshot intact", ib.Len())
	}
	if _, err := ib.LoadStatus(); err == nil {
		t.Error("store should report the load error")
	}
	if st := r.Status(); st.LastError == "" {
		t.Error("status should report the fetch error")
	}

	// A later success clears both.
	emails.err = nil
	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := ib.LoadStatus(); err != nil {
		t.Errorf("load error should clear, got %v", err)
	}
	if st := r.Status(); st.LastError != "" {
		t.Errorf("status error should clear, got %q", st.LastError)
	}
}

func TestTriggerSuppressesOverlap(t *testing.T) {
	block := make(chan struct{})
	emails := &blockingEmails{release: block}
	ib, nf := newStores()
	r := New(emails, &stubNotifications{}, ib, nf)

	if err := r.Trigger(); err != nil {
		t.Fatal(err)
	}
	// The first run is parked on the channel; a second trigger must
	// be refused rather than queued.
	if err := r.Trigger(); err == nil {
		t.Error("overlapping trigger should fail")
	}
	close(block)
	r.Stop()

	if err := r.Trigger(); err != nil {
		t.Errorf("trigger after completion should work, got %v", err)
	}
	r.Stop()
}

type blockingEmails struct {
	release chan struct{}
}

func (b *blockingEmails) FetchEmails(ctx context.Context) ([]message.Email, error) {
	<-b.release
	return nil, nil
}

func TestValidateCronExpr(t *testing.T) {
	if err := ValidateCronExpr("*/5 * * * *"); err != nil {
		t.Errorf("valid expression rejected: %v", err)
	}
	if err := ValidateCronExpr("not a cron line"); err == nil {
		t.Error("invalid expression accepted")
	}
	// Six fields (with seconds) are not part of the accepted format.
	if err := ValidateCronExpr("0 */5 * * * *"); err == nil {
		t.Error("six-field expression accepted")
	}
}

func TestScheduleRejectsBadExpr(t *testing.T) {
	ib, nf := newStores()
	r := New(&stubEmails{}, &stubNotifications{}, ib, nf)
	if err := r.Schedule("bogus"); err == nil {
		t.Error("bad schedule accepted")
	}
	if err := r.Schedule("*/10 * * * *"); err != nil {
		t.Errorf("good schedule rejected: %v", err)
	}
	if st := r.Status(); st.Schedule != "*/10 * * * *" {
		t.Errorf("schedule = %q", st.Schedule)
	}
}
