// Package refresh drives periodic re-ingestion. A cron-scheduled job
// fetches raw messages from the configured sources, analyzes them, and
// bulk-loads the stores. A failed fetch leaves the previous snapshot
// in place and is surfaced through Status; overlapping runs are
// suppressed rather than queued, and when repeated loads do race the
// last one to complete wins.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/symplify/triage/internal/inbox"
	"github.com/symplify/triage/internal/notify"
	"github.com/symplify/triage/internal/source"
	"github.com/symplify/triage/internal/triage"
)

// Status reports the refresher's recent history for the API and TUI.
type Status struct {
	Running   bool      `json:"running"`
	Schedule  string    `json:"schedule,omitempty"`
	LastRun   time.Time `json:"last_run,omitzero"`
	NextRun   time.Time `json:"next_run,omitzero"`
	LastError string    `json:"last_error,omitempty"`
}

// Refresher owns the ingestion loop feeding the two stores.
type Refresher struct {
	emails        source.EmailSource
	notifications source.NotificationSource
	inbox         *inbox.Store
	notify        *notify.Store
	logger        *slog.Logger

	cron    *cron.Cron
	entryID cron.EntryID

	mu       sync.Mutex
	schedule string
	running  bool
	lastRun  time.Time
	lastErr  error

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a refresher over the given sources and stores.
func New(emails source.EmailSource, notifications source.NotificationSource, ib *inbox.Store, nf *notify.Store) *Refresher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Refresher{
		emails:        emails,
		notifications: notifications,
		inbox:         ib,
		notify:        nf,
		logger:        slog.Default(),
		cron: cron.New(cron.WithParser(cron.NewParser(
			cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
		))),
		ctx:    ctx,
		cancel: cancel,
	}
}

// WithLogger sets the logger for the refresher.
func (r *Refresher) WithLogger(logger *slog.Logger) *Refresher {
	r.logger = logger
	return r
}

// RunOnce fetches and loads both stores, returning the first fetch
// error. Email and notification ingestion run concurrently; the store
// replacements themselves are single atomic steps.
func (r *Refresher) RunOnce(ctx context.Context) error {
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := r.emails.FetchEmails(gctx)
		if err != nil {
			r.inbox.RecordLoadError(err)
			return fmt.Errorf("fetch emails: %w", err)
		}
		r.inbox.Load(triage.AnalyzeEmails(raw))
		return nil
	})
	g.Go(func() error {
		raw, err := r.notifications.FetchNotifications(gctx)
		if err != nil {
			r.notify.RecordLoadError(err)
			return fmt.Errorf("fetch notifications: %w", err)
		}
		r.notify.Load(triage.AnalyzeNotifications(raw, time.Now()))
		return nil
	})
	err := g.Wait()

	r.mu.Lock()
	r.lastErr = err
	if err == nil {
		r.lastRun = time.Now()
	}
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("refresh failed", "duration", time.Since(start), "error", err)
		return err
	}
	r.logger.Info("refresh completed",
		"duration", time.Since(start),
		"emails", r.inbox.Len(),
		"notifications", r.notify.Len())
	return nil
}

// Schedule registers the cron expression for periodic refreshes,
// replacing any previous schedule. Returns an error if the expression
// does not parse.
func (r *Refresher) Schedule(cronExpr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entryID != 0 {
		r.cron.Remove(r.entryID)
		r.entryID = 0
	}

	entryID, err := r.cron.AddFunc(cronExpr, func() {
		r.mu.Lock()
		if r.running {
			r.mu.Unlock()
			return
		}
		r.running = true
		r.wg.Add(1)
		r.mu.Unlock()
		r.run()
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}

	r.entryID = entryID
	r.schedule = cronExpr
	r.logger.Info("scheduled refresh",
		"schedule", cronExpr,
		"next_run", r.cron.Entry(entryID).Next)
	return nil
}

// Trigger runs a refresh outside the schedule. Returns an error if one
// is already in flight.
func (r *Refresher) Trigger() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("refresh already running")
	}
	r.running = true
	r.wg.Add(1)
	go r.run()
	return nil
}

// run executes one refresh. The caller must have set running and
// incremented the wait group.
func (r *Refresher) run() {
	defer r.wg.Done()
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()
	// Errors are recorded in Status and on the stores; nothing to do
	// here but wait for the next tick.
	_ = r.RunOnce(r.ctx)
}

// Start begins executing the schedule.
func (r *Refresher) Start() {
	r.cron.Start()
	r.logger.Info("refresher started")
}

// Stop stops scheduling further refreshes and waits for an in-flight
// run to finish. A single load is never cancelled mid-flight.
func (r *Refresher) Stop() {
	cronCtx := r.cron.Stop()
	r.cancel()
	<-cronCtx.Done()
	r.wg.Wait()
	r.logger.Info("refresher stopped")
}

// Status reports the current refresh state.
func (r *Refresher) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := Status{
		Running:  r.running,
		Schedule: r.schedule,
		LastRun:  r.lastRun,
	}
	if r.entryID != 0 {
		st.NextRun = r.cron.Entry(r.entryID).Next
	}
	if r.lastErr != nil {
		st.LastError = r.lastErr.Error()
	}
	return st
}

// ValidateCronExpr validates a cron expression without scheduling
// anything.
func ValidateCronExpr(expr string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(expr); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}
