// Package source defines the ingestion boundary of the triage engine.
// A source returns raw messages; the engine does not care whether they
// came from built-in fixtures, a directory of .eml files, or a remote
// system, as long as they satisfy the message types.
package source

import (
	"context"

	"github.com/symplify/triage/internal/message"
)

// EmailSource produces the raw emails for a bulk load.
type EmailSource interface {
	FetchEmails(ctx context.Context) ([]message.Email, error)
}

// NotificationSource produces the raw notifications for a bulk load.
type NotificationSource interface {
	FetchNotifications(ctx context.Context) ([]message.Notification, error)
}

// NoNotifications is a NotificationSource with nothing to report. Used
// when only email sources are configured.
type NoNotifications struct{}

// FetchNotifications implements NotificationSource.
func (NoNotifications) FetchNotifications(context.Context) ([]message.Notification, error) {
	return nil, nil
}

// MultiEmail fans out to several email sources and concatenates their
// results in order. Any source error fails the whole fetch so the
// caller keeps its previous snapshot.
type MultiEmail []EmailSource

// FetchEmails implements EmailSource.
func (m MultiEmail) FetchEmails(ctx context.Context) ([]message.Email, error) {
	var all []message.Email
	for _, src := range m {
		emails, err := src.FetchEmails(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, emails...)
	}
	return all, nil
}
