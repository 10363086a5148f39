package source

import (
	"context"
	"net/mail"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jhillyerd/enmime"
	"github.com/rotisserie/eris"

	"github.com/symplify/triage/internal/message"
)

// previewRunes bounds how much body text is carried into the preview.
const previewRunes = 200

// EMLDir reads raw RFC 5322 messages (.eml files) from a directory and
// presents them as inbox emails. Files that fail to parse fail the
// whole fetch; a partially ingested batch would silently skew the
// folder counters the dashboard renders.
type EMLDir struct {
	Dir string
}

// NewEMLDir returns a source over the given directory.
func NewEMLDir(dir string) *EMLDir {
	return &EMLDir{Dir: dir}
}

// FetchEmails implements EmailSource. The file name (without
// extension) becomes the message id, so repeated fetches of the same
// directory yield stable ids.
func (s *EMLDir) FetchEmails(ctx context.Context) ([]message.Email, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, eris.Wrapf(err, "read eml directory %s", s.Dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".eml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	emails := make([]message.Email, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		email, err := s.readOne(name)
		if err != nil {
			return nil, eris.Wrapf(err, "parse %s", name)
		}
		emails = append(emails, email)
	}
	return emails, nil
}

func (s *EMLDir) readOne(name string) (message.Email, error) {
	f, err := os.Open(filepath.Join(s.Dir, name))
	if err != nil {
		return message.Email{}, err
	}
	defer f.Close()

	env, err := enmime.ReadEnvelope(f)
	if err != nil {
		return message.Email{}, err
	}

	email := message.Email{
		ID:             strings.TrimSuffix(name, filepath.Ext(name)),
		Subject:        env.GetHeader("Subject"),
		Preview:        previewOf(env.Text),
		Sender:         senderOf(env.GetHeader("From")),
		HasAttachments: len(env.Attachments) > 0,
	}

	if dateStr := env.GetHeader("Date"); dateStr != "" {
		if t, err := mail.ParseDate(dateStr); err == nil {
			email.Timestamp = t
		}
	}
	if email.Timestamp.IsZero() {
		email.Timestamp = time.Now()
	}

	return email, nil
}

// previewOf collapses the body to a single-line preview of bounded
// length.
func previewOf(body string) string {
	body = strings.Join(strings.Fields(body), " ")
	runes := []rune(body)
	if len(runes) <= previewRunes {
		return body
	}
	return string(runes[:previewRunes-3]) + "..."
}

// senderOf parses a From header into a Sender. Unparseable headers
// degrade to the raw string as the address; the scorer treats unknown
// senders as external, so nothing downstream breaks.
func senderOf(from string) message.Sender {
	addr, err := mail.ParseAddress(from)
	if err != nil {
		return message.Sender{Address: from}
	}
	return message.Sender{
		Address: addr.Address,
		Name:    addr.Name,
	}
}
