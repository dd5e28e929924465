// Package notify hands the composed order message to the restaurant over
// WhatsApp deep links. Dispatch is best-effort: a failure here never undoes
// an order the backend already accepted.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Opener delivers a prepared deep link to its destination. The HTTP surface
// returns the link for the browser to open; server-side deployments can plug
// in an opener that calls a messaging API instead.
type Opener interface {
	Open(ctx context.Context, link string) error
}

// LogOpener records the link and does nothing else. The default opener when
// delivery is the client's job.
type LogOpener struct {
	logger *slog.Logger
}

// NewLogOpener creates an opener that only logs.
func NewLogOpener(logger *slog.Logger) *LogOpener {
	return &LogOpener{logger: logger}
}

// Open logs the link at debug level.
func (o *LogOpener) Open(ctx context.Context, link string) error {
	o.logger.DebugContext(ctx, "whatsapp link ready",
		slog.Int("link_length", len(link)),
	)
	return nil
}

// Dispatcher builds wa.me deep links and pushes them through an Opener.
type Dispatcher struct {
	host   string
	opener Opener
	logger *slog.Logger
}

// DefaultHost is the public WhatsApp click-to-chat host.
const DefaultHost = "wa.me"

// NewDispatcher creates a WhatsApp dispatcher. An empty host falls back to
// DefaultHost.
func NewDispatcher(host string, opener Opener, logger *slog.Logger) *Dispatcher {
	if host == "" {
		host = DefaultHost
	}
	return &Dispatcher{
		host:   host,
		opener: opener,
		logger: logger,
	}
}

// BuildLink returns the click-to-chat URL for the recipient and message. The
// recipient keeps digits only: wa.me rejects +, spaces, and dashes.
func (d *Dispatcher) BuildLink(recipient, message string) (string, error) {
	digits := normalizeRecipient(recipient)
	if digits == "" {
		return "", fmt.Errorf("whatsapp recipient %q has no digits", recipient)
	}
	return fmt.Sprintf("https://%s/%s?text=%s", d.host, digits, url.QueryEscape(message)), nil
}

// Dispatch builds the link and hands it to the opener. It reports whether
// delivery succeeded; the link is returned either way so the caller can
// surface it to the user.
func (d *Dispatcher) Dispatch(ctx context.Context, recipient, message string) (string, bool) {
	link, err := d.BuildLink(recipient, message)
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to build whatsapp link",
			slog.String("error", err.Error()),
		)
		return "", false
	}

	if err := d.opener.Open(ctx, link); err != nil {
		d.logger.ErrorContext(ctx, "failed to open whatsapp link",
			slog.String("error", err.Error()),
		)
		return link, false
	}

	return link, true
}

func normalizeRecipient(recipient string) string {
	var b strings.Builder
	for _, r := range recipient {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
