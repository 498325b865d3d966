package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const JobNotification = "notification"

// NotificationPayload describes one workflow event.
type NotificationPayload struct {
	Event      string            `json:"event"`
	Fields     map[string]string `json:"fields"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Sender delivers a plain-text message; satisfied by *infra.GuardedMailer.
type Sender interface {
	Send(to, subject, body string) error
}

// NotificationWorker mails workflow events to the procurement inbox. Without
// a mailer or recipient it only logs them.
type NotificationWorker struct {
	sender Sender
	to     string
}

func NewNotificationWorker(sender Sender, to string) *NotificationWorker {
	return &NotificationWorker{sender: sender, to: to}
}

func (w *NotificationWorker) Process(_ context.Context, raw json.RawMessage) error {
	var p NotificationPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		// Retrying will not fix a bad payload.
		log.Error().Err(err).Msg("notification_worker: invalid payload")
		return nil
	}

	if w.sender == nil || w.to == "" {
		log.Info().Str("event", p.Event).Interface("fields", p.Fields).Msg("notification_worker: mail disabled, event logged")
		return nil
	}

	subject, body := render(p)
	if err := w.sender.Send(w.to, subject, body); err != nil {
		return fmt.Errorf("notify %s: %w", p.Event, err)
	}
	log.Info().Str("event", p.Event).Str("to", w.to).Msg("notification_worker: email sent")
	return nil
}

func render(p NotificationPayload) (subject, body string) {
	subject = "[SupplyEase] " + p.Event

	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "Event: %s\n", p.Event)
	if !p.OccurredAt.IsZero() {
		fmt.Fprintf(&b, "At: %s\n", p.OccurredAt.Format(time.RFC3339))
	}
	b.WriteString("\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, p.Fields[k])
	}
	return subject, b.String()
}
