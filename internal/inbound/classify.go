// Package inbound interprets vendor webhook callbacks. Payload shapes are not
// documented, so every field is looked up across the aliases the vendor has
// been seen to use.
package inbound

import (
	"time"

	"github.com/google/uuid"
	"github.com/onurcolak/blast-tracker/internal/domain"
	"github.com/onurcolak/blast-tracker/pkg/fields"
)

var (
	statusKeys       = []string{"status", "ack", "messageStatus"}
	senderKeys       = []string{"from", "key.remoteJid"}
	updateIDKeys     = []string{"id", "messageId", "key.id"}
	updateTimeKeys   = []string{"timestamp", "messageTimestamp", "messageC2STimestamp"}
	eventTypeKeys    = []string{"type", "event", "eventType"}
	eventIDKeys      = []string{"id", "messageId", "key.id", "data.key.id"}
	eventC2STimeKeys = []string{"messageC2STimestamp", "messageTimestamp"}
)

// Classification is what the receiver understood from one callback.
type Classification struct {
	Kind      domain.EventKind
	From      string
	Message   any
	Status    *domain.AckStatus
	MessageID string
	Timestamp any
}

// Classify decides whether a payload is an incoming message, a status update
// or something unrecognized. Incoming messages take precedence.
func Classify(payload map[string]any) Classification {
	if t, _ := payload["type"].(string); t == "text" || fields.Has(payload, "message") {
		from, _ := fields.FirstString(payload, senderKeys...)
		msg, _ := fields.Lookup(payload, "message")
		return Classification{
			Kind:    domain.KindIncomingMessage,
			From:    from,
			Message: msg,
		}
	}

	if fields.Has(payload, statusKeys...) {
		c := Classification{Kind: domain.KindStatusUpdate}
		c.Status = firstStatus(payload)
		c.MessageID, _ = fields.FirstString(payload, updateIDKeys...)
		c.Timestamp, _, _ = fields.First(payload, updateTimeKeys...)
		return c
	}

	return Classification{Kind: domain.KindUnknown}
}

// NewEvent builds the stored form of a callback.
func NewEvent(payload map[string]any, headers map[string]string, kind domain.EventKind, receivedAt time.Time) domain.WebhookEvent {
	event := domain.WebhookEvent{
		ID:        uuid.NewString(),
		Timestamp: receivedAt,
		Payload:   payload,
		Headers:   headers,
		Kind:      kind,
		Status:    firstStatus(payload),
	}

	switch {
	case fields.Has(payload, eventTypeKeys...):
		event.Type, _ = fields.FirstString(payload, eventTypeKeys...)
	case fields.Has(payload, statusKeys...):
		event.Type = string(domain.KindStatusUpdate)
	}
	if event.Type == "" {
		event.Type = string(domain.KindUnknown)
	}

	event.MessageID, _ = fields.FirstString(payload, eventIDKeys...)
	event.MessageC2STimestamp, _, _ = fields.First(payload, eventC2STimeKeys...)
	event.RemoteJID, _ = fields.FirstString(payload, "key.remoteJid")

	return event
}

func firstStatus(payload map[string]any) *domain.AckStatus {
	for _, key := range statusKeys {
		v, ok := fields.Lookup(payload, key)
		if !ok {
			continue
		}
		if status, ok := domain.ParseAckStatus(v); ok {
			return status
		}
	}
	return nil
}
