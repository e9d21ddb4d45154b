package domain

import "time"

type EventKind string

const (
	KindIncomingMessage EventKind = "incoming_message"
	KindStatusUpdate    EventKind = "status_update"
	KindUnknown         EventKind = "unknown"
)

// WebhookEvent is one received vendor callback. Events are immutable once
// stored.
type WebhookEvent struct {
	ID                  string            `json:"id"`
	Timestamp           time.Time         `json:"timestamp"`
	Payload             map[string]any    `json:"payload"`
	Headers             map[string]string `json:"headers,omitempty"`
	Type                string            `json:"type"`
	Kind                EventKind         `json:"kind"`
	MessageID           string            `json:"messageId,omitempty"`
	Status              *AckStatus        `json:"status,omitempty"`
	MessageC2STimestamp any               `json:"messageC2STimestamp,omitempty"`
	RemoteJID           string            `json:"remoteJid,omitempty"`
}
