package domain

import (
	"errors"
	"time"
)

type BlastMetrics struct {
	Sent     int64 `json:"sent"`
	Received int64 `json:"received"`
	Read     int64 `json:"read"`
	Replied  int64 `json:"replied"`
	Closed   int64 `json:"closed"`
}

// PlaceholderMetrics is served when no delivery ledger is configured.
func PlaceholderMetrics() BlastMetrics {
	return BlastMetrics{
		Sent:     500,
		Received: 480,
		Read:     350,
		Replied:  120,
		Closed:   25,
	}
}

type Stage string

const (
	StageSent     Stage = "sent"
	StageReceived Stage = "received"
	StageRead     Stage = "read"
	StageReplied  Stage = "replied"
	StageClosed   Stage = "closed"
)

var stageRank = map[Stage]int{
	StageSent:     0,
	StageReceived: 1,
	StageRead:     2,
	StageReplied:  3,
	StageClosed:   4,
}

// Rank orders stages along the funnel. Unknown stages rank below sent.
func (s Stage) Rank() int {
	if r, ok := stageRank[s]; ok {
		return r
	}
	return -1
}

// StageForAck maps a named vendor acknowledgment to a funnel stage.
func StageForAck(status *AckStatus) (Stage, bool) {
	if status == nil || status.Numeric {
		return "", false
	}

	switch status.Name {
	case AckServer:
		return StageSent, true
	case AckDelivery:
		return StageReceived, true
	case AckRead:
		return StageRead, true
	default:
		return "", false
	}
}

// Recipient is one tracked send in the delivery ledger.
type Recipient struct {
	ID          int64      `db:"id" json:"id"`
	MessageID   string     `db:"message_id" json:"messageId"`
	PhoneNumber string     `db:"phone_number" json:"phoneNumber"`
	JID         string     `db:"jid" json:"jid"`
	Stage       Stage      `db:"stage" json:"stage"`
	LastStatus  *string    `db:"last_status" json:"lastStatus,omitempty"`
	SentAt      time.Time  `db:"sent_at" json:"sentAt"`
	ReceivedAt  *time.Time `db:"received_at" json:"receivedAt,omitempty"`
	ReadAt      *time.Time `db:"read_at" json:"readAt,omitempty"`
	RepliedAt   *time.Time `db:"replied_at" json:"repliedAt,omitempty"`
	ClosedAt    *time.Time `db:"closed_at" json:"closedAt,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// ErrRecipientNotFound is returned when no ledger row matches a message id.
var ErrRecipientNotFound = errors.New("recipient not found")
