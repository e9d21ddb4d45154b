package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Vendor acknowledgment names as reported by WSAPME.
const (
	AckPending  = "PENDING"
	AckServer   = "SERVER_ACK"
	AckDelivery = "DELIVERY_ACK"
	AckRead     = "READ_ACK"
)

// AckStatus is a vendor status that arrives either as a name ("DELIVERY_ACK")
// or as a numeric code (2). It marshals back to the form it was received in.
type AckStatus struct {
	Name    string
	Code    int
	Numeric bool
}

// ParseAckStatus converts a decoded JSON value into an AckStatus.
func ParseAckStatus(v any) (*AckStatus, bool) {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil, false
		}
		return &AckStatus{Name: t}, true
	case float64:
		if t != math.Trunc(t) || t < math.MinInt32 || t > math.MaxInt32 {
			return nil, false
		}
		return &AckStatus{Code: int(t), Numeric: true}, true
	case int:
		return &AckStatus{Code: t, Numeric: true}, true
	case json.Number:
		n, err := t.Int64()
		if err != nil || n < math.MinInt32 || n > math.MaxInt32 {
			return nil, false
		}
		return &AckStatus{Code: int(n), Numeric: true}, true
	default:
		return nil, false
	}
}

// IsTerminal reports whether the status confirms the recipient got the message.
// Numeric codes are never terminal: their meaning is not a verified contract.
func (s *AckStatus) IsTerminal() bool {
	if s == nil || s.Numeric {
		return false
	}
	return s.Name == AckDelivery || s.Name == AckRead
}

// Label is a human readable description for the dashboard. The numeric
// mapping is a placeholder and only used for display.
func (s *AckStatus) Label() string {
	if s == nil {
		return "No status"
	}
	if !s.Numeric {
		return s.Name
	}

	switch s.Code {
	case 0:
		return "Pending/Sent"
	case 1:
		return "Delivered/Received"
	case 2:
		return "Read"
	case 3:
		return "Replied"
	case 4:
		return "Error"
	default:
		return fmt.Sprintf("Unknown (%d)", s.Code)
	}
}

func (s *AckStatus) String() string {
	if s == nil {
		return ""
	}
	if s.Numeric {
		return fmt.Sprintf("%d", s.Code)
	}
	return s.Name
}

func (s AckStatus) MarshalJSON() ([]byte, error) {
	if s.Numeric {
		return json.Marshal(s.Code)
	}
	return json.Marshal(s.Name)
}

func (s *AckStatus) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, ok := ParseAckStatus(raw)
	if !ok {
		return fmt.Errorf("unsupported status value: %s", string(data))
	}
	*s = *parsed
	return nil
}

type SendMessageRequest struct {
	Device       string `json:"device"`
	To           string `json:"to"`
	Message      string `json:"message"`
	Priority     string `json:"priority,omitempty"`
	ExcludeGroup []int  `json:"exclude_group,omitempty"`
}

type SendMessageResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// MessageKey identifies a message on the vendor side.
type MessageKey struct {
	RemoteJID string `json:"remoteJid"`
	FromMe    bool   `json:"fromMe"`
	ID        string `json:"id"`
}

type MessageInfoMessages struct {
	Key              MessageKey `json:"key"`
	MessageTimestamp int64      `json:"messageTimestamp"`
	PushName         string     `json:"pushName"`
	Broadcast        bool       `json:"broadcast"`
	Status           *int       `json:"status,omitempty"`
	Message          any        `json:"message,omitempty"`
}

type MessageInfoRequest struct {
	IDDevice string              `json:"id_device"`
	JID      string              `json:"jid"`
	Messages MessageInfoMessages `json:"messages"`
}

type MessageStatusResult struct {
	Success             bool       `json:"success"`
	Status              *AckStatus `json:"status,omitempty"`
	MessageC2STimestamp any        `json:"messageC2STimestamp,omitempty"`
	IsDelivered         bool       `json:"isDelivered"`
	Data                any        `json:"data,omitempty"`
}

type DeviceResult struct {
	Success  bool   `json:"success"`
	Data     any    `json:"data"`
	Endpoint string `json:"endpoint"`
}

// SentMessage is what we keep about a send so its status can be checked later.
type SentMessage struct {
	MessageID   string         `json:"messageId"`
	To          string         `json:"to"`
	JID         string         `json:"jid"`
	MessageData map[string]any `json:"messageData,omitempty"`
	SentAt      time.Time      `json:"sentAt"`
}

// StatusQuery is a single status check request.
type StatusQuery struct {
	MessageID   string
	To          string
	JID         string
	MessageData map[string]any
}
