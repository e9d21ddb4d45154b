package wsapme

import (
	"encoding/json"
	"regexp"

	"github.com/onurcolak/blast-tracker/internal/domain"
	"github.com/onurcolak/blast-tracker/pkg/fields"
)

// The vendor returns the same facts under different keys depending on the
// endpoint and API version. Each list below is the lookup order for one
// field; the first present value wins.
var (
	// Send responses: flat, wrapped in data, or a full message object under data.key.
	sendMessageIDPaths = []string{"messageId", "id", "data.id", "data.messageId", "data.key.id", "message.id"}

	// Message info responses: named acks ("DELIVERY_ACK") at any of these depths.
	statusPaths = []string{"status", "data.status", "messages.status", "data.messages.status", "data.messages.key.status"}

	// Set once the recipient's device received the message.
	c2sTimestampPaths = []string{"messageC2STimestamp", "data.messageC2STimestamp", "messages.messageC2STimestamp", "data.messages.messageC2STimestamp"}
)

// Tried in order against raw or re-encoded response text.
var messageIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"id":\s*"([^"]+)"`),
	regexp.MustCompile(`"messageId":\s*"([^"]+)"`),
	regexp.MustCompile(`(?i)message[_-]?id["\s:=]+([a-zA-Z0-9_-]+)`),
}

// ExtractMessageID scans free text for something that looks like a message id.
func ExtractMessageID(text string) (string, bool) {
	for _, pattern := range messageIDPatterns {
		if m := pattern.FindStringSubmatch(text); len(m) > 1 && m[1] != "" {
			return m[1], true
		}
	}
	return "", false
}

func decodeObject(body []byte) (map[string]any, bool) {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil || doc == nil {
		return nil, false
	}
	return doc, true
}

func payloadData(doc map[string]any) any {
	if data, ok := fields.Lookup(doc, "data"); ok {
		return data
	}
	return doc
}

func explicitSuccess(doc map[string]any) (value, set bool) {
	v, ok := doc["success"].(bool)
	return v, ok
}

func normalizeSend(doc map[string]any, ok2xx bool) *domain.SendMessageResult {
	success, set := explicitSuccess(doc)

	result := &domain.SendMessageResult{
		Success: (!set || success) && (ok2xx || (set && success)),
		Data:    payloadData(doc),
	}

	if msg, ok := doc["message"].(string); ok {
		result.Message = msg
	}

	if id, ok := fields.FirstString(doc, sendMessageIDPaths...); ok {
		result.MessageID = id
	} else if encoded, err := json.Marshal(doc); err == nil {
		result.MessageID, _ = ExtractMessageID(string(encoded))
	}

	return result
}

func normalizeStatus(doc map[string]any) *domain.MessageStatusResult {
	result := &domain.MessageStatusResult{
		Data: payloadData(doc),
	}

	for _, path := range statusPaths {
		v, ok := fields.Lookup(doc, path)
		if !ok {
			continue
		}
		if status, ok := domain.ParseAckStatus(v); ok {
			result.Status = status
			break
		}
	}

	if ts, _, ok := fields.First(doc, c2sTimestampPaths...); ok && !zeroNumber(ts) {
		result.MessageC2STimestamp = ts
	}

	result.IsDelivered = result.Status.IsTerminal() || result.MessageC2STimestamp != nil

	success, _ := explicitSuccess(doc)
	result.Success = success || result.IsDelivered

	return result
}

func normalizeDevice(doc map[string]any, ok2xx bool, endpoint string) *domain.DeviceResult {
	success, _ := explicitSuccess(doc)
	return &domain.DeviceResult{
		Success:  success || ok2xx,
		Data:     payloadData(doc),
		Endpoint: endpoint,
	}
}

// A zero timestamp carries no delivery information.
func zeroNumber(v any) bool {
	f, ok := v.(float64)
	return ok && f == 0
}
