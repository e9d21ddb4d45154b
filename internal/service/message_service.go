package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/onurcolak/blast-tracker/environments"
	"github.com/onurcolak/blast-tracker/internal/domain"
	"github.com/onurcolak/blast-tracker/pkg/fields"
	"github.com/onurcolak/blast-tracker/pkg/logger"
	"github.com/onurcolak/blast-tracker/pkg/wsapme"
)

var (
	ErrRecipientRequired = errors.New("phone number (to) is required")
	ErrMessageIDRequired = errors.New("messageId is required")
	ErrJIDRequired       = errors.New("phone number (to) or JID is required; provide \"to\", \"jid\" or \"messageData\" with recipient information")
	ErrSendRejected      = errors.New("WSAPME rejected the message")
	ErrLedgerDisabled    = errors.New("delivery ledger not configured")
	ErrCacheDisabled     = errors.New("redis client not configured")
)

// Status code the vendor's messageInfo example carries when none is known.
const defaultInfoStatus = 2

// Small internal interfaces so we can test without touching the vendor, DB or Valkey.
type vendorClient interface {
	SendMessage(ctx context.Context, req domain.SendMessageRequest) (*domain.SendMessageResult, error)
	GetMessageInfo(ctx context.Context, req domain.MessageInfoRequest) (*domain.MessageStatusResult, error)
	ListDevices(ctx context.Context) (*domain.DeviceResult, error)
	GetDeviceInfo(ctx context.Context, deviceID string) (*domain.DeviceResult, error)
}

type recipientRepository interface {
	RecordSent(ctx context.Context, sent *domain.SentMessage) error
	AdvanceStage(ctx context.Context, messageID string, stage domain.Stage, status string, at time.Time) (bool, error)
	MarkRepliedByJID(ctx context.Context, jid string, at time.Time) (int64, error)
	MarkClosed(ctx context.Context, messageID string, at time.Time) error
	FindByMessageID(ctx context.Context, messageID string) (*domain.Recipient, error)
	GetMetrics(ctx context.Context) (domain.BlastMetrics, error)
}

type messageCache interface {
	CacheSentMessage(ctx context.Context, sent *domain.SentMessage) error
	GetSentMessage(ctx context.Context, messageID string) (*domain.SentMessage, error)
	GetAllSentMessages(ctx context.Context) (map[string]*domain.SentMessage, error)
}

type options struct {
	ledger recipientRepository
	cache  messageCache
}

// Option attaches an optional backend to a service.
type Option func(*options)

func WithLedger(repo recipientRepository) Option {
	return func(o *options) { o.ledger = repo }
}

func WithCache(cache messageCache) Option {
	return func(o *options) { o.cache = cache }
}

// SendOutcome is a vendor send result plus what we keep for later checks.
type SendOutcome struct {
	Result *domain.SendMessageResult `json:"result"`
	Sent   *domain.SentMessage       `json:"sent"`
}

type MessageService struct {
	client vendorClient
	ledger recipientRepository
	cache  messageCache
	config environments.WSAPMEConfig
	now    func() time.Time
}

func NewMessageService(client vendorClient, config environments.WSAPMEConfig, opts ...Option) *MessageService {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &MessageService{
		client: client,
		ledger: o.ledger,
		cache:  o.cache,
		config: config,
		now:    time.Now,
	}
}

// SendTestMessage sends one message from the configured device. An empty
// message falls back to the configured default text.
func (s *MessageService) SendTestMessage(ctx context.Context, to, message string) (*SendOutcome, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, ErrRecipientRequired
	}
	if message == "" {
		message = s.config.DefaultMessage
	}

	result, err := s.client.SendMessage(ctx, domain.SendMessageRequest{
		Device:  s.config.DeviceID,
		To:      to,
		Message: message,
	})
	if err != nil {
		logger.Errorf("Failed to send message to %s: %v", to, err)
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	if !result.Success {
		logger.Warnf("WSAPME did not accept message to %s: %s", to, result.Message)
		return nil, fmt.Errorf("%w: %s", ErrSendRejected, result.Message)
	}

	messageData, _ := result.Data.(map[string]any)

	jid, ok := fields.FirstString(messageData, "key.remoteJid")
	if !ok {
		jid = wsapme.FormatJID(to)
	}

	sent := &domain.SentMessage{
		MessageID:   result.MessageID,
		To:          to,
		JID:         jid,
		MessageData: messageData,
		SentAt:      s.now(),
	}

	if sent.MessageID == "" {
		logger.Warnf("Message to %s accepted but no message id was returned", to)
	} else {
		s.remember(ctx, sent)
		logger.Infof("Successfully sent message to %s (messageId: %s)", to, sent.MessageID)
	}

	return &SendOutcome{Result: result, Sent: sent}, nil
}

func (s *MessageService) remember(ctx context.Context, sent *domain.SentMessage) {
	if s.ledger != nil {
		if err := s.ledger.RecordSent(ctx, sent); err != nil {
			logger.Errorf("Failed to record message %s in ledger: %v", sent.MessageID, err)
		}
	}

	if s.cache != nil {
		if err := s.cache.CacheSentMessage(ctx, sent); err != nil {
			logger.Warnf("Failed to cache message %s to Redis: %v", sent.MessageID, err)
		}
	}
}

// CheckStatus queries the vendor once. The recipient JID is taken from the
// query, then the message data, then the cached send, then the phone number.
func (s *MessageService) CheckStatus(ctx context.Context, q domain.StatusQuery) (*domain.MessageStatusResult, error) {
	if q.MessageID == "" {
		return nil, ErrMessageIDRequired
	}

	jid := q.JID
	if jid == "" {
		jid, _ = fields.FirstString(q.MessageData, "key.remoteJid")
	}

	if (jid == "" || q.MessageData == nil) && s.cache != nil {
		cached, err := s.cache.GetSentMessage(ctx, q.MessageID)
		if err != nil {
			logger.Warnf("Failed to read cached message %s: %v", q.MessageID, err)
		} else if cached != nil {
			if jid == "" {
				jid = cached.JID
			}
			if q.MessageData == nil {
				q.MessageData = cached.MessageData
			}
		}
	}

	if jid == "" && strings.TrimSpace(q.To) != "" {
		jid = wsapme.FormatJID(q.To)
	}
	if jid == "" {
		return nil, ErrJIDRequired
	}

	req := domain.MessageInfoRequest{
		IDDevice: s.config.DeviceID,
		JID:      jid,
		Messages: buildInfoMessages(q.MessageID, jid, q.MessageData, s.now()),
	}

	result, err := s.client.GetMessageInfo(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get message info: %w", err)
	}

	logger.Debugf("Status for %s: %s (delivered: %v)", q.MessageID, result.Status.Label(), result.IsDelivered)

	s.advance(ctx, q.MessageID, result)

	return result, nil
}

func (s *MessageService) advance(ctx context.Context, messageID string, result *domain.MessageStatusResult) {
	if s.ledger == nil {
		return
	}

	stage, ok := domain.StageForAck(result.Status)
	if !ok && result.IsDelivered {
		stage, ok = domain.StageReceived, true
	}
	if !ok {
		return
	}

	if _, err := s.ledger.AdvanceStage(ctx, messageID, stage, result.Status.String(), s.now()); err != nil {
		logger.Errorf("Failed to advance message %s to %s: %v", messageID, stage, err)
	}
}

// buildInfoMessages reproduces the messages object the vendor expects. The
// full send response is used when it has a key and a message body; otherwise
// a minimal structure is built from the id and JID.
func buildInfoMessages(messageID, jid string, data map[string]any, now time.Time) domain.MessageInfoMessages {
	key, hasKey := fields.Map(data, "key")
	body, hasBody := fields.Lookup(data, "message")

	if !hasKey || !hasBody {
		return domain.MessageInfoMessages{
			Key:              domain.MessageKey{RemoteJID: jid, FromMe: true, ID: messageID},
			MessageTimestamp: now.Unix(),
			PushName:         "User",
		}
	}

	msg := domain.MessageInfoMessages{
		Key:              domain.MessageKey{RemoteJID: jid, FromMe: true, ID: messageID},
		MessageTimestamp: now.Unix(),
		PushName:         "User",
		Message:          body,
	}

	if v, ok := key["remoteJid"].(string); ok && v != "" {
		msg.Key.RemoteJID = v
	}
	if v, ok := key["fromMe"].(bool); ok {
		msg.Key.FromMe = v
	}
	if v, ok := key["id"].(string); ok && v != "" {
		msg.Key.ID = v
	}

	switch ts := data["messageTimestamp"].(type) {
	case float64:
		msg.MessageTimestamp = int64(ts)
	case string:
		if n, err := strconv.ParseInt(ts, 10, 64); err == nil {
			msg.MessageTimestamp = n
		}
	}

	if v, ok := data["pushName"].(string); ok && v != "" {
		msg.PushName = v
	}
	if v, ok := data["broadcast"].(bool); ok {
		msg.Broadcast = v
	}

	status := defaultInfoStatus
	if v, ok := data["status"].(float64); ok {
		status = int(v)
	}
	msg.Status = &status

	return msg
}

func (s *MessageService) ListDevices(ctx context.Context) (*domain.DeviceResult, error) {
	return s.client.ListDevices(ctx)
}

// DeviceInfo returns info for deviceID, or for the configured device when empty.
func (s *MessageService) DeviceInfo(ctx context.Context, deviceID string) (*domain.DeviceResult, error) {
	if deviceID == "" {
		deviceID = s.config.DeviceID
	}
	return s.client.GetDeviceInfo(ctx, deviceID)
}

// BlastMetrics returns funnel counts from the ledger. The second value is
// false when placeholder numbers were served instead.
func (s *MessageService) BlastMetrics(ctx context.Context) (domain.BlastMetrics, bool) {
	if s.ledger == nil {
		return domain.PlaceholderMetrics(), false
	}

	m, err := s.ledger.GetMetrics(ctx)
	if err != nil {
		logger.Errorf("Failed to load blast metrics, serving placeholder: %v", err)
		return domain.PlaceholderMetrics(), false
	}

	return m, true
}

func (s *MessageService) CloseRecipient(ctx context.Context, messageID string) error {
	if s.ledger == nil {
		return ErrLedgerDisabled
	}
	if messageID == "" {
		return ErrMessageIDRequired
	}
	return s.ledger.MarkClosed(ctx, messageID, s.now())
}

// GetRecipient returns the ledger row for one tracked send.
func (s *MessageService) GetRecipient(ctx context.Context, messageID string) (*domain.Recipient, error) {
	if s.ledger == nil {
		return nil, ErrLedgerDisabled
	}
	if messageID == "" {
		return nil, ErrMessageIDRequired
	}
	return s.ledger.FindByMessageID(ctx, messageID)
}

func (s *MessageService) GetCachedMessages(ctx context.Context) (map[string]*domain.SentMessage, error) {
	if s.cache == nil {
		return nil, ErrCacheDisabled
	}
	return s.cache.GetAllSentMessages(ctx)
}

func (s *MessageService) LedgerEnabled() bool {
	return s.ledger != nil
}
