package service

import (
	"context"
	"time"

	"github.com/onurcolak/blast-tracker/internal/domain"
	"github.com/onurcolak/blast-tracker/internal/inbound"
	"github.com/onurcolak/blast-tracker/internal/metrics"
	"github.com/onurcolak/blast-tracker/pkg/logger"
	"github.com/onurcolak/blast-tracker/pkg/wsapme"
)

type eventStore interface {
	Append(event domain.WebhookEvent)
	List() []domain.WebhookEvent
	Clear()
	Count() int
}

type WebhookService struct {
	store  eventStore
	ledger recipientRepository
	now    func() time.Time
}

func NewWebhookService(store eventStore, opts ...Option) *WebhookService {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &WebhookService{
		store:  store,
		ledger: o.ledger,
		now:    time.Now,
	}
}

// Ingest records one vendor callback and applies it to the ledger. It never
// fails: ledger problems are logged and the event is stored regardless.
func (s *WebhookService) Ingest(ctx context.Context, payload map[string]any, headers map[string]string) domain.WebhookEvent {
	receivedAt := s.now()

	c := inbound.Classify(payload)
	event := inbound.NewEvent(payload, headers, c.Kind, receivedAt)

	s.store.Append(event)
	metrics.WebhookEventsTotal.WithLabelValues(string(c.Kind)).Inc()
	metrics.WebhookStoreSize.Set(float64(s.store.Count()))

	switch c.Kind {
	case domain.KindIncomingMessage:
		logger.Infof("Webhook incoming message from %s", c.From)
		s.markReplied(ctx, c.From, receivedAt)

	case domain.KindStatusUpdate:
		logger.Infof("Webhook status update: status=%s messageId=%s timestamp=%v",
			c.Status.String(), c.MessageID, c.Timestamp)
		s.advance(ctx, c, receivedAt)

	default:
		logger.Warnf("Webhook with unknown event type (id: %s)", event.ID)
	}

	return event
}

func (s *WebhookService) advance(ctx context.Context, c inbound.Classification, at time.Time) {
	if s.ledger == nil || c.MessageID == "" {
		return
	}

	stage, ok := domain.StageForAck(c.Status)
	if !ok {
		return
	}

	advanced, err := s.ledger.AdvanceStage(ctx, c.MessageID, stage, c.Status.String(), at)
	if err != nil {
		logger.Errorf("Failed to apply webhook status for %s: %v", c.MessageID, err)
		return
	}
	if advanced {
		logger.Debugf("Recipient %s moved to %s", c.MessageID, stage)
	}
}

func (s *WebhookService) markReplied(ctx context.Context, from string, at time.Time) {
	if s.ledger == nil || from == "" {
		return
	}

	n, err := s.ledger.MarkRepliedByJID(ctx, wsapme.FormatJID(from), at)
	if err != nil {
		logger.Errorf("Failed to mark replies from %s: %v", from, err)
		return
	}
	if n > 0 {
		logger.Infof("Marked %d recipient(s) replied for %s", n, from)
	}
}

func (s *WebhookService) Events() []domain.WebhookEvent {
	return s.store.List()
}

func (s *WebhookService) Clear() {
	s.store.Clear()
	metrics.WebhookStoreSize.Set(0)
}
