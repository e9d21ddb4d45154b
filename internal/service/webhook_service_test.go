package service

import (
	"context"
	"testing"

	"github.com/onurcolak/blast-tracker/internal/domain"
	"github.com/onurcolak/blast-tracker/internal/store"
)

func TestIngest_StoresEveryPayload(t *testing.T) {
	s := store.NewWebhookStore(10)
	svc := NewWebhookService(s)

	svc.Ingest(context.Background(), map[string]any{"foo": "bar"}, nil)
	svc.Ingest(context.Background(), map[string]any{"status": "SERVER_ACK", "id": "m1"}, map[string]string{"X-Test": "1"})

	events := svc.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != domain.KindStatusUpdate || events[0].MessageID != "m1" {
		t.Errorf("expected newest status update first, got %+v", events[0])
	}
	if events[1].Kind != domain.KindUnknown {
		t.Errorf("expected unknown event last, got %s", events[1].Kind)
	}

	svc.Clear()
	if n := len(svc.Events()); n != 0 {
		t.Fatalf("expected no events after Clear, got %d", n)
	}
}

func TestIngest_StatusUpdateAdvancesLedger(t *testing.T) {
	ledger := &fakeLedger{}
	svc := NewWebhookService(store.NewWebhookStore(10), WithLedger(ledger))

	svc.Ingest(context.Background(), map[string]any{"ack": "DELIVERY_ACK", "key": map[string]any{"id": "m1"}}, nil)

	if len(ledger.advanced) != 1 {
		t.Fatalf("expected one ledger update, got %d", len(ledger.advanced))
	}
	if got := ledger.advanced[0]; got.messageID != "m1" || got.stage != domain.StageReceived {
		t.Errorf("unexpected ledger update %+v", got)
	}
}

func TestIngest_UnmappedStatusLeavesLedger(t *testing.T) {
	ledger := &fakeLedger{}
	svc := NewWebhookService(store.NewWebhookStore(10), WithLedger(ledger))

	svc.Ingest(context.Background(), map[string]any{"status": float64(3), "id": "m1"}, nil)
	svc.Ingest(context.Background(), map[string]any{"status": "PLAYED", "id": "m1"}, nil)
	svc.Ingest(context.Background(), map[string]any{"status": "READ_ACK"}, nil)

	if len(ledger.advanced) != 0 {
		t.Fatalf("expected no ledger updates, got %+v", ledger.advanced)
	}
}

func TestIngest_IncomingMessageMarksReplied(t *testing.T) {
	ledger := &fakeLedger{repliedCount: 1}
	svc := NewWebhookService(store.NewWebhookStore(10), WithLedger(ledger))

	event := svc.Ingest(context.Background(), map[string]any{"type": "text", "from": "+62812", "message": "yes"}, nil)

	if event.Kind != domain.KindIncomingMessage {
		t.Fatalf("expected incoming_message, got %s", event.Kind)
	}
	if len(ledger.repliedJIDs) != 1 || ledger.repliedJIDs[0] != "62812@s.whatsapp.net" {
		t.Fatalf("expected reply lookup by JID, got %v", ledger.repliedJIDs)
	}
}
