package dashboard

import (
	"github.com/onurcolak/blast-tracker/internal/domain"
	"github.com/onurcolak/blast-tracker/internal/funnel"
	"github.com/onurcolak/blast-tracker/internal/poller"
)

type IndexData struct {
	Stages         []funnel.Stage
	Live           bool
	LedgerEnabled  bool
	Poller         poller.Status
	DefaultMessage string
}

type EventsData struct {
	Events []domain.WebhookEvent
}
