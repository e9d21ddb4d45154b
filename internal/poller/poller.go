package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/onurcolak/blast-tracker/environments"
	"github.com/onurcolak/blast-tracker/internal/domain"
	"github.com/onurcolak/blast-tracker/internal/metrics"
	"github.com/onurcolak/blast-tracker/internal/service"
	"github.com/onurcolak/blast-tracker/pkg/logger"
)

var (
	ErrAlreadyRunning = errors.New("poller is already running")
	ErrNotRunning     = errors.New("poller is not running")
	ErrNoMessageID    = errors.New("send succeeded but no message id was returned")
)

const (
	DefaultFirstCheckDelay = 3 * time.Second
	DefaultInterval        = 5 * time.Second
	DefaultMaxFailures     = 3
)

type State string

const (
	StateIdle              State = "idle"
	StateSending           State = "sending"
	StateWaitingFirstCheck State = "waiting_first_check"
	StatePolling           State = "polling"
	StateStopped           State = "stopped"
	StateExhausted         State = "exhausted"
	StateTerminal          State = "terminal"
)

// messageService is the part of service.MessageService the poller drives.
type messageService interface {
	SendTestMessage(ctx context.Context, to, message string) (*service.SendOutcome, error)
	CheckStatus(ctx context.Context, query domain.StatusQuery) (*domain.MessageStatusResult, error)
}

type TrackRequest struct {
	To      string
	Message string
}

type WatchRequest struct {
	MessageID   string
	To          string
	JID         string
	MessageData map[string]any
}

// CheckRecord is one successful status check.
type CheckRecord struct {
	At          time.Time                   `json:"at"`
	Status      *domain.AckStatus           `json:"status,omitempty"`
	StatusLabel string                      `json:"statusLabel"`
	IsDelivered bool                        `json:"isDelivered"`
	Result      *domain.MessageStatusResult `json:"result"`
}

// run is one active poll loop.
type run struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Poller follows a single sent message until the vendor reports delivery,
// the failure budget runs out, or it is stopped.
type Poller struct {
	service messageService
	config  environments.PollerConfig

	mu      sync.RWMutex
	current *run

	state               State
	messageID           string
	to                  string
	consecutiveFailures int
	checks              int64
	stopped             bool
	delivered           bool
	lastStatus          *domain.AckStatus
	lastResult          *domain.MessageStatusResult
	lastError           string
	history             []CheckRecord
	startedAt           time.Time
	lastCheckAt         time.Time
}

func NewPoller(messageService *service.MessageService, cfg environments.PollerConfig) *Poller {
	return &Poller{
		service: messageService,
		config:  withDefaults(cfg),
		state:   StateIdle,
	}
}

// withDefaults replaces settings the loop cannot run with.
func withDefaults(cfg environments.PollerConfig) environments.PollerConfig {
	if cfg.FirstCheckDelay < 0 {
		logger.Warnf("Invalid poller first check delay %v, using %v", cfg.FirstCheckDelay, DefaultFirstCheckDelay)
		cfg.FirstCheckDelay = DefaultFirstCheckDelay
	}
	if cfg.Interval <= 0 {
		logger.Warnf("Invalid poller interval %v, using %v", cfg.Interval, DefaultInterval)
		cfg.Interval = DefaultInterval
	}
	if cfg.MaxFailures < 1 {
		logger.Warnf("Invalid poller failure budget %d, using %d", cfg.MaxFailures, DefaultMaxFailures)
		cfg.MaxFailures = DefaultMaxFailures
	}
	return cfg
}

// Track sends a new message and, once the vendor returns an id, starts
// polling it. ctx bounds both the send and the loop.
func (p *Poller) Track(ctx context.Context, req TrackRequest) (*service.SendOutcome, error) {
	loopCtx, r, err := p.reserve(ctx, StateSending, "", req.To)
	if err != nil {
		return nil, err
	}

	logger.Infof("Poller sending message to %s", req.To)

	outcome, err := p.service.SendTestMessage(loopCtx, req.To, req.Message)
	if err == nil && outcome.Sent.MessageID == "" {
		err = ErrNoMessageID
	}
	if err != nil {
		p.release(r, err)
		return nil, err
	}

	sent := outcome.Sent
	p.mu.Lock()
	p.messageID = sent.MessageID
	p.mu.Unlock()

	p.start(loopCtx, r, domain.StatusQuery{
		MessageID:   sent.MessageID,
		To:          sent.To,
		JID:         sent.JID,
		MessageData: sent.MessageData,
	})

	return outcome, nil
}

// Watch polls a message that was sent earlier.
func (p *Poller) Watch(ctx context.Context, req WatchRequest) error {
	if req.MessageID == "" {
		return fmt.Errorf("messageId is required")
	}

	loopCtx, r, err := p.reserve(ctx, StateWaitingFirstCheck, req.MessageID, req.To)
	if err != nil {
		return err
	}

	p.start(loopCtx, r, domain.StatusQuery{
		MessageID:   req.MessageID,
		To:          req.To,
		JID:         req.JID,
		MessageData: req.MessageData,
	})

	return nil
}

func (p *Poller) reserve(ctx context.Context, state State, messageID, to string) (context.Context, *run, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil {
		logger.Warnf("Poller is already running (state: %s)", p.state)
		return nil, nil, ErrAlreadyRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r := &run{cancel: cancel, done: make(chan struct{})}
	p.current = r
	p.config = withDefaults(p.config)

	p.state = state
	p.messageID = messageID
	p.to = to
	p.consecutiveFailures = 0
	p.checks = 0
	p.stopped = false
	p.delivered = false
	p.lastStatus = nil
	p.lastResult = nil
	p.lastError = ""
	p.history = nil
	p.startedAt = time.Now()
	p.lastCheckAt = time.Time{}

	return loopCtx, r, nil
}

// release gives the slot back after a failed send.
func (p *Poller) release(r *run, err error) {
	p.mu.Lock()
	p.state = StateIdle
	p.lastError = err.Error()
	p.current = nil
	p.mu.Unlock()

	r.cancel()
	close(r.done)

	logger.Errorf("Poller send failed: %v", err)
}

func (p *Poller) start(ctx context.Context, r *run, query domain.StatusQuery) {
	p.mu.Lock()
	p.state = StateWaitingFirstCheck
	p.mu.Unlock()

	logger.Infof("Poller watching message %s, first check in %v", query.MessageID, p.config.FirstCheckDelay)

	go p.run(ctx, r, query)
}

func (p *Poller) run(ctx context.Context, r *run, query domain.StatusQuery) {
	defer close(r.done)
	defer r.cancel()

	final := p.loop(ctx, query)

	p.mu.Lock()
	p.state = final
	p.stopped = true
	p.delivered = final == StateTerminal
	p.current = nil
	checks := p.checks
	p.mu.Unlock()

	metrics.PollerRunsTotal.WithLabelValues(string(final)).Inc()
	logger.Infof("Poller finished for %s: %s after %d checks", query.MessageID, final, checks)
}

func (p *Poller) loop(ctx context.Context, query domain.StatusQuery) State {
	timer := time.NewTimer(p.config.FirstCheckDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return StateStopped
	}

	p.mu.Lock()
	p.state = StatePolling
	p.mu.Unlock()

	if final, done := p.check(ctx, query); done {
		return final
	}

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if final, done := p.check(ctx, query); done {
				return final
			}

		case <-ctx.Done():
			return StateStopped
		}
	}
}

// check performs one status query and reports whether the loop is over.
func (p *Poller) check(ctx context.Context, query domain.StatusQuery) (State, bool) {
	result, err := p.service.CheckStatus(ctx, query)
	if ctx.Err() != nil {
		return StateStopped, true
	}

	now := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.checks++
	p.lastCheckAt = now

	if err == nil && !result.Success {
		err = errors.New("status check returned success=false")
	}

	if err != nil {
		p.consecutiveFailures++
		p.lastError = err.Error()
		metrics.PollerChecksTotal.WithLabelValues("failed").Inc()
		logger.Warnf("Poller check failed for %s (%d/%d): %v",
			query.MessageID, p.consecutiveFailures, p.config.MaxFailures, err)

		if p.consecutiveFailures >= p.config.MaxFailures {
			return StateExhausted, true
		}
		return StatePolling, false
	}

	p.consecutiveFailures = 0
	p.lastError = ""
	p.lastStatus = result.Status
	p.lastResult = result
	p.history = append(p.history, CheckRecord{
		At:          now,
		Status:      result.Status,
		StatusLabel: result.Status.Label(),
		IsDelivered: result.IsDelivered,
		Result:      result,
	})

	if result.IsDelivered {
		metrics.PollerChecksTotal.WithLabelValues("delivered").Inc()
		return StateTerminal, true
	}

	metrics.PollerChecksTotal.WithLabelValues("pending").Inc()
	logger.Debugf("Poller check for %s: status %s", query.MessageID, result.Status.Label())
	return StatePolling, false
}

// Stop cancels the active loop and waits for it to exit.
func (p *Poller) Stop() error {
	p.mu.RLock()
	r := p.current
	p.mu.RUnlock()

	if r == nil {
		return ErrNotRunning
	}

	r.cancel()
	<-r.done

	logger.Infof("Poller stopped")
	return nil
}

func (p *Poller) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current != nil
}

func (p *Poller) GetStatus() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()

	status := Status{
		State:               p.state,
		Running:             p.current != nil,
		MessageID:           p.messageID,
		To:                  p.to,
		ConsecutiveFailures: p.consecutiveFailures,
		MaxFailures:         p.config.MaxFailures,
		Checks:              p.checks,
		Stopped:             p.stopped,
		Delivered:           p.delivered,
		LastStatus:          p.lastStatus,
		LastResult:          p.lastResult,
		LastError:           p.lastError,
		History:             append([]CheckRecord(nil), p.history...),
		StartedAt:           p.startedAt,
		LastCheckAt:         p.lastCheckAt,
	}

	if p.lastStatus != nil {
		status.LastStatusLabel = p.lastStatus.Label()
	}

	if p.state == StatePolling && !p.lastCheckAt.IsZero() {
		status.NextCheckAt = p.lastCheckAt.Add(p.config.Interval)
	}

	return status
}

type Status struct {
	State               State                       `json:"state"`
	Running             bool                        `json:"running"`
	MessageID           string                      `json:"messageId,omitempty"`
	To                  string                      `json:"to,omitempty"`
	ConsecutiveFailures int                         `json:"consecutiveFailures"`
	MaxFailures         int                         `json:"maxFailures"`
	Checks              int64                       `json:"checks"`
	Stopped             bool                        `json:"stopped"`
	Delivered           bool                        `json:"delivered"`
	LastStatus          *domain.AckStatus           `json:"lastStatus,omitempty"`
	LastStatusLabel     string                      `json:"lastStatusLabel,omitempty"`
	LastResult          *domain.MessageStatusResult `json:"lastResult,omitempty"`
	LastError           string                      `json:"lastError,omitempty"`
	History             []CheckRecord               `json:"history"`
	StartedAt           time.Time                   `json:"startedAt,omitempty"`
	LastCheckAt         time.Time                   `json:"lastCheckAt,omitempty"`
	NextCheckAt         time.Time                   `json:"nextCheckAt,omitempty"`
}
