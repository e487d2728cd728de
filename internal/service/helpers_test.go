package service

import (
	"context"
	"sync"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

// recordingPublisher captures published websocket events
type recordingPublisher struct {
	mu     sync.Mutex
	events []websocket.Event
}

func (p *recordingPublisher) Publish(ownerID uuid.UUID, event websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// recordingNotifier captures ledger change notifications
type recordingNotifier struct {
	periods []domain.Period
	err     error
}

func (n *recordingNotifier) NotifyLedgerChanged(ctx context.Context, ownerID uuid.UUID, period domain.Period) error {
	n.periods = append(n.periods, period)
	return n.err
}

func timeParse(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
