package services

import (
	"context"
	"sync"

	"ledgerly/internal/events"
	"ledgerly/internal/logger"
)

func init() {
	logger.Init("test")
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

// recordingWarnings captures warning tiers.
type recordingWarnings struct {
	mu    sync.Mutex
	tiers []string
}

func (r *recordingWarnings) RecordWarning(tier string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tiers = append(r.tiers, tier)
}

func strPtr(s string) *string { return &s }

const missingID = "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"
