// Package poll implements the polling-driven synchronization both sides of
// the app rely on. There is no push channel: the customer and admin views
// each re-read the registry on a fixed interval and reconcile what they see.
// Poller is the shared read loop; CustomerFlow is the customer-side
// reservation/resume protocol layered on top of it.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"comrent-backend/internal/model"
)

// Source produces unit snapshots. The in-process registry satisfies it
// directly; an HTTP client would satisfy it over the wire.
type Source interface {
	Snapshot(ctx context.Context) ([]model.Unit, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]model.Unit, error)

// Snapshot calls f.
func (f SourceFunc) Snapshot(ctx context.Context) ([]model.Unit, error) {
	return f(ctx)
}

// Poller reads a Source on a fixed interval. OnSnapshot fires on every
// successful read with a changed flag so consumers can keep side effects
// idempotent; a read failure is transient by contract, so the poller keeps
// the last known snapshot, marks itself stale, and retries on the same
// interval without ever stopping.
type Poller struct {
	Source   Source
	Interval time.Duration

	// OnSnapshot receives each successful read. changed is false when the
	// snapshot is identical to the previous one.
	OnSnapshot func(units []model.Unit, changed bool)

	// OnStale, if set, is called once per failed read.
	OnStale func(err error)

	mu    sync.Mutex
	last  []model.Unit
	have  bool
	stale bool
}

// Tick performs a single read-and-reconcile pass. Exposed so tests and the
// run loop share one code path.
func (p *Poller) Tick(ctx context.Context) {
	units, err := p.Source.Snapshot(ctx)

	p.mu.Lock()
	if err != nil {
		p.stale = true
		p.mu.Unlock()
		if p.OnStale != nil {
			p.OnStale(err)
		}
		return
	}
	changed := !p.have || !equalSnapshots(p.last, units)
	p.last = units
	p.have = true
	p.stale = false
	p.mu.Unlock()

	if p.OnSnapshot != nil {
		p.OnSnapshot(units, changed)
	}
}

// Last returns the most recent successful snapshot and whether it is stale
// (the latest read attempt failed).
func (p *Poller) Last() ([]model.Unit, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]model.Unit, len(p.last))
	copy(out, p.last)
	return out, p.stale
}

// Run polls until the context is cancelled. The first read happens
// immediately so a fresh view never waits a full interval.
func (p *Poller) Run(ctx context.Context) {
	log.Info().Dur("interval", p.Interval).Msg("poller started")

	p.Tick(ctx)

	timer := time.NewTimer(p.Interval)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			p.Tick(ctx)
			timer.Reset(p.Interval)
		case <-ctx.Done():
			log.Info().Msg("poller stopped")
			return
		}
	}
}

func equalSnapshots(a, b []model.Unit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalUnit(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalUnit(a, b model.Unit) bool {
	if a.SessionStart == nil != (b.SessionStart == nil) {
		return false
	}
	if a.SessionStart != nil && !a.SessionStart.Equal(*b.SessionStart) {
		return false
	}
	a.SessionStart, b.SessionStart = nil, nil
	return a == b
}
