package store

import (
	"sort"
	"strings"
	"sync"

	"comrent-backend/internal/model"
)

// PricingStore is the table of rentable durations and prices. The session
// core only reads it (to price a unit's chosen duration); the admin UI owns
// the CRUD side.
type PricingStore struct {
	mu    sync.RWMutex
	tiers []model.PricingTier
}

// NewPricingStore creates a store seeded with the given tiers.
func NewPricingStore(seed []model.PricingTier) *PricingStore {
	s := &PricingStore{tiers: make([]model.PricingTier, len(seed))}
	copy(s.tiers, seed)
	s.sortLocked()
	return s
}

func (s *PricingStore) sortLocked() {
	sort.Slice(s.tiers, func(i, j int) bool {
		return s.tiers[i].Minutes < s.tiers[j].Minutes
	})
}

// List returns all tiers ordered by duration.
func (s *PricingStore) List() []model.PricingTier {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.PricingTier, len(s.tiers))
	copy(out, s.tiers)
	return out
}

// Lookup returns the tier for the given duration, if any. A miss is not an
// error: callers degrade to an "unknown" price.
func (s *PricingStore) Lookup(minutes int) (model.PricingTier, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tiers {
		if t.Minutes == minutes {
			return t, true
		}
	}
	return model.PricingTier{}, false
}

// Create adds a tier. The duration must be unique.
func (s *PricingStore) Create(t model.PricingTier) error {
	if t.Minutes <= 0 || strings.TrimSpace(t.Label) == "" {
		return ErrInvalidTier
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.tiers {
		if existing.Minutes == t.Minutes {
			return ErrDuplicateTier
		}
	}
	s.tiers = append(s.tiers, t)
	s.sortLocked()
	return nil
}

// Update replaces the tier keyed by originalMinutes.
func (s *PricingStore) Update(originalMinutes int, t model.PricingTier) error {
	if t.Minutes <= 0 || strings.TrimSpace(t.Label) == "" {
		return ErrInvalidTier
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, existing := range s.tiers {
		if existing.Minutes == originalMinutes {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	if t.Minutes != originalMinutes {
		for _, existing := range s.tiers {
			if existing.Minutes == t.Minutes {
				return ErrDuplicateTier
			}
		}
	}
	s.tiers[idx] = t
	s.sortLocked()
	return nil
}

// Delete removes the tier with the given duration.
func (s *PricingStore) Delete(minutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tiers {
		if t.Minutes == minutes {
			s.tiers = append(s.tiers[:i], s.tiers[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
