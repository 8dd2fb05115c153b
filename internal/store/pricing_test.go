package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comrent-backend/internal/model"
)

func seedTiers() []model.PricingTier {
	return []model.PricingTier{
		{Minutes: 60, Label: "1 hour", Price: 50},
		{Minutes: 30, Label: "30 minutes", Price: 30},
	}
}

func TestPricingListIsSortedByDuration(t *testing.T) {
	s := NewPricingStore(seedTiers())

	tiers := s.List()
	require.Len(t, tiers, 2)
	assert.Equal(t, 30, tiers[0].Minutes)
	assert.Equal(t, 60, tiers[1].Minutes)
}

func TestPricingLookup(t *testing.T) {
	s := NewPricingStore(seedTiers())

	tier, ok := s.Lookup(60)
	require.True(t, ok)
	assert.Equal(t, 50.0, tier.Price)

	_, ok = s.Lookup(45)
	assert.False(t, ok, "a miss is not an error")
}

func TestPricingCreate(t *testing.T) {
	s := NewPricingStore(seedTiers())

	err := s.Create(model.PricingTier{Minutes: 120, Label: "2 hours", Price: 90})
	require.NoError(t, err)
	assert.Len(t, s.List(), 3)

	err = s.Create(model.PricingTier{Minutes: 60, Label: "again", Price: 10})
	assert.ErrorIs(t, err, ErrDuplicateTier)

	err = s.Create(model.PricingTier{Minutes: 0, Label: "free", Price: 0})
	assert.ErrorIs(t, err, ErrInvalidTier)

	err = s.Create(model.PricingTier{Minutes: 15, Label: "  ", Price: 10})
	assert.ErrorIs(t, err, ErrInvalidTier)
}

func TestPricingUpdate(t *testing.T) {
	s := NewPricingStore(seedTiers())

	err := s.Update(60, model.PricingTier{Minutes: 90, Label: "1.5 hours", Price: 70})
	require.NoError(t, err)

	_, ok := s.Lookup(60)
	assert.False(t, ok)
	tier, ok := s.Lookup(90)
	require.True(t, ok)
	assert.Equal(t, 70.0, tier.Price)

	err = s.Update(999, model.PricingTier{Minutes: 240, Label: "4 hours", Price: 150})
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.Update(30, model.PricingTier{Minutes: 90, Label: "collision", Price: 1})
	assert.ErrorIs(t, err, ErrDuplicateTier)

	// Re-keying a tier to its own duration is fine.
	err = s.Update(90, model.PricingTier{Minutes: 90, Label: "1.5 hours", Price: 75})
	assert.NoError(t, err)
}

func TestPricingDelete(t *testing.T) {
	s := NewPricingStore(seedTiers())

	require.NoError(t, s.Delete(30))
	assert.Len(t, s.List(), 1)
	assert.ErrorIs(t, s.Delete(30), ErrNotFound)
}
