package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comrent-backend/internal/model"
)

func TestNewRegistrySeedsAvailableUnits(t *testing.T) {
	r := NewRegistry("PC-01", "PC-02", "PC-03")

	units := r.List()
	require.Len(t, units, 3)
	for i, u := range units {
		assert.Equal(t, model.StatusAvailable, u.Status)
		assert.Equal(t, "PC-0"+string(rune('1'+i)), u.Name)
	}
	assert.Equal(t, "1", units[0].ID)
	assert.Equal(t, "3", units[2].ID)
}

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()

	u, err := r.Create("  PC-09  ")
	require.NoError(t, err)
	assert.Equal(t, "PC-09", u.Name, "names are trimmed")
	assert.Equal(t, model.StatusAvailable, u.Status)

	_, err = r.Create("   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestRegistryIDsAreNeverReused(t *testing.T) {
	r := NewRegistry("PC-01")

	u2, err := r.Create("PC-02")
	require.NoError(t, err)
	assert.Equal(t, "2", u2.ID)

	_, err = r.Delete(u2.ID)
	require.NoError(t, err)

	u3, err := r.Create("PC-03")
	require.NoError(t, err)
	assert.Equal(t, "3", u3.ID, "a deleted id must not come back")
}

func TestRegistryGetAndFindByName(t *testing.T) {
	r := NewRegistry("PC-01", "PC-02")

	u, err := r.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "PC-02", u.Name)

	_, err = r.Get("42")
	assert.ErrorIs(t, err, ErrNotFound)

	u, err = r.FindByName("PC-01")
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)

	_, err = r.FindByName("PC-99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryRename(t *testing.T) {
	r := NewRegistry("PC-01")

	u, err := r.Rename("1", "Gaming-Rig")
	require.NoError(t, err)
	assert.Equal(t, "Gaming-Rig", u.Name)

	got, err := r.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Gaming-Rig", got.Name)

	_, err = r.Rename("1", "  ")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = r.Rename("99", "Whatever")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryDelete(t *testing.T) {
	r := NewRegistry("PC-01", "PC-02")

	id, err := r.Delete("1")
	require.NoError(t, err)
	assert.Equal(t, "1", id)
	assert.Len(t, r.List(), 1)

	_, err = r.Delete("1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryUpdateIsAtomic(t *testing.T) {
	r := NewRegistry("PC-01")

	updated, err := r.Update("1", func(u *model.Unit) error {
		u.User = "alice"
		u.Status = model.StatusInUse
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.User)

	got, _ := r.Get("1")
	assert.Equal(t, model.StatusInUse, got.Status)
}

func TestRegistryUpdateErrorLeavesUnitUnchanged(t *testing.T) {
	r := NewRegistry("PC-01")

	_, err := r.Update("1", func(u *model.Unit) error {
		u.User = "half-written"
		return ErrEmptyName
	})
	require.ErrorIs(t, err, ErrEmptyName)

	got, _ := r.Get("1")
	assert.Empty(t, got.User, "a failed update must not leak partial writes")
}

func TestRegistryListReturnsCopies(t *testing.T) {
	r := NewRegistry("PC-01")

	units := r.List()
	units[0].Name = "mutated"

	got, _ := r.Get("1")
	assert.Equal(t, "PC-01", got.Name)
}
