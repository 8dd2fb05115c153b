package store

import (
	"strconv"
	"strings"
	"sync"

	"comrent-backend/internal/model"
)

// Registry is the authoritative collection of rentable units. All reads
// return copies; all mutations happen under the registry lock, so a
// concurrent reader never observes a partially applied update.
type Registry struct {
	mu     sync.RWMutex
	units  []*model.Unit
	nextID int64
}

// NewRegistry creates a registry seeded with one available unit per name.
func NewRegistry(names ...string) *Registry {
	r := &Registry{nextID: 1}
	for _, name := range names {
		r.units = append(r.units, &model.Unit{
			ID:     strconv.FormatInt(r.nextID, 10),
			Name:   name,
			Status: model.StatusAvailable,
		})
		r.nextID++
	}
	return r
}

// List returns a snapshot of all units in creation order.
func (r *Registry) List() []model.Unit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Unit, len(r.units))
	for i, u := range r.units {
		out[i] = *u
	}
	return out
}

// Get returns the unit with the given id, or ErrNotFound.
func (r *Registry) Get(id string) (model.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.units {
		if u.ID == id {
			return *u, nil
		}
	}
	return model.Unit{}, ErrNotFound
}

// FindByName returns the first unit with the given display name.
func (r *Registry) FindByName(name string) (model.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.units {
		if u.Name == name {
			return *u, nil
		}
	}
	return model.Unit{}, ErrNotFound
}

// Create adds a new available unit. Ids are monotonic for the lifetime of
// the process and are never reused, even after a delete.
func (r *Registry) Create(name string) (model.Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Unit{}, ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u := &model.Unit{
		ID:     strconv.FormatInt(r.nextID, 10),
		Name:   name,
		Status: model.StatusAvailable,
	}
	r.nextID++
	r.units = append(r.units, u)
	return *u, nil
}

// Rename changes a unit's display name. The unit's conversation, keyed by
// the old name, is deliberately left behind.
func (r *Registry) Rename(id, newName string) (model.Unit, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return model.Unit{}, ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.units {
		if u.ID == id {
			u.Name = newName
			return *u, nil
		}
	}
	return model.Unit{}, ErrNotFound
}

// Delete permanently removes a unit and returns its id.
func (r *Registry) Delete(id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.units {
		if u.ID == id {
			r.units = append(r.units[:i], r.units[i+1:]...)
			return id, nil
		}
	}
	return "", ErrNotFound
}

// Update applies fn to the unit with the given id as a single atomic
// read-modify-write. If fn returns an error the unit is left unchanged.
func (r *Registry) Update(id string, fn func(*model.Unit) error) (model.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.units {
		if u.ID == id {
			scratch := *u
			if err := fn(&scratch); err != nil {
				return model.Unit{}, err
			}
			*u = scratch
			return scratch, nil
		}
	}
	return model.Unit{}, ErrNotFound
}
