package poll

import (
	"comrent-backend/internal/model"
	"comrent-backend/internal/session"
	"comrent-backend/internal/store"
)

// LocalService adapts the in-process registry and state machine to the
// UnitService interface.
type LocalService struct {
	Registry *store.Registry
	Machine  *session.Machine
}

// FindByName looks a unit up by display name.
func (s LocalService) FindByName(name string) (model.Unit, error) {
	return s.Registry.FindByName(name)
}

// Transition applies a state-machine transition.
func (s LocalService) Transition(id string, req session.Request) (model.Unit, error) {
	return s.Machine.Transition(id, req)
}
