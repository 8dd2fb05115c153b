// Package session implements the rental lifecycle state machine. A unit
// moves available -> pending_payment -> pending_approval -> in_use ->
// time_up and back, with admin overrides to maintenance/unavailable from
// the states that permit them. The transition function owns every rule
// about which payload fields are required, preserved, or cleared.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"comrent-backend/internal/model"
	"comrent-backend/internal/store"
)

var (
	// ErrSameStatus is returned when the requested status equals the
	// current one. Repeating a status is always a rejected no-op, even
	// though the admin UI disables the option.
	ErrSameStatus = errors.New("unit is already in the requested status")

	// ErrInvalidStatus is returned for a status outside the enum.
	ErrInvalidStatus = errors.New("unknown status")

	// ErrIllegalTransition is returned when the transition table forbids
	// the requested move.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrMissingPayment is returned when a payment submission lacks a
	// duration or payment method.
	ErrMissingPayment = errors.New("duration and payment method are required")
)

// Request carries the actor-supplied data for a transition. Only Status is
// mandatory; the other fields matter for specific transitions.
type Request struct {
	Status        model.UnitStatus
	Duration      int // minutes
	User          string
	Email         string
	PaymentMethod string
	PaymentProof  string
}

// transitions is the allowed-move table. pending_approval may only be
// approved or rejected, and an in_use session only ends through the
// client-reported time_up signal.
var transitions = map[model.UnitStatus][]model.UnitStatus{
	model.StatusAvailable: {
		model.StatusPendingPayment, model.StatusMaintenance, model.StatusUnavailable,
	},
	model.StatusPendingPayment: {
		model.StatusPendingApproval, model.StatusAvailable,
		model.StatusMaintenance, model.StatusUnavailable,
	},
	model.StatusPendingApproval: {
		model.StatusInUse, model.StatusAvailable,
	},
	model.StatusInUse: {
		model.StatusTimeUp,
	},
	model.StatusTimeUp: {
		model.StatusPendingPayment, model.StatusAvailable,
		model.StatusMaintenance, model.StatusUnavailable,
	},
	model.StatusMaintenance: {
		model.StatusAvailable, model.StatusUnavailable,
	},
	model.StatusUnavailable: {
		model.StatusAvailable, model.StatusMaintenance,
	},
}

// CanTransition reports whether the table permits moving from one status to
// another. It does not check payload requirements.
func CanTransition(from, to model.UnitStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Apply mutates u according to the requested transition, or returns an
// error leaving u untouched by the caller's copy-before-commit discipline.
func Apply(u *model.Unit, req Request, now time.Time) error {
	to := req.Status
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(to))
	}
	if to == u.Status {
		return ErrSameStatus
	}
	if !CanTransition(u.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, u.Status, to)
	}

	if to == model.StatusPendingApproval && (req.Duration <= 0 || req.PaymentMethod == "") {
		return ErrMissingPayment
	}

	from := u.Status
	u.Status = to

	switch to {
	case model.StatusPendingPayment:
		switch {
		case from == model.StatusAvailable:
			// Reservation-on-entry claims the unit; drop anything a
			// previous cycle left behind.
			u.ClearSession()
		case u.User == "":
			// Admin reset of a unit nobody is using.
			u.ClearSession()
		}
		// Otherwise (time_up with an active user) keep the payload so the
		// admin can still invoice the customer.

	case model.StatusPendingApproval:
		u.SessionDuration = req.Duration
		u.PaymentMethod = req.PaymentMethod
		u.User = req.User
		u.Email = req.Email
		u.PaymentProof = req.PaymentProof

	case model.StatusInUse:
		t := now
		u.SessionStart = &t
		// Overrides apply only when the admin supplies them; the values
		// captured at payment time otherwise stand.
		if req.Duration > 0 {
			u.SessionDuration = req.Duration
		}
		if req.User != "" {
			u.User = req.User
		}
		if req.Email != "" {
			u.Email = req.Email
		}
		if req.PaymentMethod != "" {
			u.PaymentMethod = req.PaymentMethod
		}

	case model.StatusTimeUp:
		// The countdown is over but the customer still owes; keep the
		// payload for invoicing, drop only the start timestamp.
		u.SessionStart = nil

	case model.StatusAvailable, model.StatusMaintenance, model.StatusUnavailable:
		u.ClearSession()
	}

	return nil
}

// Machine applies transitions to registry units. Every transition is a
// single atomic read-modify-write under the registry lock.
type Machine struct {
	reg *store.Registry
	now func() time.Time
}

// NewMachine creates a machine bound to the given registry.
func NewMachine(reg *store.Registry) *Machine {
	return &Machine{reg: reg, now: time.Now}
}

// Transition moves the unit with the given id to the requested status and
// returns the updated unit. Unknown ids yield store.ErrNotFound; rejected
// transitions leave the unit unchanged.
func (m *Machine) Transition(id string, req Request) (model.Unit, error) {
	return m.reg.Update(id, func(u *model.Unit) error {
		return Apply(u, req, m.now())
	})
}

// Edit applies an admin edit: an optional rename and an optional transition
// in one atomic update. A rejected transition rolls the rename back with it;
// the unit comes out either fully updated or untouched. An empty newName
// skips the rename, an empty req.Status skips the transition.
func (m *Machine) Edit(id, newName string, req Request) (model.Unit, error) {
	return m.reg.Update(id, func(u *model.Unit) error {
		if newName != "" {
			trimmed := strings.TrimSpace(newName)
			if trimmed == "" {
				return store.ErrEmptyName
			}
			u.Name = trimmed
		}
		if req.Status != "" {
			return Apply(u, req, m.now())
		}
		return nil
	})
}
