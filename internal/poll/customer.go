package poll

import (
	"errors"
	"sync"

	"comrent-backend/internal/model"
	"comrent-backend/internal/session"
)

// Step is where the customer view stands in the rental flow.
type Step int

const (
	// StepSelection: the unit is reserved and the customer is picking a
	// duration and payment method.
	StepSelection Step = iota
	// StepPendingApproval: payment submitted, waiting for the admin.
	StepPendingApproval
	// StepInSession: the session is running and the countdown is local.
	StepInSession
	// StepSessionEnded: the countdown hit zero and payment is owed.
	StepSessionEnded
	// StepRedirect: the unit cannot be entered or resumed; leave the page.
	StepRedirect
)

// ErrUnknownUnit is returned when the named unit does not exist.
var ErrUnknownUnit = errors.New("unknown unit")

// Details is what the customer's browser remembers about its own session
// (mirrors the localStorage blob the web UI keeps per unit name).
type Details struct {
	User     string
	Duration int // minutes
}

// DetailsCache stores per-unit session details between polls.
type DetailsCache interface {
	Get(pcName string) (Details, bool)
	Put(pcName string, d Details)
	Remove(pcName string)
}

// MemoryDetailsCache is the in-process DetailsCache.
type MemoryDetailsCache struct {
	mu sync.Mutex
	m  map[string]Details
}

// NewMemoryDetailsCache creates an empty cache.
func NewMemoryDetailsCache() *MemoryDetailsCache {
	return &MemoryDetailsCache{m: make(map[string]Details)}
}

// Get returns the cached details for a unit.
func (c *MemoryDetailsCache) Get(pcName string) (Details, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.m[pcName]
	return d, ok
}

// Put stores details for a unit.
func (c *MemoryDetailsCache) Put(pcName string, d Details) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[pcName] = d
}

// Remove forgets a unit's details.
func (c *MemoryDetailsCache) Remove(pcName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, pcName)
}

// UnitService is the slice of the backend the customer flow needs.
type UnitService interface {
	FindByName(name string) (model.Unit, error)
	Transition(id string, req session.Request) (model.Unit, error)
}

// CustomerFlow drives the customer side of the protocol: claim an available
// unit on entry, resume a matching in-progress session, or walk away.
type CustomerFlow struct {
	units UnitService
	cache DetailsCache
}

// NewCustomerFlow creates a flow over the given unit service and cache.
func NewCustomerFlow(units UnitService, cache DetailsCache) *CustomerFlow {
	return &CustomerFlow{units: units, cache: cache}
}

// Enter is the reservation-on-entry protocol. An available unit is claimed
// by moving it to pending_payment; an in-progress unit is resumed only when
// the cached details match what the server holds; anything else redirects.
func (f *CustomerFlow) Enter(pcName string) (Step, model.Unit, error) {
	u, err := f.units.FindByName(pcName)
	if err != nil {
		return StepRedirect, model.Unit{}, ErrUnknownUnit
	}

	switch u.Status {
	case model.StatusAvailable:
		reserved, err := f.units.Transition(u.ID, session.Request{Status: model.StatusPendingPayment})
		if err != nil {
			// Lost the race for the unit; treat it as not enterable.
			return StepRedirect, u, nil
		}
		return StepSelection, reserved, nil

	case model.StatusPendingPayment:
		return StepSelection, u, nil

	case model.StatusPendingApproval:
		if f.detailsMatch(u) {
			return StepPendingApproval, u, nil
		}
		return StepRedirect, u, nil

	case model.StatusInUse:
		if f.detailsMatch(u) {
			return StepInSession, u, nil
		}
		return StepRedirect, u, nil

	case model.StatusTimeUp:
		return StepSessionEnded, u, nil
	}

	return StepRedirect, u, nil
}

// detailsMatch mirrors the resume check the web UI performs against its
// localStorage blob: the cached user matches (or was never captured) and
// the cached duration equals the server's.
func (f *CustomerFlow) detailsMatch(u model.Unit) bool {
	d, ok := f.cache.Get(u.Name)
	if !ok {
		return false
	}
	return (d.User == u.User || d.User == "") && d.Duration == u.SessionDuration
}

// Reconcile maps a freshly polled unit onto the step the view should show.
// It is idempotent: feeding the same unit twice yields the same step with
// changed == false, so toasts and alarms fire once per actual change. A
// fall back to available while the customer was mid-flow means an admin
// cancelled the request; the cached details are dropped and the view
// redirects.
func (f *CustomerFlow) Reconcile(current model.Unit, prev Step) (next Step, changed bool) {
	switch current.Status {
	case model.StatusInUse:
		next = StepInSession
	case model.StatusTimeUp:
		next = StepSessionEnded
	case model.StatusPendingApproval:
		next = StepPendingApproval
	case model.StatusPendingPayment:
		next = StepSelection
	case model.StatusAvailable:
		if prev == StepSelection || prev == StepPendingApproval {
			f.cache.Remove(current.Name)
		}
		next = StepRedirect
	default:
		next = StepRedirect
	}
	return next, next != prev
}

// SubmitPayment records the chosen details locally (so a reload can resume)
// and submits them for approval.
func (f *CustomerFlow) SubmitPayment(u model.Unit, duration int, user, email, method string) (model.Unit, error) {
	f.cache.Put(u.Name, Details{User: user, Duration: duration})
	updated, err := f.units.Transition(u.ID, session.Request{
		Status:        model.StatusPendingApproval,
		Duration:      duration,
		User:          user,
		Email:         email,
		PaymentMethod: method,
	})
	if err != nil {
		f.cache.Remove(u.Name)
		return model.Unit{}, err
	}
	return updated, nil
}

// Cancel withdraws a pending request and frees the unit.
func (f *CustomerFlow) Cancel(u model.Unit) (model.Unit, error) {
	updated, err := f.units.Transition(u.ID, session.Request{Status: model.StatusAvailable})
	if err != nil {
		return model.Unit{}, err
	}
	f.cache.Remove(u.Name)
	return updated, nil
}

// ReportTimeUp is the client-side countdown reporting its own expiry. The
// server never expires sessions on its own; this call is the only way an
// in_use unit reaches time_up.
func (f *CustomerFlow) ReportTimeUp(u model.Unit) (model.Unit, error) {
	return f.units.Transition(u.ID, session.Request{Status: model.StatusTimeUp})
}
