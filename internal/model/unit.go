package model

import "time"

// UnitStatus is the lifecycle state of a rentable PC.
type UnitStatus string

const (
	StatusAvailable       UnitStatus = "available"
	StatusPendingPayment  UnitStatus = "pending_payment"
	StatusPendingApproval UnitStatus = "pending_approval"
	StatusInUse           UnitStatus = "in_use"
	StatusTimeUp          UnitStatus = "time_up"
	StatusMaintenance     UnitStatus = "maintenance"
	StatusUnavailable     UnitStatus = "unavailable"
)

// Valid reports whether s is one of the recognized statuses.
func (s UnitStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusPendingPayment, StatusPendingApproval,
		StatusInUse, StatusTimeUp, StatusMaintenance, StatusUnavailable:
		return true
	}
	return false
}

// Idle reports whether s is a status that must not carry a session payload.
func (s UnitStatus) Idle() bool {
	return s == StatusAvailable || s == StatusMaintenance || s == StatusUnavailable
}

// Unit represents a rentable PC tracked by the registry. The session payload
// fields (User through PaymentProof) are only populated mid-rental and are
// cleared whenever the unit returns to an idle status.
type Unit struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Status UnitStatus `json:"status"`

	User            string     `json:"user,omitempty"`
	Email           string     `json:"email,omitempty"`
	SessionStart    *time.Time `json:"session_start,omitempty"`
	SessionDuration int        `json:"session_duration,omitempty"` // minutes
	PaymentMethod   string     `json:"paymentMethod,omitempty"`
	PaymentProof    string     `json:"paymentProof,omitempty"`
}

// ClearSession wipes the session payload. Name and status are untouched.
func (u *Unit) ClearSession() {
	u.User = ""
	u.Email = ""
	u.SessionStart = nil
	u.SessionDuration = 0
	u.PaymentMethod = ""
	u.PaymentProof = ""
}

// SessionClear reports whether the session payload is fully absent.
func (u *Unit) SessionClear() bool {
	return u.User == "" && u.Email == "" && u.SessionStart == nil &&
		u.SessionDuration == 0 && u.PaymentMethod == "" && u.PaymentProof == ""
}
