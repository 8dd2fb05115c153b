// Package notify derives admin-facing notifications from consecutive
// registry snapshots. It has no channel back to the clients; the admin UI
// polls the current notification list on its own interval.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"comrent-backend/internal/model"
	"comrent-backend/internal/store"
)

// Limit is the notification ring buffer size. Older entries fall off;
// dismissing one in the UI never touches the audit log.
const Limit = 50

// Detector diffs consecutive unit snapshots and keeps the most recent
// notifications. Safe for concurrent use.
type Detector struct {
	audit *store.AuditLog
	now   func() time.Time

	mu     sync.Mutex
	prev   map[string]model.Unit
	primed bool
	ring   []model.Notification
}

// NewDetector creates a detector that appends one audit entry per emitted
// notification.
func NewDetector(audit *store.AuditLog) *Detector {
	return &Detector{
		audit: audit,
		now:   time.Now,
		prev:  make(map[string]model.Unit),
	}
}

// Observe ingests a snapshot and returns the notifications it produced.
// The first snapshot only records a baseline. Within one pass, duplicate
// (unit, status, message) triples collapse to a single notification, so a
// flickering poll cannot spam the panel.
func (d *Detector) Observe(units []model.Unit) []model.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := make(map[string]model.Unit, len(units))
	for _, u := range units {
		next[u.ID] = u
	}

	if !d.primed {
		d.prev = next
		d.primed = true
		return nil
	}

	var emitted []model.Notification
	seen := make(map[string]bool)
	for _, u := range units {
		old, ok := d.prev[u.ID]
		if !ok || old.Status == u.Status {
			continue
		}
		msg := statusMessage(u, old.Status)
		key := u.ID + "|" + string(u.Status) + "|" + msg
		if seen[key] {
			continue
		}
		seen[key] = true

		emitted = append(emitted, model.Notification{
			ID:         uuid.NewString(),
			UnitID:     u.ID,
			UnitName:   u.Name,
			StatusFrom: old.Status,
			StatusTo:   u.Status,
			Message:    msg,
			Timestamp:  d.now(),
		})
	}

	d.prev = next
	for _, n := range emitted {
		d.ring = append(d.ring, n)
		d.audit.Append(n.Message)
	}
	if len(d.ring) > Limit {
		d.ring = d.ring[len(d.ring)-Limit:]
	}
	return emitted
}

// Notifications returns the current ring buffer, oldest first.
func (d *Detector) Notifications() []model.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]model.Notification, len(d.ring))
	copy(out, d.ring)
	return out
}

// statusMessage renders the human line shown in the notification panel and
// recorded in the audit log.
func statusMessage(u model.Unit, from model.UnitStatus) string {
	switch u.Status {
	case model.StatusPendingPayment:
		return fmt.Sprintf("%s is being reserved.", u.Name)
	case model.StatusPendingApproval:
		who := u.User
		if who == "" {
			who = "A customer"
		}
		return fmt.Sprintf("%s sent a payment for %s and is waiting for approval.", who, u.Name)
	case model.StatusInUse:
		return fmt.Sprintf("Session started on %s.", u.Name)
	case model.StatusTimeUp:
		return fmt.Sprintf("Session on %s has ended.", u.Name)
	case model.StatusAvailable:
		return fmt.Sprintf("%s is now available.", u.Name)
	case model.StatusMaintenance:
		return fmt.Sprintf("%s was placed under maintenance.", u.Name)
	case model.StatusUnavailable:
		return fmt.Sprintf("%s was marked unavailable.", u.Name)
	}
	return fmt.Sprintf("%s changed from %s to %s.", u.Name, from, u.Status)
}
