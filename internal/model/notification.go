package model

import "time"

// Notification is a derived record of a unit status change, produced by the
// change detector. Notifications are held in a bounded most-recent list and
// are distinct from the unbounded audit log.
type Notification struct {
	ID         string     `json:"id"`
	UnitID     string     `json:"unitId"`
	UnitName   string     `json:"unitName"`
	StatusFrom UnitStatus `json:"statusFrom"`
	StatusTo   UnitStatus `json:"statusTo"`
	Message    string     `json:"message"`
	Timestamp  time.Time  `json:"timestamp"`
}
