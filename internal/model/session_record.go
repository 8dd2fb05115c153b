package model

import "time"

// SessionRecord is an archived, completed rental session. Records are written
// when a session reaches time_up and are only ever read afterwards (the
// analytics side is a pure consumer). The archive lives in an in-memory
// database and is wiped on restart like everything else.
type SessionRecord struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UnitName        string    `gorm:"size:128;not null;index" json:"pcName"`
	User            string    `gorm:"size:256" json:"user"`
	Email           string    `gorm:"size:256" json:"email"`
	DurationMinutes int       `gorm:"not null" json:"session_duration"`
	PaymentMethod   string    `gorm:"size:64" json:"paymentMethod"`
	Price           float64   `json:"price"`
	StartedAt       time.Time `gorm:"not null;index" json:"session_start"`
	EndedAt         time.Time `gorm:"not null" json:"session_end"`
}
