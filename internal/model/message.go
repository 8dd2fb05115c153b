package model

import "time"

// Message sender roles.
const (
	SenderUser  = "user"
	SenderAdmin = "admin"
)

// Message is a single entry in a per-unit conversation. Conversations are
// keyed by the unit's display name, so renaming a unit orphans its history;
// the old thread stays readable under the old name.
type Message struct {
	ID        string    `json:"id"`
	PCName    string    `json:"pcName"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"isRead"`
}
