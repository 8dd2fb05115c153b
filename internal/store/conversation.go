package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"comrent-backend/internal/model"
)

// ConversationStore holds the customer/admin message threads, one per unit
// display name. Threads are append-only; deleting a unit does not delete its
// thread, which remains readable under the old name.
type ConversationStore struct {
	mu     sync.RWMutex
	byName map[string][]model.Message
	now    func() time.Time
}

// NewConversationStore creates an empty conversation store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		byName: make(map[string][]model.Message),
		now:    time.Now,
	}
}

// Post appends a message to the unit's thread. At least one of text and
// imageURL must be present.
func (c *ConversationStore) Post(pcName, sender, text, imageURL string) (model.Message, error) {
	if sender != model.SenderUser && sender != model.SenderAdmin {
		return model.Message{}, ErrBadSender
	}
	if strings.TrimSpace(text) == "" && imageURL == "" {
		return model.Message{}, ErrEmptyMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	msg := model.Message{
		ID:        uuid.NewString(),
		PCName:    pcName,
		Sender:    sender,
		Text:      text,
		ImageURL:  imageURL,
		Timestamp: c.now(),
	}
	c.byName[pcName] = append(c.byName[pcName], msg)
	return msg, nil
}

// List returns the unit's thread in insertion order. An unknown name yields
// an empty slice, never an error.
func (c *ConversationStore) List(pcName string) []model.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	msgs := c.byName[pcName]
	out := make([]model.Message, len(msgs))
	copy(out, msgs)
	return out
}

// All returns every thread, keyed by unit name.
func (c *ConversationStore) All() map[string][]model.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string][]model.Message, len(c.byName))
	for name, msgs := range c.byName {
		cp := make([]model.Message, len(msgs))
		copy(cp, msgs)
		out[name] = cp
	}
	return out
}

// MarkAllRead flips isRead on every message in the thread that was not
// authored by the reader's own role.
func (c *ConversationStore) MarkAllRead(pcName, readerRole string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msgs := c.byName[pcName]
	for i := range msgs {
		if msgs[i].Sender != readerRole {
			msgs[i].IsRead = true
		}
	}
}

// UnreadCount reports how many messages in the thread are unread from the
// given role's point of view. Recomputed on every call; never stored.
func (c *ConversationStore) UnreadCount(pcName, role string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, m := range c.byName[pcName] {
		if !m.IsRead && m.Sender != role {
			n++
		}
	}
	return n
}
