package store

import "sync"

// AuditLog is the unbounded append-only action history shown in the admin
// activity monitor. It records status changes, renames, deletions, pricing
// edits and invoice sends as plain strings. The only deduplication is that
// an entry identical to the current last entry is dropped.
type AuditLog struct {
	mu      sync.RWMutex
	entries []string
}

// NewAuditLog creates an empty audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Append records an entry unless it exactly repeats the trailing one.
func (a *AuditLog) Append(entry string) {
	if entry == "" {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if n := len(a.entries); n > 0 && a.entries[n-1] == entry {
		return
	}
	a.entries = append(a.entries, entry)
}

// Entries returns the full history, oldest first.
func (a *AuditLog) Entries() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]string, len(a.entries))
	copy(out, a.entries)
	return out
}

// Len reports the number of recorded entries.
func (a *AuditLog) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.entries)
}
