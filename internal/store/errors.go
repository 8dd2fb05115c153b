// Package store holds the process-wide mutable state of the rental shop:
// the unit registry, per-unit conversations, the pricing table, the audit
// log, and the invoice email template. Each store is an in-memory structure
// guarded by its own lock; nothing survives a restart.
package store

import "errors"

// Expected failure conditions. Store methods return these instead of
// panicking; handlers translate them into HTTP statuses.
var (
	// ErrNotFound indicates an unknown unit id, conversation, or tier.
	ErrNotFound = errors.New("not found")

	// ErrEmptyName is returned when a unit is created or renamed with a
	// blank name.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrEmptyMessage is returned when a posted message carries neither
	// text nor an image reference.
	ErrEmptyMessage = errors.New("message requires text or an image")

	// ErrBadSender is returned when a message sender is not a known role.
	ErrBadSender = errors.New("sender must be user or admin")

	// ErrDuplicateTier is returned when a pricing tier with the same
	// duration already exists.
	ErrDuplicateTier = errors.New("pricing tier already exists")

	// ErrInvalidTier is returned when a tier has a non-positive duration
	// or a missing label.
	ErrInvalidTier = errors.New("invalid pricing tier")
)
