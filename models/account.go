package models

import (
	"time"
)

// Account represents a user's point balance within a single guild.
// Exactly one row exists per (guild_id, user_id) pair; rows are created
// lazily on first access and never deleted.
type Account struct {
	GuildID     int64      `db:"guild_id"`
	UserID      int64      `db:"user_id"`
	Balance     int64      `db:"balance"`
	LastClaimAt *time.Time `db:"last_claim_at"` // nil until the first timely claim
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// HasClaimed reports whether the account has ever completed a timely claim
func (a *Account) HasClaimed() bool {
	return a.LastClaimAt != nil
}
