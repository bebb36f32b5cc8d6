package models

import "time"

// Defaults applied when a guild's settings row is first created.
const (
	DefaultTimelyReward        int64 = 100
	DefaultTimelyIntervalHours int   = 6
)

// GuildSettings represents per-guild configuration settings
type GuildSettings struct {
	GuildID             int64  `db:"guild_id"`
	TimelyReward        int64  `db:"timely_reward"`
	TimelyIntervalHours int    `db:"timely_interval_hours"`
	ModeratorRoleID     *int64 `db:"moderator_role_id"` // Nullable - NULL means no moderator role configured
}

// TimelyInterval returns the claim interval as a duration
func (gs *GuildSettings) TimelyInterval() time.Duration {
	return time.Duration(gs.TimelyIntervalHours) * time.Hour
}

// HasModeratorRole checks if a moderator role is configured
func (gs *GuildSettings) HasModeratorRole() bool {
	return gs.ModeratorRoleID != nil && *gs.ModeratorRoleID > 0
}
