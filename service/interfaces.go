package service

import (
	"context"
	"time"

	"pointsbot/events"
	"pointsbot/models"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// GetByUser retrieves an account by guild and user ID, or nil if none exists
	GetByUser(ctx context.Context, guildID, userID int64) (*models.Account, error)

	// Create creates a new account with a zero balance
	Create(ctx context.Context, guildID, userID int64) (*models.Account, error)

	// AddBalance credits an account atomically
	AddBalance(ctx context.Context, guildID, userID int64, amount int64) error

	// DeductBalance debits an account atomically, failing on insufficient funds
	DeductBalance(ctx context.Context, guildID, userID int64, amount int64) error

	// SetLastClaim stamps the most recent successful timely claim
	SetLastClaim(ctx context.Context, guildID, userID int64, claimedAt time.Time) error
}

// GuildSettingsRepository defines the interface for guild settings data access
type GuildSettingsRepository interface {
	// GetOrCreateGuildSettings retrieves guild settings or creates default ones if not found
	GetOrCreateGuildSettings(ctx context.Context, guildID int64) (*models.GuildSettings, error)

	// UpdateGuildSettings updates guild settings
	UpdateGuildSettings(ctx context.Context, settings *models.GuildSettings) error
}

// AccountService defines the interface for account operations
type AccountService interface {
	// GetOrCreateAccount retrieves an existing account or creates one with a zero balance
	GetOrCreateAccount(ctx context.Context, guildID, userID int64) (*models.Account, error)
}

// ClaimResult describes a successful timely claim
type ClaimResult struct {
	Reward        int64
	NewBalance    int64
	IntervalHours int
	ClaimedAt     time.Time
}

// TimelyService defines the interface for timely claim operations
type TimelyService interface {
	// Claim attempts a timely claim. On cooldown it returns a
	// *ClaimCooldownError carrying the remaining wait, with no mutation.
	Claim(ctx context.Context, guildID, userID int64) (*ClaimResult, error)
}

// AwardResult describes a completed award
type AwardResult struct {
	Amount     int64
	Recipients []int64
	// TotalDebited is amount x len(Recipients) when sender debiting is
	// enabled, zero otherwise.
	TotalDebited int64
}

// AwardService defines the interface for moderator point grants
type AwardService interface {
	// Award credits amount to each recipient exactly once. Duplicates and
	// the granter are dropped from the recipient list. In debit mode the
	// granter must hold the total and is debited in the same transaction.
	Award(ctx context.Context, guildID, granterID int64, recipientIDs []int64, amount int64) (*AwardResult, error)
}

// GuildSettingsService defines the interface for guild settings operations
type GuildSettingsService interface {
	// GetOrCreateSettings retrieves guild settings or creates default ones if not found
	GetOrCreateSettings(ctx context.Context, guildID int64) (*models.GuildSettings, error)

	// UpdateTimelyReward sets the per-claim reward amount for a guild
	UpdateTimelyReward(ctx context.Context, guildID int64, amount int64) error

	// UpdateTimelyInterval sets the claim interval in hours for a guild
	UpdateTimelyInterval(ctx context.Context, guildID int64, hours int) error

	// UpdateModeratorRole sets the moderator role for a guild (nil clears it)
	UpdateModeratorRole(ctx context.Context, guildID int64, roleID *int64) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	AccountRepository() AccountRepository
	GuildSettingsRepository() GuildSettingsRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
