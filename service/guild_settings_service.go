package service

import (
	"context"
	"fmt"

	"pointsbot/events"
	"pointsbot/models"
)

// guildSettingsService implements the GuildSettingsService interface
type guildSettingsService struct {
	uowFactory UnitOfWorkFactory
}

// NewGuildSettingsService creates a new guild settings service
func NewGuildSettingsService(uowFactory UnitOfWorkFactory) GuildSettingsService {
	return &guildSettingsService{
		uowFactory: uowFactory,
	}
}

// GetOrCreateSettings retrieves guild settings or creates default ones if not found
func (s *guildSettingsService) GetOrCreateSettings(ctx context.Context, guildID int64) (*models.GuildSettings, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	settings, err := uow.GuildSettingsRepository().GetOrCreateGuildSettings(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create guild settings: %w", err)
	}

	// Commit in case new settings were created
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return settings, nil
}

// UpdateTimelyReward sets the per-claim reward amount for a guild
func (s *guildSettingsService) UpdateTimelyReward(ctx context.Context, guildID int64, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	return s.update(ctx, guildID, "timely_reward", func(settings *models.GuildSettings) {
		settings.TimelyReward = amount
	})
}

// UpdateTimelyInterval sets the claim interval in hours for a guild
func (s *guildSettingsService) UpdateTimelyInterval(ctx context.Context, guildID int64, hours int) error {
	if hours <= 0 {
		return ErrInvalidAmount
	}

	return s.update(ctx, guildID, "timely_interval_hours", func(settings *models.GuildSettings) {
		settings.TimelyIntervalHours = hours
	})
}

// UpdateModeratorRole sets the moderator role for a guild (nil clears it)
func (s *guildSettingsService) UpdateModeratorRole(ctx context.Context, guildID int64, roleID *int64) error {
	return s.update(ctx, guildID, "moderator_role_id", func(settings *models.GuildSettings) {
		settings.ModeratorRoleID = roleID
	})
}

// update applies a mutation to the guild's settings row inside one transaction
func (s *guildSettingsService) update(ctx context.Context, guildID int64, setting string, mutate func(*models.GuildSettings)) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	settings, err := uow.GuildSettingsRepository().GetOrCreateGuildSettings(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild settings: %w", err)
	}

	mutate(settings)

	if err := uow.GuildSettingsRepository().UpdateGuildSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to update guild settings: %w", err)
	}

	uow.EventBus().Publish(events.GuildSettingsUpdatedEvent{
		GuildID: guildID,
		Setting: setting,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
