package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pointsbot/database"
	"pointsbot/models"
)

// GuildSettingsRepository implements the service.GuildSettingsRepository interface
type GuildSettingsRepository struct {
	q queryable
}

// NewGuildSettingsRepository creates a new guild settings repository
func NewGuildSettingsRepository(db *database.DB) *GuildSettingsRepository {
	return &GuildSettingsRepository{q: db.Pool}
}

// newGuildSettingsRepositoryWithTx creates a new guild settings repository with a transaction
func newGuildSettingsRepositoryWithTx(tx queryable) *GuildSettingsRepository {
	return &GuildSettingsRepository{q: tx}
}

// GetOrCreateGuildSettings retrieves guild settings or creates default ones if not found
func (r *GuildSettingsRepository) GetOrCreateGuildSettings(ctx context.Context, guildID int64) (*models.GuildSettings, error) {
	query := `
		SELECT guild_id, timely_reward, timely_interval_hours, moderator_role_id
		FROM guild_settings
		WHERE guild_id = $1
	`

	var settings models.GuildSettings
	err := r.q.QueryRow(ctx, query, guildID).Scan(
		&settings.GuildID,
		&settings.TimelyReward,
		&settings.TimelyIntervalHours,
		&settings.ModeratorRoleID,
	)

	if err == nil {
		return &settings, nil
	}

	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to get guild settings for guild %d: %w", guildID, err)
	}

	// Not found, create defaults
	insertQuery := `
		INSERT INTO guild_settings (guild_id, timely_reward, timely_interval_hours, moderator_role_id)
		VALUES ($1, $2, $3, NULL)
		RETURNING guild_id, timely_reward, timely_interval_hours, moderator_role_id
	`

	err = r.q.QueryRow(ctx, insertQuery, guildID, models.DefaultTimelyReward, models.DefaultTimelyIntervalHours).Scan(
		&settings.GuildID,
		&settings.TimelyReward,
		&settings.TimelyIntervalHours,
		&settings.ModeratorRoleID,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create guild settings for guild %d: %w", guildID, err)
	}

	return &settings, nil
}

// UpdateGuildSettings updates guild settings
func (r *GuildSettingsRepository) UpdateGuildSettings(ctx context.Context, settings *models.GuildSettings) error {
	query := `
		UPDATE guild_settings
		SET timely_reward = $2,
		    timely_interval_hours = $3,
		    moderator_role_id = $4
		WHERE guild_id = $1
	`

	result, err := r.q.Exec(ctx, query,
		settings.GuildID,
		settings.TimelyReward,
		settings.TimelyIntervalHours,
		settings.ModeratorRoleID,
	)

	if err != nil {
		return fmt.Errorf("failed to update guild settings for guild %d: %w", settings.GuildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("guild settings for guild %d not found", settings.GuildID)
	}

	return nil
}
