package service

import (
	"context"
	"fmt"
	"time"

	"pointsbot/events"
)

// timelyService implements the TimelyService interface
type timelyService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

// NewTimelyService creates a new timely claim service
func NewTimelyService(uowFactory UnitOfWorkFactory) TimelyService {
	return &timelyService{
		uowFactory: uowFactory,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Claim attempts a timely claim for the user in the given guild. The guild's
// configured reward and interval apply. The elapsed time is compared as an
// exact real-valued hour difference; a claim at exactly the interval
// boundary succeeds.
func (s *timelyService) Claim(ctx context.Context, guildID, userID int64) (*ClaimResult, error) {
	now := s.now()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	settings, err := uow.GuildSettingsRepository().GetOrCreateGuildSettings(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings: %w", err)
	}

	account, err := getOrCreateAccount(ctx, uow, guildID, userID)
	if err != nil {
		return nil, err
	}

	if account.LastClaimAt != nil {
		elapsed := now.Sub(*account.LastClaimAt).Hours()
		if elapsed < float64(settings.TimelyIntervalHours) {
			nextClaim := account.LastClaimAt.Add(settings.TimelyInterval())
			return nil, &ClaimCooldownError{
				Remaining: nextClaim.Sub(now),
				NextClaim: nextClaim,
			}
		}
	}

	reward := settings.TimelyReward
	if err := uow.AccountRepository().AddBalance(ctx, guildID, userID, reward); err != nil {
		return nil, fmt.Errorf("failed to credit timely reward: %w", err)
	}
	if err := uow.AccountRepository().SetLastClaim(ctx, guildID, userID, now); err != nil {
		return nil, fmt.Errorf("failed to stamp last claim: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		GuildID:      guildID,
		UserID:       userID,
		ChangeAmount: reward,
		Reason:       "timely",
	})
	uow.EventBus().Publish(events.TimelyClaimedEvent{
		GuildID:   guildID,
		UserID:    userID,
		Reward:    reward,
		ClaimedAt: now,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &ClaimResult{
		Reward:        reward,
		NewBalance:    account.Balance + reward,
		IntervalHours: settings.TimelyIntervalHours,
		ClaimedAt:     now,
	}, nil
}
