package service

import (
	"context"
	"fmt"

	"pointsbot/events"
)

// awardService implements the AwardService interface
type awardService struct {
	uowFactory UnitOfWorkFactory
	// debitSender switches /award from a pure credit grant to a funded
	// transfer debited from the granter
	debitSender bool
}

// NewAwardService creates a new award service
func NewAwardService(uowFactory UnitOfWorkFactory, debitSender bool) AwardService {
	return &awardService{
		uowFactory:  uowFactory,
		debitSender: debitSender,
	}
}

// Award credits amount to each recipient inside a single transaction. The
// recipient list is de-duplicated and the granter never awards themselves.
// In debit mode the granter must hold amount x recipients before anything is
// credited; on insufficient funds no balance changes.
func (s *awardService) Award(ctx context.Context, guildID, granterID int64, recipientIDs []int64, amount int64) (*AwardResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	// Self-exclusion and de-duplication. The handler merges the user option
	// with IDs parsed from free text, so the same user can arrive twice.
	seen := make(map[int64]struct{}, len(recipientIDs))
	recipients := make([]int64, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		if id == granterID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		recipients = append(recipients, id)
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	var totalDebited int64
	if s.debitSender {
		granter, err := getOrCreateAccount(ctx, uow, guildID, granterID)
		if err != nil {
			return nil, err
		}

		total := amount * int64(len(recipients))
		if granter.Balance < total {
			return nil, &InsufficientFundsError{Have: granter.Balance, Need: total}
		}

		if err := uow.AccountRepository().DeductBalance(ctx, guildID, granterID, total); err != nil {
			return nil, fmt.Errorf("failed to debit granter: %w", err)
		}
		totalDebited = total

		uow.EventBus().Publish(events.BalanceChangeEvent{
			GuildID:      guildID,
			UserID:       granterID,
			ChangeAmount: -total,
			Reason:       "award_debit",
		})
	}

	for _, recipientID := range recipients {
		if _, err := getOrCreateAccount(ctx, uow, guildID, recipientID); err != nil {
			return nil, err
		}
		if err := uow.AccountRepository().AddBalance(ctx, guildID, recipientID, amount); err != nil {
			return nil, fmt.Errorf("failed to credit recipient %d: %w", recipientID, err)
		}

		uow.EventBus().Publish(events.BalanceChangeEvent{
			GuildID:      guildID,
			UserID:       recipientID,
			ChangeAmount: amount,
			Reason:       "award_credit",
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &AwardResult{
		Amount:       amount,
		Recipients:   recipients,
		TotalDebited: totalDebited,
	}, nil
}
