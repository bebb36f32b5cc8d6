package service

import (
	"context"
	"fmt"

	"pointsbot/events"
	"pointsbot/models"
)

// accountService implements the AccountService interface
type accountService struct {
	uowFactory UnitOfWorkFactory
}

// NewAccountService creates a new account service
func NewAccountService(uowFactory UnitOfWorkFactory) AccountService {
	return &accountService{
		uowFactory: uowFactory,
	}
}

// GetOrCreateAccount retrieves an existing account or creates one with a
// zero balance. The zero row is persisted on first access.
func (s *accountService) GetOrCreateAccount(ctx context.Context, guildID, userID int64) (*models.Account, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	account, err := getOrCreateAccount(ctx, uow, guildID, userID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return account, nil
}

// getOrCreateAccount is the shared read-or-default-and-insert step used by
// every service that touches an account inside an open unit of work.
func getOrCreateAccount(ctx context.Context, uow UnitOfWork, guildID, userID int64) (*models.Account, error) {
	account, err := uow.AccountRepository().GetByUser(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if account != nil {
		return account, nil
	}

	account, err = uow.AccountRepository().Create(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	uow.EventBus().Publish(events.AccountCreatedEvent{
		GuildID: guildID,
		UserID:  userID,
	})

	return account, nil
}
