package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"pointsbot/events"
	"pointsbot/models"
)

func TestAccountService_GetOrCreateAccount_ExistingAccount(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	recorder := &RecordingEventPublisher{}
	mockUoW.SetRepositories(mockAccountRepo, nil, recorder)

	svc := NewAccountService(mockFactory)

	existing := &models.Account{
		GuildID: 100,
		UserID:  200,
		Balance: 5000,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockAccountRepo.On("GetByUser", ctx, int64(100), int64(200)).Return(existing, nil)

	account, err := svc.GetOrCreateAccount(ctx, 100, 200)

	assert.NoError(t, err)
	assert.Equal(t, existing, account)
	assert.Empty(t, recorder.Events)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
	mockAccountRepo.AssertNotCalled(t, "Create")
}

func TestAccountService_GetOrCreateAccount_NewAccount(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	recorder := &RecordingEventPublisher{}
	mockUoW.SetRepositories(mockAccountRepo, nil, recorder)

	svc := NewAccountService(mockFactory)

	created := &models.Account{
		GuildID: 100,
		UserID:  200,
		Balance: 0,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockAccountRepo.On("GetByUser", ctx, int64(100), int64(200)).Return(nil, nil)
	mockAccountRepo.On("Create", ctx, int64(100), int64(200)).Return(created, nil)

	account, err := svc.GetOrCreateAccount(ctx, 100, 200)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), account.Balance)

	// Account creation publishes an event through the transactional bus
	assert.Len(t, recorder.Events, 1)
	assert.Equal(t, events.EventTypeAccountCreated, recorder.Events[0].Type())

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
}

func TestAccountService_GetOrCreateAccount_RepositoryError(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockUoW.SetRepositories(mockAccountRepo, nil, nil)

	svc := NewAccountService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockAccountRepo.On("GetByUser", ctx, int64(100), int64(200)).Return(nil, errors.New("connection lost"))

	account, err := svc.GetOrCreateAccount(ctx, 100, 200)

	assert.Error(t, err)
	assert.Nil(t, account)
	mockUoW.AssertNotCalled(t, "Commit")
}
