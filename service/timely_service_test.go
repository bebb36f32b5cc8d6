package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointsbot/models"
)

// newTimelyFixture wires a timely service with mocks and a fixed clock
func newTimelyFixture(now time.Time) (*timelyService, *MockUnitOfWorkFactory, *MockUnitOfWork, *MockAccountRepository, *MockGuildSettingsRepository) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockSettingsRepo := new(MockGuildSettingsRepository)
	mockUoW.SetRepositories(mockAccountRepo, mockSettingsRepo, nil)

	svc := &timelyService{
		uowFactory: mockFactory,
		now:        func() time.Time { return now },
	}

	return svc, mockFactory, mockUoW, mockAccountRepo, mockSettingsRepo
}

func defaultSettings(guildID int64) *models.GuildSettings {
	return &models.GuildSettings{
		GuildID:             guildID,
		TimelyReward:        models.DefaultTimelyReward,
		TimelyIntervalHours: models.DefaultTimelyIntervalHours,
	}
}

func TestTimelyService_Claim_NeverClaimedSucceeds(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, mockFactory, mockUoW, mockAccountRepo, mockSettingsRepo := newTimelyFixture(now)

	account := &models.Account{GuildID: 1, UserID: 2, Balance: 40}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockSettingsRepo.On("GetOrCreateGuildSettings", ctx, int64(1)).Return(defaultSettings(1), nil)
	mockAccountRepo.On("GetByUser", ctx, int64(1), int64(2)).Return(account, nil)
	mockAccountRepo.On("AddBalance", ctx, int64(1), int64(2), int64(100)).Return(nil)
	mockAccountRepo.On("SetLastClaim", ctx, int64(1), int64(2), now).Return(nil)

	result, err := svc.Claim(ctx, 1, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(100), result.Reward)
	assert.Equal(t, int64(140), result.NewBalance)
	assert.Equal(t, 6, result.IntervalHours)
	assert.Equal(t, now, result.ClaimedAt)

	mockAccountRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestTimelyService_Claim_BeforeIntervalFailsWithRemainingWait(t *testing.T) {
	ctx := context.Background()
	lastClaim := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	// 15 minutes before the 6 hour boundary
	now := lastClaim.Add(6*time.Hour - 15*time.Minute)
	svc, mockFactory, mockUoW, mockAccountRepo, mockSettingsRepo := newTimelyFixture(now)

	account := &models.Account{GuildID: 1, UserID: 2, Balance: 40, LastClaimAt: &lastClaim}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockSettingsRepo.On("GetOrCreateGuildSettings", ctx, int64(1)).Return(defaultSettings(1), nil)
	mockAccountRepo.On("GetByUser", ctx, int64(1), int64(2)).Return(account, nil)

	result, err := svc.Claim(ctx, 1, 2)

	require.Error(t, err)
	assert.Nil(t, result)

	var cooldown *ClaimCooldownError
	require.True(t, errors.As(err, &cooldown))
	assert.Equal(t, 15*time.Minute, cooldown.Remaining)
	assert.Equal(t, lastClaim.Add(6*time.Hour), cooldown.NextClaim)

	// Cooldown rejection performs no mutation and no commit
	mockAccountRepo.AssertNotCalled(t, "AddBalance")
	mockAccountRepo.AssertNotCalled(t, "SetLastClaim")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestTimelyService_Claim_ExactBoundarySucceeds(t *testing.T) {
	ctx := context.Background()
	lastClaim := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := lastClaim.Add(6 * time.Hour)
	svc, mockFactory, mockUoW, mockAccountRepo, mockSettingsRepo := newTimelyFixture(now)

	account := &models.Account{GuildID: 1, UserID: 2, Balance: 0, LastClaimAt: &lastClaim}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockSettingsRepo.On("GetOrCreateGuildSettings", ctx, int64(1)).Return(defaultSettings(1), nil)
	mockAccountRepo.On("GetByUser", ctx, int64(1), int64(2)).Return(account, nil)
	mockAccountRepo.On("AddBalance", ctx, int64(1), int64(2), int64(100)).Return(nil)
	mockAccountRepo.On("SetLastClaim", ctx, int64(1), int64(2), now).Return(nil)

	result, err := svc.Claim(ctx, 1, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(100), result.Reward)
}

func TestTimelyService_Claim_UsesGuildSettings(t *testing.T) {
	ctx := context.Background()
	lastClaim := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	// 7 hours elapsed: past the default 6 but inside this guild's 12
	now := lastClaim.Add(7 * time.Hour)
	svc, mockFactory, mockUoW, mockAccountRepo, mockSettingsRepo := newTimelyFixture(now)

	account := &models.Account{GuildID: 9, UserID: 2, Balance: 0, LastClaimAt: &lastClaim}
	settings := &models.GuildSettings{GuildID: 9, TimelyReward: 250, TimelyIntervalHours: 12}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockSettingsRepo.On("GetOrCreateGuildSettings", ctx, int64(9)).Return(settings, nil)
	mockAccountRepo.On("GetByUser", ctx, int64(9), int64(2)).Return(account, nil)

	_, err := svc.Claim(ctx, 9, 2)

	var cooldown *ClaimCooldownError
	require.True(t, errors.As(err, &cooldown))
	assert.Equal(t, 5*time.Hour, cooldown.Remaining)
}

func TestTimelyService_Claim_CreatesAccountOnFirstClaim(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, mockFactory, mockUoW, mockAccountRepo, mockSettingsRepo := newTimelyFixture(now)

	created := &models.Account{GuildID: 1, UserID: 7, Balance: 0}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockSettingsRepo.On("GetOrCreateGuildSettings", ctx, int64(1)).Return(defaultSettings(1), nil)
	mockAccountRepo.On("GetByUser", ctx, int64(1), int64(7)).Return(nil, nil)
	mockAccountRepo.On("Create", ctx, int64(1), int64(7)).Return(created, nil)
	mockAccountRepo.On("AddBalance", ctx, int64(1), int64(7), int64(100)).Return(nil)
	mockAccountRepo.On("SetLastClaim", ctx, int64(1), int64(7), now).Return(nil)

	result, err := svc.Claim(ctx, 1, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(100), result.NewBalance)
	mockAccountRepo.AssertExpectations(t)
}
