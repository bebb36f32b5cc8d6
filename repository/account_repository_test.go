package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointsbot/repository/testutil"
)

func TestAccountRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	testDB := testutil.SetupTestDatabase(t)
	repo := NewAccountRepository(testDB.DB)

	t.Run("GetByUser returns nil for unknown account", func(t *testing.T) {
		account, err := repo.GetByUser(ctx, 1, 42)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("Create and GetByUser roundtrip", func(t *testing.T) {
		created, err := repo.Create(ctx, 1, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.GuildID)
		assert.Equal(t, int64(100), created.UserID)
		assert.Equal(t, int64(0), created.Balance)
		assert.Nil(t, created.LastClaimAt)

		fetched, err := repo.GetByUser(ctx, 1, 100)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, int64(0), fetched.Balance)

		// Idempotent read: no mutation between reads
		again, err := repo.GetByUser(ctx, 1, 100)
		require.NoError(t, err)
		assert.Equal(t, fetched.Balance, again.Balance)
	})

	t.Run("Create rejects duplicate account", func(t *testing.T) {
		_, err := repo.Create(ctx, 1, 101)
		require.NoError(t, err)
		_, err = repo.Create(ctx, 1, 101)
		assert.Error(t, err)
	})

	t.Run("AddBalance credits atomically", func(t *testing.T) {
		_, err := repo.Create(ctx, 1, 102)
		require.NoError(t, err)

		require.NoError(t, repo.AddBalance(ctx, 1, 102, 50))
		require.NoError(t, repo.AddBalance(ctx, 1, 102, 25))

		account, err := repo.GetByUser(ctx, 1, 102)
		require.NoError(t, err)
		assert.Equal(t, int64(75), account.Balance)
	})

	t.Run("AddBalance fails for missing account", func(t *testing.T) {
		err := repo.AddBalance(ctx, 1, 9999, 50)
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("AddBalance rejects non-positive amount", func(t *testing.T) {
		err := repo.AddBalance(ctx, 1, 102, 0)
		assert.ErrorContains(t, err, "must be positive")
	})

	t.Run("DeductBalance enforces sufficient funds", func(t *testing.T) {
		_, err := repo.Create(ctx, 1, 103)
		require.NoError(t, err)
		require.NoError(t, repo.AddBalance(ctx, 1, 103, 100))

		require.NoError(t, repo.DeductBalance(ctx, 1, 103, 60))

		err = repo.DeductBalance(ctx, 1, 103, 60)
		assert.ErrorContains(t, err, "insufficient balance")

		account, err := repo.GetByUser(ctx, 1, 103)
		require.NoError(t, err)
		assert.Equal(t, int64(40), account.Balance)
	})

	t.Run("DeductBalance fails for missing account", func(t *testing.T) {
		err := repo.DeductBalance(ctx, 1, 9999, 10)
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("SetLastClaim stamps the claim time", func(t *testing.T) {
		_, err := repo.Create(ctx, 1, 104)
		require.NoError(t, err)

		claimedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, repo.SetLastClaim(ctx, 1, 104, claimedAt))

		account, err := repo.GetByUser(ctx, 1, 104)
		require.NoError(t, err)
		require.NotNil(t, account.LastClaimAt)
		assert.True(t, account.LastClaimAt.Equal(claimedAt))
		assert.True(t, account.HasClaimed())
	})

	t.Run("balances are isolated per guild", func(t *testing.T) {
		_, err := repo.Create(ctx, 10, 500)
		require.NoError(t, err)
		_, err = repo.Create(ctx, 20, 500)
		require.NoError(t, err)

		require.NoError(t, repo.AddBalance(ctx, 10, 500, 300))

		inGuild10, err := repo.GetByUser(ctx, 10, 500)
		require.NoError(t, err)
		inGuild20, err := repo.GetByUser(ctx, 20, 500)
		require.NoError(t, err)

		assert.Equal(t, int64(300), inGuild10.Balance)
		assert.Equal(t, int64(0), inGuild20.Balance)
	})
}
