package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"pointsbot/database"
	"pointsbot/models"
)

// queryable is satisfied by both a pgxpool.Pool and a pgx.Tx, so the same
// repository code runs standalone or inside a unit of work.
type queryable interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// AccountRepository implements the service.AccountRepository interface
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepositoryWithTx creates a new account repository with a transaction
func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

// GetByUser retrieves an account by guild and user ID, or nil if none exists
func (r *AccountRepository) GetByUser(ctx context.Context, guildID, userID int64) (*models.Account, error) {
	query := `
		SELECT guild_id, user_id, balance, last_claim_at, created_at, updated_at
		FROM accounts
		WHERE guild_id = $1 AND user_id = $2
	`

	var account models.Account
	err := r.q.QueryRow(ctx, query, guildID, userID).Scan(
		&account.GuildID,
		&account.UserID,
		&account.Balance,
		&account.LastClaimAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account for user %d in guild %d: %w", userID, guildID, err)
	}

	return &account, nil
}

// Create creates a new account with a zero balance and no claim history
func (r *AccountRepository) Create(ctx context.Context, guildID, userID int64) (*models.Account, error) {
	query := `
		INSERT INTO accounts (guild_id, user_id, balance)
		VALUES ($1, $2, 0)
		RETURNING guild_id, user_id, balance, last_claim_at, created_at, updated_at
	`

	var account models.Account
	err := r.q.QueryRow(ctx, query, guildID, userID).Scan(
		&account.GuildID,
		&account.UserID,
		&account.Balance,
		&account.LastClaimAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create account for user %d in guild %d: %w", userID, guildID, err)
	}

	return &account, nil
}

// AddBalance credits an account atomically with a single increment statement
func (r *AccountRepository) AddBalance(ctx context.Context, guildID, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET balance = balance + $3, updated_at = NOW()
		WHERE guild_id = $1 AND user_id = $2
	`

	result, err := r.q.Exec(ctx, query, guildID, userID, amount)
	if err != nil {
		return fmt.Errorf("failed to add balance for user %d in guild %d: %w", userID, guildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account for user %d in guild %d not found", userID, guildID)
	}

	return nil
}

// DeductBalance debits an account atomically, failing if the balance would
// go negative. The balance check and the decrement are one statement, so
// concurrent debits cannot interleave into an overdraft.
func (r *AccountRepository) DeductBalance(ctx context.Context, guildID, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET balance = balance - $3, updated_at = NOW()
		WHERE guild_id = $1 AND user_id = $2 AND balance >= $3
	`

	result, err := r.q.Exec(ctx, query, guildID, userID, amount)
	if err != nil {
		return fmt.Errorf("failed to deduct balance for user %d in guild %d: %w", userID, guildID, err)
	}

	if result.RowsAffected() == 0 {
		// Distinguish a missing account from insufficient funds
		account, err := r.GetByUser(ctx, guildID, userID)
		if err != nil {
			return fmt.Errorf("failed to check account: %w", err)
		}
		if account == nil {
			return fmt.Errorf("account for user %d in guild %d not found", userID, guildID)
		}
		return fmt.Errorf("insufficient balance: have %d, need %d", account.Balance, amount)
	}

	return nil
}

// SetLastClaim stamps the most recent successful timely claim
func (r *AccountRepository) SetLastClaim(ctx context.Context, guildID, userID int64, claimedAt time.Time) error {
	query := `
		UPDATE accounts
		SET last_claim_at = $3, updated_at = NOW()
		WHERE guild_id = $1 AND user_id = $2
	`

	result, err := r.q.Exec(ctx, query, guildID, userID, claimedAt)
	if err != nil {
		return fmt.Errorf("failed to set last claim for user %d in guild %d: %w", userID, guildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account for user %d in guild %d not found", userID, guildID)
	}

	return nil
}
