package service

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidAmount is returned when an operation receives a non-positive amount
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrNoRecipients is returned when an award resolves no recipients
var ErrNoRecipients = errors.New("no recipients specified")

// ClaimCooldownError is returned when a timely claim is attempted before the
// configured interval has elapsed
type ClaimCooldownError struct {
	Remaining time.Duration
	NextClaim time.Time
}

func (e *ClaimCooldownError) Error() string {
	return fmt.Sprintf("claim on cooldown for %s", e.Remaining)
}

// InsufficientFundsError is returned when a debit exceeds the available balance
type InsufficientFundsError struct {
	Have int64
	Need int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient balance: have %d, need %d", e.Have, e.Need)
}
