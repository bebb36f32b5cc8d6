package events

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeAccountCreated       EventType = "account_created"
	EventTypeBalanceChange        EventType = "balance_change"
	EventTypeTimelyClaimed        EventType = "timely_claimed"
	EventTypeGuildSettingsUpdated EventType = "guild_settings_updated"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// AccountCreatedEvent represents a new (guild, user) account row
type AccountCreatedEvent struct {
	GuildID int64
	UserID  int64
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	GuildID      int64
	UserID       int64
	ChangeAmount int64
	Reason       string // "timely", "award_credit", "award_debit"
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// TimelyClaimedEvent represents a successful timely claim
type TimelyClaimedEvent struct {
	GuildID   int64
	UserID    int64
	Reward    int64
	ClaimedAt time.Time
}

func (e TimelyClaimedEvent) Type() EventType {
	return EventTypeTimelyClaimed
}

// GuildSettingsUpdatedEvent represents a change to a guild's configuration
type GuildSettingsUpdatedEvent struct {
	GuildID int64
	Setting string
}

func (e GuildSettingsUpdatedEvent) Type() EventType {
	return EventTypeGuildSettingsUpdated
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit publishes an event to all registered handlers asynchronously
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stages events alongside a unit of work. Events are held
// until the transaction commits; a rollback discards them.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all staged events; called after a successful commit.
// Emission uses a background context so event handling outlives the
// transaction's context.
func (b *TransactionalBus) Flush() {
	ctx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(ctx, ev)
	}
	b.pending = nil
}

// Discard drops staged events; called after rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
