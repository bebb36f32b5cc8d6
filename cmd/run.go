package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"pointsbot/bot"
	"pointsbot/config"
	"pointsbot/database"
	"pointsbot/events"
	"pointsbot/repository"
	"pointsbot/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting points bot...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	eventBus := events.NewBus()
	subscribeAuditLog(eventBus)

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	accountService := service.NewAccountService(uowFactory)
	timelyService := service.NewTimelyService(uowFactory)
	awardService := service.NewAwardService(uowFactory, cfg.AwardDebitSender)
	settingsService := service.NewGuildSettingsService(uowFactory)

	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		AppID:   cfg.DiscordAppID,
		GuildID: cfg.DiscordGuildID,
	}
	discordBot, err := bot.New(botConfig, accountService, timelyService, awardService, settingsService)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

// subscribeAuditLog logs committed ledger activity. This is the audit
// surface; full transaction history is out of scope.
func subscribeAuditLog(bus *events.Bus) {
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.BalanceChangeEvent); ok {
			log.WithFields(log.Fields{
				"guildID": e.GuildID,
				"userID":  e.UserID,
				"change":  e.ChangeAmount,
				"reason":  e.Reason,
			}).Info("Balance changed")
		}
	})
	bus.Subscribe(events.EventTypeAccountCreated, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.AccountCreatedEvent); ok {
			log.WithFields(log.Fields{
				"guildID": e.GuildID,
				"userID":  e.UserID,
			}).Info("Account created")
		}
	})
	bus.Subscribe(events.EventTypeGuildSettingsUpdated, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.GuildSettingsUpdatedEvent); ok {
			log.WithFields(log.Fields{
				"guildID": e.GuildID,
				"setting": e.Setting,
			}).Info("Guild settings updated")
		}
	})
}
