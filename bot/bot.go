package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"pointsbot/bot/features/award"
	"pointsbot/bot/features/balance"
	"pointsbot/bot/features/settings"
	"pointsbot/bot/features/timely"
	"pointsbot/service"
)

// Config holds bot configuration
type Config struct {
	Token   string
	AppID   string // optional, falls back to the session user
	GuildID string // optional, enables the guild-scoped /moon command
}

// Feature handles the interactions of a single slash command
type Feature interface {
	HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate)
}

type Bot struct {
	config  Config
	session *discordgo.Session

	// command name -> feature lookup, built once at construction
	handlers map[string]Feature
}

func New(config Config, accountService service.AccountService, timelyService service.TimelyService, awardService service.AwardService, settingsService service.GuildSettingsService) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	timelyFeature := timely.New(timelyService)

	bot := &Bot{
		config:  config,
		session: dg,
		handlers: map[string]Feature{
			"bal":       balance.New(accountService),
			"timely":    timelyFeature,
			"moon":      timelyFeature, // guild-scoped alias
			"award":     award.New(awardService, settingsService),
			"configure": settings.New(settingsService),
		},
	}

	dg.AddHandler(bot.handleCommands)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	feature, ok := b.handlers[name]
	if !ok {
		log.Warnf("No handler registered for command %q", name)
		return
	}

	feature.HandleCommand(s, i)
}
