package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

var adminOnly int64 = discordgo.PermissionAdministrator

// globalCommands is the command set registered application-wide
var globalCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "bal",
		Description: "Show your or another user's balance",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user whose balance you want to check",
				Required:    false,
			},
		},
	},
	{
		Name:        "timely",
		Description: "Claim your timely reward",
	},
	{
		Name:                     "award",
		Description:              "Award points to user(s)",
		DefaultMemberPermissions: &adminOnly,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Amount to award",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "A single user to award",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "users",
				Description: "Text containing multiple user mentions or IDs",
				Required:    false,
			},
		},
	},
	{
		Name:                     "configure",
		Description:              "Configure guild settings",
		DefaultMemberPermissions: &adminOnly,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "timely-reward",
				Description: "Set the timely reward amount",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "amount",
						Description: "Reward amount",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "timely-interval",
				Description: "Set the timely interval in hours",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "hours",
						Description: "Interval in hours",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "mod-role",
				Description: "Set the moderator role allowed to award points (omit to clear)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "Moderator role",
						Required:    false,
					},
				},
			},
		},
	},
}

// guildCommands is registered only against the configured guild
var guildCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "moon",
		Description: "Claim your timely reward",
	},
}

func (b *Bot) registerCommands() error {
	appID := b.config.AppID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for _, cmd := range globalCommands {
		if _, err := b.session.ApplicationCommandCreate(appID, "", cmd); err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	if b.config.GuildID != "" {
		for _, cmd := range guildCommands {
			if _, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd); err != nil {
				return fmt.Errorf("cannot create guild command '%s': %w", cmd.Name, err)
			}
		}
	}

	log.Info("Slash commands registered")
	return nil
}
