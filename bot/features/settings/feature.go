package settings

import (
	"github.com/bwmarrin/discordgo"

	"pointsbot/service"
)

// Feature handles guild settings management
type Feature struct {
	settingsService service.GuildSettingsService
}

func New(settingsService service.GuildSettingsService) *Feature {
	return &Feature{
		settingsService: settingsService,
	}
}

// HandleCommand routes configure subcommands to the matching handler
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "timely-reward":
		f.handleTimelyReward(s, i)
	case "timely-interval":
		f.handleTimelyInterval(s, i)
	case "mod-role":
		f.handleModRole(s, i)
	}
}
