package timely

import (
	"github.com/bwmarrin/discordgo"

	"pointsbot/service"
)

type Feature struct {
	timelyService service.TimelyService
}

func New(timelyService service.TimelyService) *Feature {
	return &Feature{
		timelyService: timelyService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleTimely(s, i)
}
