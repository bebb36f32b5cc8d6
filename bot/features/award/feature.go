package award

import (
	"github.com/bwmarrin/discordgo"

	"pointsbot/service"
)

type Feature struct {
	awardService    service.AwardService
	settingsService service.GuildSettingsService
}

func New(awardService service.AwardService, settingsService service.GuildSettingsService) *Feature {
	return &Feature{
		awardService:    awardService,
		settingsService: settingsService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleAward(s, i)
}
