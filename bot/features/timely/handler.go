package timely

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"pointsbot/bot/common"
	"pointsbot/service"
)

func (f *Feature) handleTimely(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, err := common.ParseGuildID(i)
	if err != nil {
		log.Errorf("Error parsing guild ID %q: %v", i.GuildID, err)
		common.RespondWithError(s, i, "This command can only be used in a server.")
		return
	}

	userID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := f.timelyService.Claim(ctx, guildID, userID)
	if err != nil {
		var cooldown *service.ClaimCooldownError
		if errors.As(err, &cooldown) {
			common.RespondEphemeral(s, i, fmt.Sprintf("You can claim again in %s (%s).",
				common.FormatWait(cooldown.Remaining), common.FormatDiscordTimestamp(cooldown.NextClaim, "R")))
			return
		}
		log.Errorf("Error claiming timely for user %d in guild %d: %v", userID, guildID, err)
		common.RespondWithError(s, i, "Unable to claim reward. Please try again.")
		return
	}

	common.Respond(s, i, fmt.Sprintf("You claimed **%s points**! Come back in %d hours.",
		common.FormatBalance(result.Reward), result.IntervalHours))
}
