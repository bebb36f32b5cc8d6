package balance

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"pointsbot/bot/common"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, err := common.ParseGuildID(i)
	if err != nil {
		log.Errorf("Error parsing guild ID %q: %v", i.GuildID, err)
		common.RespondWithError(s, i, "This command can only be used in a server.")
		return
	}

	// Default to the invoker, switch to the user option when provided
	targetID := i.Member.User.ID
	self := true
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			if user := opt.UserValue(s); user != nil {
				targetID = user.ID
				self = targetID == i.Member.User.ID
			}
		}
	}

	userID, err := common.ParseUserID(targetID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", targetID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	account, err := f.accountService.GetOrCreateAccount(ctx, guildID, userID)
	if err != nil {
		log.Errorf("Error getting account for user %d in guild %d: %v", userID, guildID, err)
		common.RespondWithError(s, i, "Unable to retrieve balance. Please try again.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, targetID)

	var message string
	if self {
		message = fmt.Sprintf("%s, your balance is **%s points**.", displayName, common.FormatBalance(account.Balance))
	} else {
		message = fmt.Sprintf("%s has **%s points**.", displayName, common.FormatBalance(account.Balance))
	}
	common.Respond(s, i, message)
}
