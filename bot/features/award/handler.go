package award

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"pointsbot/bot/common"
	"pointsbot/service"
)

func (f *Feature) handleAward(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, err := common.ParseGuildID(i)
	if err != nil {
		log.Errorf("Error parsing guild ID %q: %v", i.GuildID, err)
		common.RespondWithError(s, i, "This command can only be used in a server.")
		return
	}

	granterID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if !f.canAward(ctx, s, i, guildID) {
		common.RespondWithError(s, i, "You need administrator permissions or the moderator role to award points.")
		return
	}

	// Extract command options
	var amount int64
	var targetUser *discordgo.User
	var usersText string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			targetUser = opt.UserValue(s)
		case "users":
			usersText = opt.StringValue()
		}
	}

	if amount <= 0 {
		common.RespondWithError(s, i, "Amount must be positive.")
		return
	}

	if targetUser == nil && usersText == "" {
		common.RespondWithError(s, i, "Please specify a user or text containing users.")
		return
	}

	// Merge the targeted user with any IDs parsed from the text blob
	var recipients []int64
	if targetUser != nil {
		id, err := common.ParseUserID(targetUser.ID)
		if err != nil {
			log.Errorf("Error parsing recipient Discord ID %s: %v", targetUser.ID, err)
			common.RespondWithError(s, i, "Unable to process request. Please try again.")
			return
		}
		recipients = append(recipients, id)
	}
	if usersText != "" {
		parsed := common.ParseUserIDs(usersText)
		if len(parsed) == 0 && targetUser == nil {
			common.RespondWithError(s, i, "No valid recipients found in text.")
			return
		}
		recipients = append(recipients, parsed...)
	}

	result, err := f.awardService.Award(ctx, guildID, granterID, recipients, amount)
	if err != nil {
		var insufficient *service.InsufficientFundsError
		switch {
		case errors.Is(err, service.ErrNoRecipients):
			common.RespondWithError(s, i, "No valid recipients found.")
		case errors.Is(err, service.ErrInvalidAmount):
			common.RespondWithError(s, i, "Amount must be positive.")
		case errors.As(err, &insufficient):
			common.RespondWithError(s, i, fmt.Sprintf("Insufficient balance: you have %s points but the award costs %s.",
				common.FormatBalance(insufficient.Have), common.FormatBalance(insufficient.Need)))
		default:
			log.Errorf("Error awarding %d points in guild %d: %v", amount, guildID, err)
			common.RespondWithError(s, i, "Unable to award points. Please try again.")
		}
		return
	}

	mentions := make([]string, len(result.Recipients))
	for idx, id := range result.Recipients {
		mentions[idx] = common.GetUserMention(id)
	}
	common.Respond(s, i, fmt.Sprintf("You awarded **%s points** to %s!",
		common.FormatBalance(result.Amount), strings.Join(mentions, ", ")))
}

// canAward permits administrators and holders of the configured moderator role
func (f *Feature) canAward(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64) bool {
	if common.IsUserAdmin(s, i.GuildID, i.Member.User.ID) {
		return true
	}

	settings, err := f.settingsService.GetOrCreateSettings(ctx, guildID)
	if err != nil {
		log.Errorf("Error getting guild settings for guild %d: %v", guildID, err)
		return false
	}
	if !settings.HasModeratorRole() {
		return false
	}

	return common.MemberHasRole(i.Member, *settings.ModeratorRoleID)
}
