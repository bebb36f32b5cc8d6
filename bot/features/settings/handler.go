package settings

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"pointsbot/bot/common"
)

// parseGuild validates the guild context and admin permissions, returning
// the guild ID or false after replying with an error. The guild check runs
// first: DM interactions have no member to inspect.
func (f *Feature) parseGuild(s *discordgo.Session, i *discordgo.InteractionCreate) (int64, bool) {
	guildID, err := common.ParseGuildID(i)
	if err != nil {
		log.Errorf("Error parsing guild ID %q: %v", i.GuildID, err)
		common.RespondWithError(s, i, "This command can only be used in a server.")
		return 0, false
	}

	if !common.IsUserAdmin(s, i.GuildID, i.Member.User.ID) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command.")
		return 0, false
	}

	return guildID, true
}

func (f *Feature) handleTimelyReward(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := f.parseGuild(s, i)
	if !ok {
		return
	}

	options := i.ApplicationCommandData().Options[0].Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please provide a reward amount.")
		return
	}
	amount := options[0].IntValue()
	if amount <= 0 {
		common.RespondWithError(s, i, "Reward amount must be positive.")
		return
	}

	if err := f.settingsService.UpdateTimelyReward(context.Background(), guildID, amount); err != nil {
		log.Errorf("Error updating timely reward for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Failed to update settings.")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Timely reward set to %s points.", common.FormatBalance(amount)))
}

func (f *Feature) handleTimelyInterval(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := f.parseGuild(s, i)
	if !ok {
		return
	}

	options := i.ApplicationCommandData().Options[0].Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please provide an interval in hours.")
		return
	}
	hours := options[0].IntValue()
	if hours <= 0 {
		common.RespondWithError(s, i, "Interval must be positive.")
		return
	}

	if err := f.settingsService.UpdateTimelyInterval(context.Background(), guildID, int(hours)); err != nil {
		log.Errorf("Error updating timely interval for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Failed to update settings.")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Timely interval set to %d hours.", hours))
}

func (f *Feature) handleModRole(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := f.parseGuild(s, i)
	if !ok {
		return
	}

	// Omitting the role clears it
	var roleID *int64
	options := i.ApplicationCommandData().Options[0].Options
	if len(options) > 0 && options[0].Name == "role" {
		role := options[0].RoleValue(s, i.GuildID)
		if role != nil {
			id, err := common.ParseUserID(role.ID)
			if err != nil {
				log.Errorf("Error parsing role ID %s: %v", role.ID, err)
				common.RespondWithError(s, i, "Invalid role selected.")
				return
			}
			roleID = &id
		}
	}

	if err := f.settingsService.UpdateModeratorRole(context.Background(), guildID, roleID); err != nil {
		log.Errorf("Error updating moderator role for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Failed to update settings.")
		return
	}

	if roleID != nil {
		common.RespondWithSuccess(s, i, fmt.Sprintf("Moderator role updated to <@&%d>.", *roleID))
	} else {
		common.RespondWithSuccess(s, i, "Moderator role cleared.")
	}
}
