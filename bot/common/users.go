package common

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// ParseUserID converts a Discord snowflake string to int64
func ParseUserID(userID string) (int64, error) {
	return strconv.ParseInt(userID, 10, 64)
}

// ParseGuildID validates that an interaction originated in a guild and
// returns the guild ID. DM interactions carry no guild ID or member, so this
// must run before any i.Member access.
func ParseGuildID(i *discordgo.InteractionCreate) (int64, error) {
	if i.GuildID == "" {
		return 0, fmt.Errorf("interaction has no guild context")
	}
	return strconv.ParseInt(i.GuildID, 10, 64)
}

// FormatUserID converts an int64 user ID to string
func FormatUserID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// GetUserMention returns a Discord mention string for a user
func GetUserMention(userID int64) string {
	return "<@" + FormatUserID(userID) + ">"
}

// GetDisplayName returns the server-specific display name for a user,
// falling back to username when no nickname is set
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	member, err := s.GuildMember(guildID, userID)
	if err == nil && member != nil {
		if member.Nick != "" {
			return member.Nick
		}
		if member.User != nil {
			return member.User.Username
		}
	}

	user, err := s.User(userID)
	if err == nil && user != nil {
		return user.Username
	}

	return "Unknown"
}

// IsUserAdmin checks if a user has administrator permissions in a guild
func IsUserAdmin(s *discordgo.Session, guildID, userID string) bool {
	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		log.Errorf("Failed to get guild member: %v", err)
		return false
	}

	for _, roleID := range member.Roles {
		role, err := s.State.Role(guildID, roleID)
		if err != nil {
			continue
		}
		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}

	return false
}

// MemberHasRole checks if an interaction member holds the given role
func MemberHasRole(member *discordgo.Member, roleID int64) bool {
	if member == nil {
		return false
	}
	want := FormatUserID(roleID)
	for _, id := range member.Roles {
		if id == want {
			return true
		}
	}
	return false
}
