// Package permissions provides permission bitmask resolution and naming
package permissions

import (
	"github.com/bwmarrin/discordgo"
)

// Overwrite applies channel allow/deny overwrite pair to base permission set
func Overwrite(base, allow, deny int64) int64 {
	return (base &^ deny) | allow
}

// Everyone returns base permission set of the @everyone role
func Everyone(guild *discordgo.Guild) int64 {
	for _, role := range guild.Roles {
		if role.ID == guild.ID {
			return role.Permissions
		}
	}

	return 0
}

// EveryoneChannel returns effective @everyone permission set in given channel
func EveryoneChannel(guild *discordgo.Guild, channel *discordgo.Channel) int64 {
	base := Everyone(guild)

	for _, overwrite := range channel.PermissionOverwrites {
		if overwrite.ID == guild.ID {
			return Overwrite(base, overwrite.Allow, overwrite.Deny)
		}
	}

	return base
}

// Apparent resolves effective permission set for member in given channel
func Apparent(guild *discordgo.Guild, channel *discordgo.Channel, member *discordgo.Member) int64 {
	userID := member.User.ID

	if userID == guild.OwnerID {
		return discordgo.PermissionAll
	}

	perms := Everyone(guild)

	for _, role := range guild.Roles {
		for _, roleID := range member.Roles {
			if role.ID == roleID {
				perms |= role.Permissions
				break
			}
		}
	}

	if perms&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator {
		return discordgo.PermissionAll
	}

	for _, overwrite := range channel.PermissionOverwrites {
		if overwrite.ID == guild.ID {
			perms = Overwrite(perms, overwrite.Allow, overwrite.Deny)
			break
		}
	}

	var allows, denies int64

	// member overwrites take precedence over role overwrites, so two passes
	for _, overwrite := range channel.PermissionOverwrites {
		if overwrite.Type != discordgo.PermissionOverwriteTypeRole {
			continue
		}

		for _, roleID := range member.Roles {
			if overwrite.ID == roleID {
				allows |= overwrite.Allow
				denies |= overwrite.Deny

				break
			}
		}
	}

	perms = Overwrite(perms, allows, denies)

	for _, overwrite := range channel.PermissionOverwrites {
		if overwrite.Type == discordgo.PermissionOverwriteTypeMember && overwrite.ID == userID {
			perms = Overwrite(perms, overwrite.Allow, overwrite.Deny)
			break
		}
	}

	return perms
}
