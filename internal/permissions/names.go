package permissions

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Named associates permission bit with its canonical name
type Named struct {
	Bit  int64
	Name string
}

// Table lists known permission bits in ascending bit order
var Table = []Named{
	{discordgo.PermissionCreateInstantInvite, "create_instant_invite"},
	{discordgo.PermissionKickMembers, "kick_members"},
	{discordgo.PermissionBanMembers, "ban_members"},
	{discordgo.PermissionAdministrator, "administrator"},
	{discordgo.PermissionManageChannels, "manage_channels"},
	{discordgo.PermissionManageServer, "manage_guild"},
	{discordgo.PermissionAddReactions, "add_reactions"},
	{discordgo.PermissionViewAuditLogs, "view_audit_log"},
	{discordgo.PermissionVoicePrioritySpeaker, "priority_speaker"},
	{discordgo.PermissionVoiceStreamVideo, "stream"},
	{discordgo.PermissionReadMessages, "read_messages"},
	{discordgo.PermissionSendMessages, "send_messages"},
	{discordgo.PermissionSendTTSMessages, "send_tts_messages"},
	{discordgo.PermissionManageMessages, "manage_messages"},
	{discordgo.PermissionEmbedLinks, "embed_links"},
	{discordgo.PermissionAttachFiles, "attach_files"},
	{discordgo.PermissionReadMessageHistory, "read_message_history"},
	{discordgo.PermissionMentionEveryone, "mention_everyone"},
	{discordgo.PermissionUseExternalEmojis, "use_external_emojis"},
	{discordgo.PermissionVoiceConnect, "connect"},
	{discordgo.PermissionVoiceSpeak, "speak"},
	{discordgo.PermissionVoiceMuteMembers, "mute_members"},
	{discordgo.PermissionVoiceDeafenMembers, "deafen_members"},
	{discordgo.PermissionVoiceMoveMembers, "move_members"},
	{discordgo.PermissionVoiceUseVAD, "use_voice_activation"},
	{discordgo.PermissionChangeNickname, "change_nickname"},
	{discordgo.PermissionManageNicknames, "manage_nicknames"},
	{discordgo.PermissionManageRoles, "manage_roles"},
	{discordgo.PermissionManageWebhooks, "manage_webhooks"},
	{discordgo.PermissionManageEmojis, "manage_emojis"},
}

// DisplayName renders canonical permission name in human-readable form
func DisplayName(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "guild", "server")

	return strings.Title(name)
}

// Names partitions known permission bits into allowed and denied display names
func Names(perms int64) (allowed, denied []string) {
	for _, named := range Table {
		if perms&named.Bit == named.Bit {
			allowed = append(allowed, DisplayName(named.Name))
		} else {
			denied = append(denied, DisplayName(named.Name))
		}
	}

	return
}
