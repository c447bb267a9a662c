package dgmux

import "github.com/bwmarrin/discordgo"

// Bit-to-name table for the permission bits commands care about. Names follow
// the snake_case spelling Discord uses in its own error payloads.
var permissionNames = []struct {
	bit  int64
	name string
}{
	{discordgo.PermissionCreateInstantInvite, "create_instant_invite"},
	{discordgo.PermissionKickMembers, "kick_members"},
	{discordgo.PermissionBanMembers, "ban_members"},
	{discordgo.PermissionAdministrator, "administrator"},
	{discordgo.PermissionManageChannels, "manage_channels"},
	{discordgo.PermissionManageServer, "manage_guild"},
	{discordgo.PermissionAddReactions, "add_reactions"},
	{discordgo.PermissionViewAuditLogs, "view_audit_log"},
	{discordgo.PermissionViewChannel, "view_channel"},
	{discordgo.PermissionSendMessages, "send_messages"},
	{discordgo.PermissionSendTTSMessages, "send_tts_messages"},
	{discordgo.PermissionManageMessages, "manage_messages"},
	{discordgo.PermissionEmbedLinks, "embed_links"},
	{discordgo.PermissionAttachFiles, "attach_files"},
	{discordgo.PermissionReadMessageHistory, "read_message_history"},
	{discordgo.PermissionMentionEveryone, "mention_everyone"},
	{discordgo.PermissionUseExternalEmojis, "use_external_emojis"},
	{discordgo.PermissionVoiceMuteMembers, "mute_members"},
	{discordgo.PermissionVoiceDeafenMembers, "deafen_members"},
	{discordgo.PermissionVoiceMoveMembers, "move_members"},
	{discordgo.PermissionChangeNickname, "change_nickname"},
	{discordgo.PermissionManageNicknames, "manage_nicknames"},
	{discordgo.PermissionManageRoles, "manage_roles"},
	{discordgo.PermissionManageWebhooks, "manage_webhooks"},
	{discordgo.PermissionManageThreads, "manage_threads"},
	{discordgo.PermissionModerateMembers, "moderate_members"},
}

// PermissionNames expands a permission bitmask into human-readable names,
// lowest bit first. Bits without a known name are dropped.
func PermissionNames(perms int64) []string {
	names := make([]string, 0, 4)
	for _, p := range permissionNames {
		if perms&p.bit != 0 {
			names = append(names, p.name)
		}
	}
	return names
}
