package permissions

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestOverwrite(t *testing.T) {
	const bit = int64(discordgo.PermissionSendMessages)

	tests := []struct {
		name     string
		base     int64
		allow    int64
		deny     int64
		expected int64
	}{
		{name: "no overwrites keep base", base: bit, expected: bit},
		{name: "deny clears base", base: bit, deny: bit, expected: 0},
		{name: "allow grants missing", allow: bit, expected: bit},
		{name: "allow overrides deny on the same bit", base: bit, allow: bit, deny: bit, expected: bit},
		{name: "unset stays unset", base: 0, expected: 0},
		{name: "deny on unset bit is no-op", deny: bit, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overwrite(tt.base, tt.allow, tt.deny))
		})
	}
}

func TestOverwriteAllCombinations(t *testing.T) {
	for _, named := range Table {
		for _, base := range []int64{0, named.Bit} {
			for _, allow := range []int64{0, named.Bit} {
				for _, deny := range []int64{0, named.Bit} {
					expected := (base &^ deny) | allow

					assert.Equal(t, expected, Overwrite(base, allow, deny)&named.Bit,
						"bit %s base=%d allow=%d deny=%d", named.Name, base, allow, deny)
				}
			}
		}
	}
}

func testGuild() *discordgo.Guild {
	return &discordgo.Guild{
		ID:      "100",
		OwnerID: "1",
		Roles: []*discordgo.Role{
			{
				ID:          "100",
				Permissions: discordgo.PermissionReadMessages | discordgo.PermissionSendMessages,
			},
			{
				ID:          "101",
				Permissions: discordgo.PermissionManageMessages,
			},
			{
				ID:          "102",
				Permissions: discordgo.PermissionAdministrator,
			},
		},
	}
}

func TestEveryoneChannel(t *testing.T) {
	guild := testGuild()

	channel := &discordgo.Channel{
		ID:      "200",
		GuildID: "100",
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				ID:   "100",
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionReadMessages,
			},
		},
	}

	perms := EveryoneChannel(guild, channel)

	assert.Zero(t, perms&discordgo.PermissionReadMessages)
	assert.NotZero(t, perms&discordgo.PermissionSendMessages)
}

func TestApparent(t *testing.T) {
	tests := []struct {
		name       string
		member     *discordgo.Member
		overwrites []*discordgo.PermissionOverwrite
		check      func(t *testing.T, perms int64)
	}{
		{
			name:   "owner has all permissions",
			member: &discordgo.Member{User: &discordgo.User{ID: "1"}},
			check: func(t *testing.T, perms int64) {
				assert.Equal(t, int64(discordgo.PermissionAll), perms)
			},
		},
		{
			name:   "administrator role grants all",
			member: &discordgo.Member{User: &discordgo.User{ID: "2"}, Roles: []string{"102"}},
			check: func(t *testing.T, perms int64) {
				assert.Equal(t, int64(discordgo.PermissionAll), perms)
			},
		},
		{
			name:   "plain member inherits everyone base and role union",
			member: &discordgo.Member{User: &discordgo.User{ID: "2"}, Roles: []string{"101"}},
			check: func(t *testing.T, perms int64) {
				assert.NotZero(t, perms&discordgo.PermissionReadMessages)
				assert.NotZero(t, perms&discordgo.PermissionManageMessages)
				assert.Zero(t, perms&discordgo.PermissionBanMembers)
			},
		},
		{
			name:   "everyone deny overwrite hides channel",
			member: &discordgo.Member{User: &discordgo.User{ID: "2"}},
			overwrites: []*discordgo.PermissionOverwrite{
				{ID: "100", Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionReadMessages},
			},
			check: func(t *testing.T, perms int64) {
				assert.Zero(t, perms&discordgo.PermissionReadMessages)
			},
		},
		{
			name:   "role allow overrides everyone deny",
			member: &discordgo.Member{User: &discordgo.User{ID: "2"}, Roles: []string{"101"}},
			overwrites: []*discordgo.PermissionOverwrite{
				{ID: "100", Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionReadMessages},
				{ID: "101", Type: discordgo.PermissionOverwriteTypeRole, Allow: discordgo.PermissionReadMessages},
			},
			check: func(t *testing.T, perms int64) {
				assert.NotZero(t, perms&discordgo.PermissionReadMessages)
			},
		},
		{
			name:   "member overwrite takes precedence over role overwrite",
			member: &discordgo.Member{User: &discordgo.User{ID: "2"}, Roles: []string{"101"}},
			overwrites: []*discordgo.PermissionOverwrite{
				{ID: "101", Type: discordgo.PermissionOverwriteTypeRole, Allow: discordgo.PermissionBanMembers},
				{ID: "2", Type: discordgo.PermissionOverwriteTypeMember, Deny: discordgo.PermissionBanMembers},
			},
			check: func(t *testing.T, perms int64) {
				assert.Zero(t, perms&discordgo.PermissionBanMembers)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			channel := &discordgo.Channel{
				ID:                   "200",
				GuildID:              "100",
				PermissionOverwrites: tt.overwrites,
			}

			tt.check(t, Apparent(testGuild(), channel, tt.member))
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{name: "manage_guild", expected: "Manage Server"},
		{name: "read_messages", expected: "Read Messages"},
		{name: "use_voice_activation", expected: "Use Voice Activation"},
		{name: "administrator", expected: "Administrator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DisplayName(tt.name))
		})
	}
}

func TestNames(t *testing.T) {
	allowed, denied := Names(discordgo.PermissionReadMessages | discordgo.PermissionVoiceConnect)

	assert.Contains(t, allowed, "Read Messages")
	assert.Contains(t, allowed, "Connect")
	assert.Contains(t, denied, "Send Messages")
	assert.Len(t, allowed, 2)
	assert.Len(t, denied, len(Table)-2)
}
