package auth

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kagari-bot/kagari/internal/bot"
	"github.com/kagari-bot/kagari/internal/config"
	"github.com/kagari-bot/kagari/internal/router"
)

func setupModule(t *testing.T) *module {
	t.Helper()

	session := &discordgo.Session{State: discordgo.NewState()}
	session.State.User = &discordgo.User{ID: "99"}

	require.NoError(t, session.State.GuildAdd(&discordgo.Guild{
		ID:      "g1",
		OwnerID: "10",
		Roles: []*discordgo.Role{
			{ID: "100", Permissions: discordgo.PermissionManageServer},
		},
	}))

	mod := New().(*module)
	mod.config = &bot.Configuration{
		Discord: session,
		Config: &config.Root{
			Private: config.Private{Owners: []string{"1"}},
		},
		Log: logrus.New(),
	}

	return mod
}

func memberMessage(userID string, roles ...string) *discordgo.Message {
	return &discordgo.Message{
		GuildID: "g1",
		Author:  &discordgo.User{ID: userID},
		Member:  &discordgo.Member{GuildID: "g1", Roles: roles},
	}
}

func TestCheckPermissions(t *testing.T) {
	mod := setupModule(t)

	tests := []struct {
		name     string
		msg      *discordgo.Message
		conf     *RouteConfig
		expected bool
	}{
		{
			name:     "bot owner always passes",
			msg:      memberMessage("1"),
			conf:     &RouteConfig{OwnerOnly: true},
			expected: true,
		},
		{
			name:     "owner only rejects others",
			msg:      memberMessage("5", "100"),
			conf:     &RouteConfig{OwnerOnly: true},
			expected: false,
		},
		{
			name:     "matching role permission",
			msg:      memberMessage("5", "100"),
			conf:     &RouteConfig{Permissions: discordgo.PermissionManageServer},
			expected: true,
		},
		{
			name:     "missing role permission",
			msg:      memberMessage("5"),
			conf:     &RouteConfig{Permissions: discordgo.PermissionManageServer},
			expected: false,
		},
		{
			name:     "guild owner bypasses",
			msg:      memberMessage("10"),
			conf:     &RouteConfig{Permissions: discordgo.PermissionManageServer},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mod.checkPermissions(&router.Context{Message: tt.msg}, tt.conf))
		})
	}
}

func TestMiddlewareAuthUnconfigured(t *testing.T) {
	mod := setupModule(t)

	invoked := false

	wrapped := mod.middlewareAuth(func(ctx *router.Context) error {
		invoked = true
		return nil
	})

	r := router.NewRouter()
	route := r.On("test", "open", "test route", nil)

	require.NoError(t, wrapped(&router.Context{
		Message: memberMessage("5"),
		Route:   route,
	}))
	assert.True(t, invoked)
}

func TestMiddlewareAuthRejects(t *testing.T) {
	mod := setupModule(t)

	wrapped := mod.middlewareAuth(func(ctx *router.Context) error {
		return nil
	})

	r := router.NewRouter()
	route := r.On("test", "guarded", "test route", nil).
		Set(RouteConfigKey, &RouteConfig{OwnerOnly: true})

	assert.Equal(t, ErrNotAuthorized, wrapped(&router.Context{
		Message: memberMessage("5"),
		Route:   route,
	}))
}
