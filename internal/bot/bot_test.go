package bot

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/bwmarrin/discordgo"
	redis "github.com/go-redis/redis/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kagari-bot/kagari/internal/config"
)

func setupBot(t *testing.T, root *config.Root) *Bot {
	t.Helper()

	mini, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(mini.Close)

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
	})

	session := &discordgo.Session{State: discordgo.NewState()}
	session.State.User = &discordgo.User{ID: "42"}

	b, err := NewBot(Options{
		Discord: session,
		Client:  client,
		Config:  root,
	})
	require.NoError(t, err)

	return b
}

func TestMentionPrefixes(t *testing.T) {
	b := setupBot(t, &config.Root{})

	assert.Equal(t, []string{"<@42> ", "<@!42> "}, b.MentionPrefixes())
}

func TestIsMentionPrefix(t *testing.T) {
	b := setupBot(t, &config.Root{})

	tests := []struct {
		prefix   string
		expected bool
	}{
		{"<@42>", true},
		{"<@42> ", true},
		{"<@!42>", true},
		{"<@!42> hey", true},
		{"!", false},
		{"<@43>", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.expected, b.IsMentionPrefix(tt.prefix))
		})
	}
}

func TestConfigureSeedsServerPrefixes(t *testing.T) {
	b := setupBot(t, &config.Root{
		Servers: []config.Server{
			{GuildID: "g1", Prefixes: []string{"$", "%"}},
		},
		Private: config.Private{Prefix: "!"},
	})

	b.configure(b.guild("g1"), &discordgo.Guild{ID: "g1"})

	assert.Equal(t, []string{"$", "%"}, b.RawGuildPrefixes("g1"))

	stored, err := b.Repository.PrefixesGet("g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"$", "%"}, stored)
}

func TestConfigureSeedsDefaultPrefix(t *testing.T) {
	b := setupBot(t, &config.Root{
		Private: config.Private{Prefix: "!"},
	})

	b.configure(b.guild("g1"), &discordgo.Guild{ID: "g1"})

	assert.Equal(t, []string{"!"}, b.RawGuildPrefixes("g1"))
}

func TestConfigureKeepsClearedPrefixes(t *testing.T) {
	b := setupBot(t, &config.Root{
		Private: config.Private{Prefix: "!"},
	})

	require.NoError(t, b.Repository.PrefixesSet("g1", []string{}))

	b.configure(b.guild("g1"), &discordgo.Guild{ID: "g1"})

	assert.Empty(t, b.RawGuildPrefixes("g1"))
	assert.Equal(t, []string{"<@42> ", "<@!42> "}, b.GuildPrefixes("g1"))
}

func TestIsOwner(t *testing.T) {
	b := setupBot(t, &config.Root{
		Private: config.Private{Owners: []string{"7"}},
	})

	assert.True(t, b.IsOwner("7"))
	assert.False(t, b.IsOwner("8"))
}
