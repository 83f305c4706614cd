package info

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kagari-bot/kagari/internal/bot"
	"github.com/kagari-bot/kagari/internal/router"
)

func TestCommandNames(t *testing.T) {
	mod := New().(*module)

	conf := &bot.Configuration{Router: router.NewRouter()}
	require.NoError(t, mod.Initialize(conf))

	route, ok := conf.Router.Routes["info"]
	require.True(t, ok)

	assert.True(t, route.Matcher("info"))
	assert.True(t, route.Matcher("userinfo"))

	serverinfo, ok := conf.Router.Routes["serverinfo"]
	require.True(t, ok)
	assert.True(t, serverinfo.Matcher("guildinfo"))
}

func charinfoContext(text string) *router.Context {
	args := router.Args{"charinfo"}
	if text != "" {
		args = append(args, text)
	}

	return &router.Context{
		Message: &discordgo.Message{Author: &discordgo.User{ID: "5"}},
		Args:    args,
	}
}

func TestCommandCharinfoEmpty(t *testing.T) {
	mod := New().(*module)

	assert.Equal(t, ErrNoCharacters, mod.commandCharinfo(charinfoContext("")))
}

func TestCommandCharinfoLimit(t *testing.T) {
	mod := New().(*module)

	assert.Equal(t, ErrTooManyCharacters, mod.commandCharinfo(charinfoContext(strings.Repeat("a", 26))))
}
