// Package help provides bot module for command help message
package help

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kagari-bot/kagari/internal/bot"
	"github.com/kagari-bot/kagari/internal/router"
)

// New provides module instance
func New() bot.Module {
	return &module{}
}

type module struct {
	config *bot.Configuration
}

func (mod *module) Initialize(config *bot.Configuration) error {
	mod.config = config

	config.Router.Group("info").SetDescription("informational").On("help", "prints help", mod.commandHelp)

	return nil
}

func (mod *module) Configure(*bot.Configuration, *discordgo.Guild) {

}

func (mod *module) Shutdown(*bot.Configuration) {

}

func (mod *module) commandHelp(ctx *router.Context) error {
	max := 0

	for _, v := range ctx.Route.Router.Routes {
		if v.Hidden {
			continue
		}

		if len(v.Name) > max {
			max = len(v.Name)
		}
	}

	buf := &strings.Builder{}

	buf.WriteString("```\n")

	for _, g := range ctx.Route.Router.Groups {
		_, _ = buf.WriteString("\n==" + strings.ToUpper(g.Name) + "==\n")

		for _, v := range g.Routes {
			if v.Hidden {
				continue
			}

			_, _ = buf.WriteString(strings.Repeat(" ", max-len(v.Name)))
			_, _ = buf.WriteString(v.Name)
			_, _ = buf.WriteString(": ")
			_, _ = buf.WriteString(v.Description)

			if len(v.Alias) > 0 {
				_, _ = buf.WriteString(" (alias: " + strings.Join(v.Alias, ", ") + ")")
			}

			buf.WriteString("\n")
		}
	}

	buf.WriteString("```")

	return ctx.ReplyEmbed(buf.String())
}
