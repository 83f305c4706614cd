// Package prefix provides bot module for managing per-server command prefixes
package prefix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kagari-bot/kagari/internal/bot"
	"github.com/kagari-bot/kagari/internal/modules/auth"
	"github.com/kagari-bot/kagari/internal/router"
)

const embedColor = 0x7289da

var (
	// ErrInvalidArgumentNumber is returned when invalid number of arguments is supplied
	ErrInvalidArgumentNumber = errors.New("invalid argument number")
	// ErrTooManyPrefixes is returned when more than one prefix is supplied at once
	ErrTooManyPrefixes = errors.New("you've given too many prefixes, either quote it or only do it one by one")
	// ErrReservedPrefix is returned when supplied prefix starts with bot mention
	ErrReservedPrefix = errors.New("that is a reserved prefix already in use")
	// ErrDuplicatePrefix is returned when supplied prefix is already registered
	ErrDuplicatePrefix = errors.New("that prefix is already registered")
	// ErrUnknownPrefix is returned when removing prefix that is not registered
	ErrUnknownPrefix = errors.New("I do not have this prefix registered.")
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

	mod.config.Log.Info("Initializing prefix module")

	group := config.Router.Group("prefix").SetDescription("custom prefix management")

	group.On("prefix", "lists custom prefixes", mod.commandList)

	mode := &auth.RouteConfig{
		Permissions: discordgo.PermissionManageServer,
	}

	group.On("prefix.add", "appends a custom prefix", mod.commandAdd).Set(auth.RouteConfigKey, mode)
	group.OnAlias("prefix.remove", "removes a custom prefix",
		[]string{"prefix.delete"}, mod.commandRemove).Set(auth.RouteConfigKey, mode)
	group.On("prefix.clear", "removes all custom prefixes", mod.commandClear).Set(auth.RouteConfigKey, mode)

	return nil
}

func (mod *module) Configure(*bot.Configuration, *discordgo.Guild) {

}

func (mod *module) Shutdown(*bot.Configuration) {

}

// displayList drops the reserved second entry and stray mention forms
// past the head before user-facing rendering
func displayList(prefixes []string, isMention func(string) bool) (display []string) {
	for i, p := range prefixes {
		if i == 1 {
			continue
		}

		if i > 0 && isMention(p) {
			continue
		}

		display = append(display, p)
	}

	return
}

func (mod *module) commandList(ctx *router.Context) error {
	prefixes := displayList(mod.config.GuildPrefixes(ctx.Message.GuildID), mod.config.IsMentionPrefix)

	buf := &strings.Builder{}

	for i, p := range prefixes {
		_, _ = fmt.Fprintf(buf, "%d. %s\n", i+1, p)
	}

	err := ctx.ReplyEmbedCustom(&discordgo.MessageEmbed{
		Title:       "Prefixes",
		Color:       embedColor,
		Description: buf.String(),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d prefixes", len(prefixes)),
		},
	})
	if err != nil {
		return err
	}

	return bot.ErrNoReply
}

func (mod *module) argument(ctx *router.Context) (string, error) {
	if len(ctx.Args) < 2 {
		return "", ErrInvalidArgumentNumber
	}

	if len(ctx.Args) > 2 {
		return "", ErrTooManyPrefixes
	}

	prefix := ctx.Args.Get(1)

	if mod.config.IsMentionPrefix(prefix) {
		return "", ErrReservedPrefix
	}

	return prefix, nil
}

func (mod *module) commandAdd(ctx *router.Context) error {
	prefix, err := mod.argument(ctx)
	if err != nil {
		return err
	}

	current := mod.config.RawGuildPrefixes(ctx.Message.GuildID)

	for _, p := range current {
		if p == prefix {
			return ErrDuplicatePrefix
		}
	}

	return mod.config.SetGuildPrefixes(ctx.Message.GuildID, append(current, prefix))
}

func (mod *module) commandRemove(ctx *router.Context) error {
	prefix, err := mod.argument(ctx)
	if err != nil {
		return err
	}

	current := mod.config.RawGuildPrefixes(ctx.Message.GuildID)

	found := false
	next := current[:0]

	for _, p := range current {
		if p == prefix && !found {
			found = true
			continue
		}

		next = append(next, p)
	}

	if !found {
		return ErrUnknownPrefix
	}

	return mod.config.SetGuildPrefixes(ctx.Message.GuildID, next)
}

func (mod *module) commandClear(ctx *router.Context) error {
	return mod.config.SetGuildPrefixes(ctx.Message.GuildID, []string{})
}
