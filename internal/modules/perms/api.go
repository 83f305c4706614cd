// Package perms provides bot module for permission inspection commands
package perms

import (
	"errors"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kagari-bot/kagari/internal/bot"
	"github.com/kagari-bot/kagari/internal/modules/auth"
	"github.com/kagari-bot/kagari/internal/permissions"
	"github.com/kagari-bot/kagari/internal/router"
)

var (
	// ErrGuildNotFound is returned when guild ID does not resolve
	ErrGuildNotFound = errors.New("Guild not found?")
	// ErrChannelNotFound is returned when channel reference does not resolve
	ErrChannelNotFound = errors.New("Channel not found?")
	// ErrMemberNotFound is returned when member reference does not resolve
	ErrMemberNotFound = errors.New("Member not found?")
	// ErrInvalidArgumentNumber is returned when invalid number of arguments is supplied
	ErrInvalidArgumentNumber = errors.New("invalid argument number")
)

var (
	reMemberRef  = regexp.MustCompile(`^(?:<@!?(\d+)>|(\d+))$`)
	reChannelRef = regexp.MustCompile(`^(?:<#(\d+)>|(\d+))$`)
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

	group := config.Router.Group("permissions").SetDescription("permission inspection")

	group.On("permissions", "shows a member's permissions in a channel", mod.commandPermissions)
	group.On("botpermissions", "shows the bot's permissions in a channel", mod.commandBotPermissions).
		Set(auth.RouteConfigKey, &auth.RouteConfig{
			Permissions: discordgo.PermissionManageRoles,
		})
	group.On("debugpermissions", "resolves permissions for arbitrary guild/channel/member", mod.commandDebugPermissions).
		Set(auth.RouteConfigKey, &auth.RouteConfig{
			OwnerOnly: true,
		})

	return nil
}

func (mod *module) Configure(*bot.Configuration, *discordgo.Guild) {

}

func (mod *module) Shutdown(*bot.Configuration) {

}

func refID(re *regexp.Regexp, arg string) string {
	groups := re.FindStringSubmatch(arg)
	if groups == nil {
		return ""
	}

	if groups[1] != "" {
		return groups[1]
	}

	return groups[2]
}

func (mod *module) member(guildID, arg, fallback string) (*discordgo.Member, error) {
	userID := fallback

	if arg != "" {
		userID = refID(reMemberRef, arg)
		if userID == "" {
			return nil, ErrMemberNotFound
		}
	}

	member, err := mod.config.Discord.State.Member(guildID, userID)
	if err != nil || member.User == nil {
		return nil, ErrMemberNotFound
	}

	return member, nil
}

func (mod *module) channel(guildID, arg, fallback string) (*discordgo.Channel, error) {
	channelID := fallback

	if arg != "" {
		channelID = refID(reChannelRef, arg)
		if channelID == "" {
			return nil, ErrChannelNotFound
		}
	}

	channel, err := mod.config.Discord.State.Channel(channelID)
	if err != nil || channel.GuildID != guildID {
		return nil, ErrChannelNotFound
	}

	return channel, nil
}

func (mod *module) sayPermissions(
	ctx *router.Context,
	guild *discordgo.Guild,
	channel *discordgo.Channel,
	member *discordgo.Member,
) error {
	perms := permissions.Apparent(guild, channel, member)
	allowed, denied := permissions.Names(perms)

	err := ctx.ReplyEmbedCustom(&discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name:    member.User.String(),
			IconURL: member.User.AvatarURL("256"),
		},
		Title: "Permissions in #" + channel.Name,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Allowed",
				Value:  strings.Join(allowed, "\n"),
				Inline: true,
			},
			{
				Name:   "Denied",
				Value:  strings.Join(denied, "\n"),
				Inline: true,
			},
		},
	})
	if err != nil {
		return err
	}

	return bot.ErrNoReply
}

func (mod *module) commandPermissions(ctx *router.Context) error {
	guild, err := mod.config.Discord.State.Guild(ctx.Message.GuildID)
	if err != nil {
		return ErrGuildNotFound
	}

	member, err := mod.member(guild.ID, ctx.Args.Get(1), ctx.Message.Author.ID)
	if err != nil {
		return err
	}

	channel, err := mod.channel(guild.ID, ctx.Args.Get(2), ctx.Message.ChannelID)
	if err != nil {
		return err
	}

	return mod.sayPermissions(ctx, guild, channel, member)
}

func (mod *module) commandBotPermissions(ctx *router.Context) error {
	guild, err := mod.config.Discord.State.Guild(ctx.Message.GuildID)
	if err != nil {
		return ErrGuildNotFound
	}

	member, err := mod.member(guild.ID, "", mod.config.Discord.State.User.ID)
	if err != nil {
		return err
	}

	channel, err := mod.channel(guild.ID, ctx.Args.Get(1), ctx.Message.ChannelID)
	if err != nil {
		return err
	}

	return mod.sayPermissions(ctx, guild, channel, member)
}

func (mod *module) commandDebugPermissions(ctx *router.Context) error {
	if len(ctx.Args) < 3 {
		return ErrInvalidArgumentNumber
	}

	guild, err := mod.config.Discord.State.Guild(ctx.Args.Get(1))
	if err != nil {
		return ErrGuildNotFound
	}

	channel, err := mod.channel(guild.ID, ctx.Args.Get(2), "")
	if err != nil {
		return err
	}

	member, err := mod.member(guild.ID, ctx.Args.Get(3), mod.config.Discord.State.User.ID)
	if err != nil {
		return err
	}

	return mod.sayPermissions(ctx, guild, channel, member)
}
