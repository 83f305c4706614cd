// Package info provides bot module for user and character information lookups
package info

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/kagari-bot/kagari/internal/bot"
	"github.com/kagari-bot/kagari/internal/router"
)

const charinfoLimit = 25

var (
	// ErrNoCharacters is returned when charinfo is invoked without text
	ErrNoCharacters = errors.New("no characters given")
	// ErrTooManyCharacters is returned when charinfo input is over the limit
	ErrTooManyCharacters = errors.New("too many characters (25 maximum)")
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

	group := config.Router.Group("info").SetDescription("informational")

	group.On("charinfo", "shows unicode information on characters", mod.commandCharinfo)
	group.On("avatar", "shows enlarged avatar of a user", mod.commandAvatar)
	group.OnAlias("info", "shows information on a user", []string{"userinfo"}, mod.commandInfo)
	group.OnAlias("serverinfo", "shows information on the server", []string{"guildinfo"}, mod.commandServerinfo)

	return nil
}

func (mod *module) Configure(*bot.Configuration, *discordgo.Guild) {

}

func (mod *module) Shutdown(*bot.Configuration) {

}

func (mod *module) commandCharinfo(ctx *router.Context) error {
	chars := []rune(ctx.Args.Join(1))

	if len(chars) == 0 {
		return ErrNoCharacters
	}

	if len(chars) > charinfoLimit {
		return ErrTooManyCharacters
	}

	lines := make([]string, 0, len(chars))
	for _, r := range chars {
		lines = append(lines, charLine(r))
	}

	_, err := ctx.Reply(strings.Join(lines, "\n"))
	if err != nil {
		return err
	}

	return bot.ErrNoReply
}

func (mod *module) commandAvatar(ctx *router.Context) error {
	resolved, err := resolveUser(mod.config, ctx.Message, ctx.Args.Get(1))
	if err != nil {
		return err
	}

	avatar := resolved.user.AvatarURL("1024")

	err = ctx.ReplyEmbedCustom(&discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name: resolved.user.String(),
			URL:  avatar,
		},
		Image: &discordgo.MessageEmbedImage{
			URL: avatar,
		},
	})
	if err != nil {
		return err
	}

	return bot.ErrNoReply
}

func (mod *module) sharedGuilds(userID string) (shared int) {
	for _, g := range mod.config.Discord.State.Guilds {
		if _, err := mod.config.Discord.State.Member(g.ID, userID); err == nil {
			shared++
		}
	}

	return
}

func (mod *module) memberRoles(guildID string, member *discordgo.Member) (names []string, color int) {
	position := -1

	for _, roleID := range member.Roles {
		role, err := mod.config.Discord.State.Role(guildID, roleID)
		if err != nil {
			continue
		}

		names = append(names, escapeRoleName(role.Name))

		if role.Color != 0 && role.Position > position {
			position = role.Position
			color = role.Color
		}
	}

	return
}

func (mod *module) voiceField(guildID, userID string) string {
	guild, err := mod.config.Discord.State.Guild(guildID)
	if err != nil {
		return ""
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID != userID {
			continue
		}

		channel, err := mod.config.Discord.State.Channel(vs.ChannelID)
		if err != nil {
			return ""
		}

		others := 0

		for _, o := range guild.VoiceStates {
			if o.ChannelID == vs.ChannelID && o.UserID != userID {
				others++
			}
		}

		if others > 0 {
			return fmt.Sprintf("%s with %d others", channel.Name, others)
		}

		return fmt.Sprintf("%s by themselves", channel.Name)
	}

	return ""
}

func (mod *module) commandInfo(ctx *router.Context) error {
	resolved, err := resolveUser(mod.config, ctx.Message, ctx.Args.Get(1))
	if err != nil {
		return err
	}

	user := resolved.user

	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name: user.String(),
		},
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "ID",
		Value: user.ID,
	})

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Servers",
		Value: fmt.Sprintf("%d shared", mod.sharedGuilds(user.ID)),
	})

	joined := "N/A"

	if resolved.member != nil {
		if t := resolved.member.JoinedAt; !t.IsZero() {
			joined = formatDate(t)
		}
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Joined",
		Value: joined,
	})

	created := "N/A"

	if t, err := discordgo.SnowflakeTimestamp(user.ID); err == nil {
		created = formatDate(t)
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Created",
		Value: created,
	})

	if voice := mod.voiceField(ctx.Message.GuildID, user.ID); voice != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Voice",
			Value: voice,
		})
	}

	if resolved.member != nil {
		roles, color := mod.memberRoles(ctx.Message.GuildID, resolved.member)

		if len(roles) > 0 {
			value := strings.Join(roles, ", ")
			if len(roles) >= 10 {
				value = fmt.Sprintf("%d roles", len(roles))
			}

			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Roles",
				Value: value,
			})
		}

		if color != 0 {
			embed.Color = color

			hex := colorful.Color{
				R: float64((color>>16)&0xff) / 255,
				G: float64((color>>8)&0xff) / 255,
				B: float64(color&0xff) / 255,
			}.Hex()

			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Colour",
				Value: hex,
			})
		}
	}

	if user.Avatar != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{
			URL: user.AvatarURL("256"),
		}
	}

	if resolved.member == nil {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: "This member is not in this server.",
		}
	}

	err = ctx.ReplyEmbedCustom(embed)
	if err != nil {
		return err
	}

	return bot.ErrNoReply
}
