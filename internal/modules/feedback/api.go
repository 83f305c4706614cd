// Package feedback provides bot module relaying user feedback to the operator channel
package feedback

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/kagari-bot/kagari/internal/bot"
	"github.com/kagari-bot/kagari/internal/modules/auth"
	"github.com/kagari-bot/kagari/internal/modules/cooldown"
	"github.com/kagari-bot/kagari/internal/router"
)

const embedColor = 0x738bd7

const dmNotice = "\n\n*This is a DM sent because you had previously requested" +
	" feedback or I found a bug in a command you used, I do not monitor this DM.*"

var (
	// ErrNoContent is returned when no feedback text is supplied
	ErrNoContent = errors.New("no feedback content given")
	// ErrInvalidArgumentNumber is returned when invalid number of arguments is supplied
	ErrInvalidArgumentNumber = errors.New("invalid argument number")
)

// New provides module instance
func New() bot.Module {
	return &module{}
}

type module struct {
	config *bot.Configuration
	store  *store
}

func (mod *module) Initialize(config *bot.Configuration) error {
	mod.config = config

	if dsn := config.Config.Private.Feedback.LogDB; dsn != "" {
		st, err := openStore(dsn)
		if err != nil {
			return err
		}

		mod.store = st
	}

	group := config.Router.Group("feedback").SetDescription("feedback relay")

	group.On("feedback", "sends feedback about the bot to the operators", mod.commandFeedback).
		Set(cooldown.RouteConfigKey, &cooldown.RouteConfig{
			Per:   time.Minute,
			Burst: 1,
		})

	group.On("pm", "sends a direct message to a user", mod.commandPM).
		Set(auth.RouteConfigKey, &auth.RouteConfig{
			OwnerOnly: true,
		}).
		SetHidden()

	return nil
}

func (mod *module) Configure(*bot.Configuration, *discordgo.Guild) {

}

func (mod *module) Shutdown(*bot.Configuration) {
	if mod.store != nil {
		mod.store.close()
	}
}

func (mod *module) commandFeedback(ctx *router.Context) error {
	content := ctx.Args.Join(1)
	if content == "" {
		return ErrNoContent
	}

	channelID := mod.config.Config.Private.Feedback.ChannelID
	if channelID == "" {
		return bot.ErrNoReply
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Feedback",
		Color:       embedColor,
		Description: content,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    ctx.Message.Author.String(),
			IconURL: ctx.Message.Author.AvatarURL("256"),
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Author ID: " + ctx.Message.Author.ID,
		},
	}

	if t := ctx.Message.Timestamp; !t.IsZero() {
		embed.Timestamp = t.UTC().Format(time.RFC3339)
	}

	if guild, err := mod.config.Discord.State.Guild(ctx.Message.GuildID); err == nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Server",
			Value: fmt.Sprintf("%s (ID: %s)", guild.Name, guild.ID),
		})
	}

	channelName := ctx.Message.ChannelID
	if channel, err := mod.config.Discord.State.Channel(ctx.Message.ChannelID); err == nil {
		channelName = channel.Name
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Channel",
		Value: fmt.Sprintf("%s (ID: %s)", channelName, ctx.Message.ChannelID),
	})

	_, err := mod.config.Discord.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return err
	}

	if mod.store != nil {
		err = mod.store.record(ctx.Message.GuildID, ctx.Message.ChannelID, ctx.Message.Author.ID, content)
		if err != nil {
			mod.config.Log.WithError(err).Error("Recording feedback")
		}
	}

	_, err = ctx.Reply("Successfully sent feedback")
	if err != nil {
		return err
	}

	return nil
}

func (mod *module) commandPM(ctx *router.Context) error {
	if len(ctx.Args) < 3 {
		return ErrInvalidArgumentNumber
	}

	userID := ctx.Args.Get(1)
	content := ctx.Args.Join(2) + dmNotice

	// a failed DM is reported, never propagated
	channel, err := mod.config.Discord.UserChannelCreate(userID)
	if err == nil {
		_, err = mod.config.Discord.ChannelMessageSend(channel.ID, content)
	}

	if err != nil {
		return fmt.Errorf("Could not PM user by ID %s.", userID)
	}

	_, err = ctx.Reply("PM successfully sent.")
	if err != nil {
		return err
	}

	return nil
}
