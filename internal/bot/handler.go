package bot

import (
	"github.com/bwmarrin/discordgo"
)

func (bot *Bot) handlerMessageCreate(session *discordgo.Session, messageCreate *discordgo.MessageCreate) {
	if messageCreate.GuildID == "" {
		return
	}

	prefixes := bot.GuildPrefixes(messageCreate.GuildID)

	_ = bot.Router.Dispatch(session, prefixes, session.State.User.ID, messageCreate.Message)
}

func (bot *Bot) handlerMessageUpdate(session *discordgo.Session, messageUpdate *discordgo.MessageUpdate) {
	if messageUpdate.GuildID == "" {
		return
	}

	msg, err := session.ChannelMessage(messageUpdate.ChannelID, messageUpdate.ID)
	if err != nil {
		bot.Log.WithError(err).Error("Getting message", messageUpdate.ID)
		return
	}

	for _, r := range msg.Reactions {
		if r.Me {
			return
		}
	}

	msg.GuildID = messageUpdate.GuildID

	prefixes := bot.GuildPrefixes(messageUpdate.GuildID)

	_ = bot.Router.Dispatch(session, prefixes, session.State.User.ID, msg)
}

func (bot *Bot) handlerGuildCreate(_ *discordgo.Session, guildCreate *discordgo.GuildCreate) {
	s := bot.guild(guildCreate.ID)

	bot.configure(s, guildCreate.Guild)

	for _, m := range bot.Modules {
		m.Configure(&bot.Configuration, guildCreate.Guild)
	}
}
