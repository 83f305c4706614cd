package bot

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

type server struct {
	m        *sync.RWMutex
	prefixes []string
}

func (bot *Bot) guild(guildID string) *server {
	bot.m.Lock()
	defer bot.m.Unlock()

	s, ok := bot.servers[guildID]
	if !ok {
		s = &server{
			m: &sync.RWMutex{},
		}
		bot.servers[guildID] = s
	}

	return s
}

func (bot *Bot) configure(s *server, guild *discordgo.Guild) {
	prefixes, err := bot.Repository.PrefixesGet(guild.ID)
	if err != nil {
		bot.Log.WithError(err).Error("Getting server prefixes", guild.ID)
		return
	}

	if prefixes == nil {
		for _, srv := range bot.Config.Servers {
			if srv.GuildID == guild.ID {
				prefixes = srv.Prefixes
			}
		}

		if prefixes == nil && bot.Config.Private.Prefix != "" {
			prefixes = []string{bot.Config.Private.Prefix}
		}

		if prefixes == nil {
			prefixes = []string{}
		}

		err = bot.Repository.PrefixesSet(guild.ID, prefixes)
		if err != nil {
			bot.Log.WithError(err).Error("Saving server prefixes", guild.ID)
		}
	}

	s.m.Lock()
	s.prefixes = prefixes
	s.m.Unlock()
}
