// Package bot provides main bot implementation
package bot

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	redis "github.com/go-redis/redis/v7"
	"github.com/sirupsen/logrus"

	"github.com/kagari-bot/kagari/internal/config"
	"github.com/kagari-bot/kagari/internal/model"
	"github.com/kagari-bot/kagari/internal/router"
)

// ErrNoReply special error value to avoid auto-reply
var ErrNoReply = errors.New("noreply")

// Options provide configuration options for bot
type Options struct {
	Discord *discordgo.Session
	Client  *redis.Client
	Config  *config.Root
	Log     *logrus.Logger
	Modules []Module
}

// Configuration store configuration for bot
type Configuration struct {
	Discord    *discordgo.Session
	Client     *redis.Client
	Config     *config.Root
	Log        *logrus.Logger
	Router     *router.Router
	Repository *model.Repository
	bot        *Bot
	Modules    []Module
}

// MentionPrefixes returns the two reserved mention forms of the bot identity
func (conf *Configuration) MentionPrefixes() []string {
	userID := conf.Discord.State.User.ID

	return []string{
		fmt.Sprintf("<@%s> ", userID),
		fmt.Sprintf("<@!%s> ", userID),
	}
}

// IsMentionPrefix reports whether prefix begins with either mention form of the bot
func (conf *Configuration) IsMentionPrefix(prefix string) bool {
	userID := conf.Discord.State.User.ID

	forms := []string{
		fmt.Sprintf("<@%s>", userID),
		fmt.Sprintf("<@!%s>", userID),
	}

	for _, f := range forms {
		if len(prefix) >= len(f) && prefix[:len(f)] == f {
			return true
		}
	}

	return false
}

// GuildPrefixes returns full ordered prefix union for guild: both
// mention forms followed by custom prefixes
func (conf *Configuration) GuildPrefixes(guildID string) []string {
	return append(conf.MentionPrefixes(), conf.RawGuildPrefixes(guildID)...)
}

// RawGuildPrefixes returns ordered custom prefixes for guild
func (conf *Configuration) RawGuildPrefixes(guildID string) []string {
	guild := conf.bot.guild(guildID)

	guild.m.RLock()
	defer guild.m.RUnlock()

	prefixes := make([]string, len(guild.prefixes))
	copy(prefixes, guild.prefixes)

	return prefixes
}

// SetGuildPrefixes replaces custom prefixes for guild and persists them
func (conf *Configuration) SetGuildPrefixes(guildID string, prefixes []string) error {
	err := conf.Repository.PrefixesSet(guildID, prefixes)
	if err != nil {
		return err
	}

	guild := conf.bot.guild(guildID)

	guild.m.Lock()
	guild.prefixes = prefixes
	guild.m.Unlock()

	return nil
}

// IsOwner reports whether user is one of configured bot owners
func (conf *Configuration) IsOwner(userID string) bool {
	for _, id := range conf.Config.Private.Owners {
		if id == userID {
			return true
		}
	}

	return false
}

func (conf *Configuration) ensureMember(msg *discordgo.Message) (*discordgo.Member, error) {
	if msg.Member != nil {
		if msg.Member.User == nil {
			msg.Member.User = msg.Author
		}

		return msg.Member, nil
	}

	var err error

	msg.Member, err = conf.Discord.GuildMember(msg.GuildID, msg.Author.ID)
	if err != nil {
		conf.Log.WithError(err).Error("Loading member", msg.GuildID, msg.Author.ID)

		return nil, err
	}

	return msg.Member, nil
}

// AuthorHasPermission returns true if message author has any of matching permissions
func (conf *Configuration) AuthorHasPermission(msg *discordgo.Message, permissions int64) bool {
	guild, _ := conf.Discord.State.Guild(msg.GuildID)
	if guild != nil && guild.OwnerID == msg.Author.ID {
		return true
	}

	member, err := conf.ensureMember(msg)
	if err != nil {
		return false
	}

	for _, r := range member.Roles {
		role, err := conf.Discord.State.Role(msg.GuildID, r)
		if err != nil {
			conf.Log.WithError(err).Error("Loading role", msg.GuildID, r)
			continue
		}

		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}

		if role.Permissions&permissions != 0 {
			return true
		}
	}

	return false
}

// Module interface incapsulates methods for distinct functionality
type Module interface {
	Initialize(bot *Configuration) error
	Configure(bot *Configuration, server *discordgo.Guild)
	Shutdown(bot *Configuration)
}

// NewBot provides new instance of bot
func NewBot(options Options) (*Bot, error) {
	if options.Log == nil {
		options.Log = logrus.New()
	}

	bot := &Bot{
		Configuration: Configuration{
			Discord:    options.Discord,
			Client:     options.Client,
			Config:     options.Config,
			Log:        options.Log,
			Router:     router.NewRouter(),
			Repository: model.NewRepository(options.Client),
			Modules:    options.Modules,
		},
		m:       &sync.RWMutex{},
		servers: make(map[string]*server),
	}

	bot.Configuration.bot = bot

	for _, m := range bot.Modules {
		err := m.Initialize(&bot.Configuration)
		if err != nil {
			return nil, err
		}
	}

	bot.Discord.AddHandler(bot.handlerGuildCreate)
	bot.Discord.AddHandler(bot.handlerMessageCreate)
	bot.Discord.AddHandler(bot.handlerMessageUpdate)

	return bot, nil
}
