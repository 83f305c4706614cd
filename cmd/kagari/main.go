package main

import (
	"os"

	"github.com/bwmarrin/discordgo"
	redis "github.com/go-redis/redis/v7"
	flags "github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/kagari-bot/kagari/internal/bot"
	yamlConfig "github.com/kagari-bot/kagari/internal/config"
	"github.com/kagari-bot/kagari/internal/modules/auth"
	"github.com/kagari-bot/kagari/internal/modules/cooldown"
	"github.com/kagari-bot/kagari/internal/modules/feedback"
	"github.com/kagari-bot/kagari/internal/modules/help"
	"github.com/kagari-bot/kagari/internal/modules/info"
	"github.com/kagari-bot/kagari/internal/modules/invite"
	"github.com/kagari-bot/kagari/internal/modules/msgraw"
	"github.com/kagari-bot/kagari/internal/modules/perms"
	"github.com/kagari-bot/kagari/internal/modules/prefix"
	"github.com/kagari-bot/kagari/internal/modules/reply"
	"github.com/kagari-bot/kagari/internal/modules/source"
)

var opts struct {
	Config string `short:"c" long:"config" default:"config.yml" description:"Configuration file"`
}

func readConfig(log *logrus.Logger, configPath string) *yamlConfig.Root {
	configFile, err := os.OpenFile(configPath, os.O_CREATE|os.O_RDONLY, 0644)
	if err != nil {
		log.Fatal(err)
	}

	c, err := yamlConfig.Read(configFile)
	if err != nil {
		log.Fatal(err)
	}

	err = configFile.Close()
	if err != nil {
		log.Fatal(err)
	}

	return c
}

func main() {
	log := logrus.New()

	_, err := flags.Parse(&opts)
	if err != nil {
		os.Exit(1)
	}

	configRoot := readConfig(log, opts.Config)

	if configRoot.Private.Token == "" {
		log.Fatal("Missing token in config")
	}

	dg, err := discordgo.New("Bot " + configRoot.Private.Token)
	if err != nil {
		log.Fatal(err)
	}

	dg.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsAll)

	client := redis.NewClient(&redis.Options{
		Addr:     configRoot.Private.Redis.Address,
		Password: configRoot.Private.Redis.Password,
		DB:       configRoot.Private.Redis.DB,
	})

	b, err := bot.NewBot(bot.Options{
		Discord: dg,
		Client:  client,
		Config:  configRoot,
		Log:     log,
		Modules: []bot.Module{
			reply.New(),
			auth.New(),
			cooldown.New(),
			help.New(),
			prefix.New(),
			info.New(),
			perms.New(),
			source.New(),
			invite.New(),
			feedback.New(),
			msgraw.New(),
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	err = b.Serve()
	if err != nil {
		log.Fatal(err)
	}
}
