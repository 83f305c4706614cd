// Package invite provides bot module for invite link generation
package invite

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/oauth2"

	"github.com/kagari-bot/kagari/internal/bot"
	"github.com/kagari-bot/kagari/internal/modules/auth"
	"github.com/kagari-bot/kagari/internal/router"
)

const authorizeURL = "https://discord.com/api/oauth2/authorize"

// New provides module instance
func New() bot.Module {
	return &module{}
}

type module struct {
	config *bot.Configuration
}

func (mod *module) Initialize(config *bot.Configuration) error {
	mod.config = config

	config.Router.Group("info").OnAlias("invite", "generates a bot invite link", []string{"join"}, mod.commandInvite).
		Set(auth.RouteConfigKey, &auth.RouteConfig{
			OwnerOnly: true,
		})

	return nil
}

func (mod *module) Configure(*bot.Configuration, *discordgo.Guild) {

}

func (mod *module) Shutdown(*bot.Configuration) {

}

// inviteURL builds OAuth2 authorization URL for the bot scope with
// optional permissions parameter
func (mod *module) inviteURL(permissions int64) string {
	conf := &oauth2.Config{
		ClientID: mod.config.Config.Private.ClientID,
		Scopes:   []string{"bot"},
		Endpoint: oauth2.Endpoint{
			AuthURL: authorizeURL,
		},
	}

	if permissions == 0 {
		return conf.AuthCodeURL("")
	}

	return conf.AuthCodeURL("", oauth2.SetAuthURLParam("permissions", strconv.FormatInt(permissions, 10)))
}

func (mod *module) commandInvite(ctx *router.Context) error {
	managed := int64(discordgo.PermissionAll) &^ int64(discordgo.PermissionAdministrator)

	desc := fmt.Sprintf(
		"Okay you have two options:\n"+
			"Invite me with managed permissions [here](%s 'Creates a managed role in your server.').\n"+
			"or...\n"+
			"Invite me with no permissions, and you handle it with your own roles.\n"+
			"[I can't promise I'll work until you fix my perms.](%s 'I prefer this option, personally.')",
		mod.inviteURL(managed), mod.inviteURL(0))

	err := ctx.ReplyEmbed(desc)
	if err != nil {
		return err
	}

	return bot.ErrNoReply
}
