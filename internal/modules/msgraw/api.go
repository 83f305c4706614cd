// Package msgraw provides bot module for dumping raw message payloads
package msgraw

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/bwmarrin/discordgo"

	"github.com/kagari-bot/kagari/internal/bot"
	"github.com/kagari-bot/kagari/internal/modules/cooldown"
	"github.com/kagari-bot/kagari/internal/router"
)

var (
	// ErrInvalidMessageID is returned when message argument is not a snowflake
	ErrInvalidMessageID = errors.New("not a valid message ID")
	// ErrTooLong is returned when raw payload does not fit into a reply
	ErrTooLong = errors.New("The specified message's content is too long to repeat.")
)

var reSnowflake = regexp.MustCompile(`^\d+$`)

// New provides module instance
func New() bot.Module {
	return &module{}
}

type module struct {
	config *bot.Configuration
}

func (mod *module) Initialize(config *bot.Configuration) error {
	mod.config = config

	config.Router.Group("info").
		OnAlias("msgraw", "dumps raw JSON of a message", []string{"msgr", "rawm"}, mod.commandMsgraw).
		Set(cooldown.RouteConfigKey, &cooldown.RouteConfig{
			Per:   15 * time.Second,
			Burst: 1,
		})

	return nil
}

func (mod *module) Configure(*bot.Configuration, *discordgo.Guild) {

}

func (mod *module) Shutdown(*bot.Configuration) {

}

// cleanCodeBlock escapes invisible characters and breaks code fences so
// the payload renders verbatim inside a fenced reply. Payload characters
// are escaped before the fences are broken: fence breaking inserts
// zero-width spaces, which are format characters themselves.
func cleanCodeBlock(s string) string {
	buf := &strings.Builder{}

	for _, r := range s {
		if unicode.In(r, unicode.Cf) {
			_, _ = fmt.Fprintf(buf, `\u%04x`, r)
			continue
		}

		buf.WriteRune(r)
	}

	return strings.ReplaceAll(buf.String(), "```", "`​`​`")
}

func (mod *module) fetchRaw(channelID, messageID string) ([]byte, error) {
	endpoint := discordgo.EndpointChannelMessage(channelID, messageID)

	raw, err := mod.config.Discord.RequestWithBucketID(
		http.MethodGet,
		endpoint,
		nil,
		discordgo.EndpointChannelMessage(channelID, ""),
	)
	if err != nil {
		var restErr *discordgo.RESTError
		if errors.As(err, &restErr) && restErr.Response != nil &&
			restErr.Response.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("Message with the ID of %s cannot be found in <#%s>.", messageID, channelID)
		}

		return nil, err
	}

	return raw, nil
}

func (mod *module) commandMsgraw(ctx *router.Context) error {
	messageID := ctx.Args.Get(1)
	if !reSnowflake.MatchString(messageID) {
		return ErrInvalidMessageID
	}

	raw, err := mod.fetchRaw(ctx.Message.ChannelID, messageID)
	if err != nil {
		return err
	}

	indented := &bytes.Buffer{}

	err = json.Indent(indented, raw, "", "  ")
	if err != nil {
		return err
	}

	_, err = ctx.Reply("```json\n" + cleanCodeBlock(indented.String()) + "\n```")
	if err != nil {
		var restErr *discordgo.RESTError
		if errors.As(err, &restErr) {
			return ErrTooLong
		}

		return err
	}

	return bot.ErrNoReply
}
