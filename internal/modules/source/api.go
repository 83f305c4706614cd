// Package source provides bot module linking to command source code
package source

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kagari-bot/kagari/internal/bot"
	"github.com/kagari-bot/kagari/internal/router"
)

var (
	// ErrCommandNotFound is returned when named command is not registered
	ErrCommandNotFound = errors.New("could not find command")
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

	config.Router.Group("info").On("source", "links to the bot source code", mod.commandSource)

	return nil
}

func (mod *module) Configure(*bot.Configuration, *discordgo.Guild) {

}

func (mod *module) Shutdown(*bot.Configuration) {

}

// location resolves file and line of route handler within the repository
func location(route *router.Route) (file string, line int, ok bool) {
	pc := reflect.ValueOf(route.Handler).Pointer()

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "", 0, false
	}

	file, line = fn.FileLine(pc)

	i := strings.Index(file, "internal/")
	if i < 0 {
		return "", 0, false
	}

	return file[i:], line, true
}

func (mod *module) commandSource(ctx *router.Context) error {
	src := mod.config.Config.Private.Source

	name := ctx.Args.Get(1)
	if name == "" {
		_, err := ctx.Reply(src.URL)
		if err != nil {
			return err
		}

		return bot.ErrNoReply
	}

	route, ok := ctx.Route.Router.Routes[name]
	if !ok {
		return ErrCommandNotFound
	}

	file, line, ok := location(route)
	if !ok {
		return ErrCommandNotFound
	}

	branch := src.Branch
	if branch == "" {
		branch = "master"
	}

	_, err := ctx.Reply(fmt.Sprintf("<%s/blob/%s/%s#L%d>", src.URL, branch, file, line))
	if err != nil {
		return err
	}

	return bot.ErrNoReply
}
