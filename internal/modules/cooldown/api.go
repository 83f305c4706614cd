// Package cooldown provides bot module middleware for per-user command rate limits
package cooldown

import (
	"errors"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"github.com/kagari-bot/kagari/internal/bot"
	"github.com/kagari-bot/kagari/internal/router"
)

// RouteConfigKey is used in route/group data configuration
const RouteConfigKey = "cooldown"

var (
	// ErrOnCooldown is returned when user invokes command faster than allowed
	ErrOnCooldown = errors.New("this command is on cooldown")
)

// RouteConfig holds rate limit for given route, per user
type RouteConfig struct {
	Per   time.Duration
	Burst int
}

const sweepEvery = time.Minute

// New provides module instance
func New() bot.Module {
	return &module{
		limiters: make(map[string]*userLimiter),
		m:        &sync.Mutex{},
	}
}

// userLimiter tracks last use so idle entries can be dropped. An entry
// idle past its refill window is full again, dropping it loses nothing.
type userLimiter struct {
	limiter *rate.Limiter
	expiry  time.Duration
	seen    time.Time
}

type module struct {
	config   *bot.Configuration
	limiters map[string]*userLimiter
	swept    time.Time
	m        *sync.Mutex
}

func (mod *module) Initialize(config *bot.Configuration) error {
	mod.config = config
	config.Router.AppendMiddleware(mod.middlewareCooldown)

	return nil
}

func (mod *module) Configure(*bot.Configuration, *discordgo.Guild) {

}

func (mod *module) Shutdown(*bot.Configuration) {

}

func (mod *module) limiter(route, userID string, conf *RouteConfig) *rate.Limiter {
	mod.m.Lock()
	defer mod.m.Unlock()

	now := time.Now()

	if now.Sub(mod.swept) > sweepEvery {
		mod.sweep(now)
		mod.swept = now
	}

	key := route + "." + userID

	limiter, ok := mod.limiters[key]
	if !ok {
		limiter = &userLimiter{
			limiter: rate.NewLimiter(rate.Every(conf.Per), conf.Burst),
			expiry:  conf.Per * time.Duration(conf.Burst),
		}
		mod.limiters[key] = limiter
	}

	limiter.seen = now

	return limiter.limiter
}

func (mod *module) sweep(now time.Time) {
	for key, limiter := range mod.limiters {
		if now.Sub(limiter.seen) > limiter.expiry {
			delete(mod.limiters, key)
		}
	}
}

func (mod *module) middlewareCooldown(handler router.HandlerFunc) router.HandlerFunc {
	return func(ctx *router.Context) error {
		raw := ctx.Route.Get(RouteConfigKey)

		var conf *RouteConfig

		switch v := raw.(type) {
		case *RouteConfig:
			conf = v
		case RouteConfig:
			conf = &v
		default:
			return handler(ctx)
		}

		if !mod.limiter(ctx.Route.Name, ctx.Message.Author.ID, conf).Allow() {
			return ErrOnCooldown
		}

		return handler(ctx)
	}
}
