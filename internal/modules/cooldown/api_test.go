package cooldown

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kagari-bot/kagari/internal/router"
)

func limitedContext(conf interface{}, userID string) *router.Context {
	r := router.NewRouter()

	route := r.On("test", "limited", "test route", func(ctx *router.Context) error {
		return nil
	})

	if conf != nil {
		route.Set(RouteConfigKey, conf)
	}

	return &router.Context{
		Message: &discordgo.Message{Author: &discordgo.User{ID: userID}},
		Route:   route,
		Args:    router.Args{"limited"},
	}
}

func TestCooldownBurst(t *testing.T) {
	mod := New().(*module)

	invoked := 0

	wrapped := mod.middlewareCooldown(func(ctx *router.Context) error {
		invoked++
		return nil
	})

	ctx := limitedContext(&RouteConfig{Per: time.Minute, Burst: 1}, "5")

	require.NoError(t, wrapped(ctx))
	assert.Equal(t, ErrOnCooldown, wrapped(ctx))
	assert.Equal(t, 1, invoked)
}

func TestCooldownPerUser(t *testing.T) {
	mod := New().(*module)

	wrapped := mod.middlewareCooldown(func(ctx *router.Context) error {
		return nil
	})

	require.NoError(t, wrapped(limitedContext(&RouteConfig{Per: time.Minute, Burst: 1}, "5")))
	require.NoError(t, wrapped(limitedContext(&RouteConfig{Per: time.Minute, Burst: 1}, "6")))
}

func TestCooldownSweep(t *testing.T) {
	mod := New().(*module)

	conf := &RouteConfig{Per: time.Minute, Burst: 1}

	mod.limiter("limited", "5", conf)
	mod.limiter("limited", "6", conf)
	require.Len(t, mod.limiters, 2)

	// entry 5 has been idle past its refill window, entry 6 has not
	mod.limiters["limited.5"].seen = time.Now().Add(-2 * time.Minute)

	mod.sweep(time.Now())

	assert.Len(t, mod.limiters, 1)
	assert.Contains(t, mod.limiters, "limited.6")
}

func TestCooldownUnconfigured(t *testing.T) {
	mod := New().(*module)

	invoked := 0

	wrapped := mod.middlewareCooldown(func(ctx *router.Context) error {
		invoked++
		return nil
	})

	ctx := limitedContext(nil, "5")

	for i := 0; i < 10; i++ {
		require.NoError(t, wrapped(ctx))
	}

	assert.Equal(t, 10, invoked)
}
