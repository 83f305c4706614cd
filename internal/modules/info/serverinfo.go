package info

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/kagari-bot/kagari/internal/bot"
	"github.com/kagari-bot/kagari/internal/permissions"
	"github.com/kagari-bot/kagari/internal/router"
)

var (
	// ErrInvalidGuildID is returned when no guild exists with given ID
	ErrInvalidGuildID = errors.New("Invalid Guild ID given.")
)

var featureLabels = []struct {
	feature string
	label   string
}{
	{"PARTNERED", "Partnered"},
	{"VERIFIED", "Verified"},
	{"DISCOVERABLE", "Server Discovery"},
	{"COMMUNITY", "Community Server"},
	{"WELCOME_SCREEN_ENABLED", "Welcome Screen"},
	{"INVITE_SPLASH", "Invite Splash"},
	{"VIP_REGIONS", "VIP Voice Servers"},
	{"VANITY_URL", "Vanity Invite"},
	{"COMMERCE", "Commerce"},
	{"LURKABLE", "Lurkable"},
	{"NEWS", "News Channels"},
	{"ANIMATED_ICON", "Animated Icon"},
	{"BANNER", "Banner"},
}

func emojiLimit(tier discordgo.PremiumTier) int {
	switch tier {
	case discordgo.PremiumTier1:
		return 100
	case discordgo.PremiumTier2:
		return 150
	case discordgo.PremiumTier3:
		return 250
	}

	return 50
}

type channelStats struct {
	total  int
	secret int
}

// channelStatistics counts channels per type, marking a channel secret
// when the effective @everyone permission set hides or mutes it
func channelStatistics(guild *discordgo.Guild) map[discordgo.ChannelType]*channelStats {
	stats := map[discordgo.ChannelType]*channelStats{
		discordgo.ChannelTypeGuildText:  {},
		discordgo.ChannelTypeGuildVoice: {},
	}

	for _, channel := range guild.Channels {
		s, ok := stats[channel.Type]
		if !ok {
			continue
		}

		s.total++

		perms := permissions.EveryoneChannel(guild, channel)

		switch channel.Type {
		case discordgo.ChannelTypeGuildText:
			if perms&discordgo.PermissionReadMessages == 0 {
				s.secret++
			}
		case discordgo.ChannelTypeGuildVoice:
			if perms&discordgo.PermissionVoiceConnect == 0 || perms&discordgo.PermissionVoiceSpeak == 0 {
				s.secret++
			}
		}
	}

	return stats
}

func channelLine(label string, s *channelStats) string {
	if s.secret > 0 {
		return fmt.Sprintf("%s: %d (%d locked)", label, s.total, s.secret)
	}

	return fmt.Sprintf("%s: %d", label, s.total)
}

func memberStatistics(guild *discordgo.Guild) (statuses map[discordgo.Status]int, bots int) {
	statuses = make(map[discordgo.Status]int)

	for _, p := range guild.Presences {
		statuses[p.Status]++
	}

	for _, m := range guild.Members {
		if m.User != nil && m.User.Bot {
			bots++
		}
	}

	return
}

func emojiStatistics(guild *discordgo.Guild) string {
	var regular, animated, disabled, animatedDisabled int

	for _, emoji := range guild.Emojis {
		if emoji.Animated {
			animated++

			if !emoji.Available {
				animatedDisabled++
			}
		} else {
			regular++

			if !emoji.Available {
				disabled++
			}
		}
	}

	limit := emojiLimit(guild.PremiumTier)

	buf := &strings.Builder{}
	_, _ = fmt.Fprintf(buf, "Regular: %d/%d\n", regular, limit)
	_, _ = fmt.Fprintf(buf, "Animated: %d/%d\n", animated, limit)

	if disabled > 0 || animatedDisabled > 0 {
		_, _ = fmt.Fprintf(buf, "Disabled: %d regular, %d animated\n", disabled, animatedDisabled)
	}

	_, _ = fmt.Fprintf(buf, "Total Emoji: %d/%d", len(guild.Emojis), limit*2)

	return buf.String()
}

func (mod *module) serverinfoGuild(ctx *router.Context) (*discordgo.Guild, error) {
	guildID := ctx.Args.Get(1)

	if guildID != "" && mod.config.IsOwner(ctx.Message.Author.ID) {
		guild, err := mod.config.Discord.State.Guild(guildID)
		if err != nil {
			return nil, ErrInvalidGuildID
		}

		return guild, nil
	}

	return mod.config.Discord.State.Guild(ctx.Message.GuildID)
}

func (mod *module) commandServerinfo(ctx *router.Context) error {
	guild, err := mod.serverinfoGuild(ctx)
	if err != nil {
		return err
	}

	owner := guild.OwnerID
	if user, err := mod.config.Discord.User(guild.OwnerID); err == nil {
		owner = user.String()
	}

	embed := &discordgo.MessageEmbed{
		Title:       guild.Name,
		Description: fmt.Sprintf("**ID**: %s\n**Owner**: %s", guild.ID, owner),
	}

	if guild.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{
			URL: guild.IconURL(),
		}
	}

	var features []string

	for _, fl := range featureLabels {
		for _, f := range guild.Features {
			if f == fl.feature {
				features = append(features, fl.label)
				break
			}
		}
	}

	if len(features) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Features",
			Value: strings.Join(features, "\n"),
		})
	}

	stats := channelStatistics(guild)

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "Channels",
		Value: channelLine("Text", stats[discordgo.ChannelTypeGuildText]) + "\n" +
			channelLine("Voice", stats[discordgo.ChannelTypeGuildVoice]),
	})

	if guild.PremiumTier != discordgo.PremiumTierNone {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Boosts",
			Value: fmt.Sprintf("Level %d\n%d boosts", guild.PremiumTier, guild.PremiumSubscriptionCount),
		})
	}

	statuses, bots := memberStatistics(guild)

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "Members",
		Value: fmt.Sprintf("Online: %d Idle: %d DnD: %d Offline: %d\nTotal: %d (%s)",
			statuses[discordgo.StatusOnline],
			statuses[discordgo.StatusIdle],
			statuses[discordgo.StatusDoNotDisturb],
			statuses[discordgo.StatusOffline],
			guild.MemberCount,
			plural(bots, "bot")),
	})

	roles := make([]string, 0, len(guild.Roles))
	for _, role := range guild.Roles {
		roles = append(roles, escapeRoleName(role.Name))
	}

	value := strings.Join(roles, ", ")
	if len(roles) >= 10 {
		value = fmt.Sprintf("%d roles", len(roles))
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Roles",
		Value: value,
	})

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Emoji",
		Value: emojiStatistics(guild),
	})

	if t, err := discordgo.SnowflakeTimestamp(guild.ID); err == nil {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Created"}
		embed.Timestamp = t.UTC().Format(time.RFC3339)
	}

	err = ctx.ReplyEmbedCustom(embed)
	if err != nil {
		return err
	}

	return bot.ErrNoReply
}
