package info

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/bwmarrin/discordgo"

	"github.com/kagari-bot/kagari/internal/bot"
)

var (
	// ErrInvalidUserID is returned when user argument is not an ID or mention
	ErrInvalidUserID = errors.New("Not a valid user ID.")
	// ErrUserNotFound is returned when no user exists with given ID
	ErrUserNotFound = errors.New("User not found.")
	// ErrUserFetch is returned when user lookup fails on the platform side
	ErrUserFetch = errors.New("An error occurred while fetching the user.")
)

var reUserRef = regexp.MustCompile(`^(?:<@!?(\d+)>|(\d+))$`)

type userSource int

const (
	sourceAuthor userSource = iota
	sourceMember
	sourceFetched
)

// resolvedUser is a closed set of user-like shapes: a full member when
// the user belongs to the guild, or a bare user fetched over the network
type resolvedUser struct {
	user   *discordgo.User
	member *discordgo.Member
	source userSource
}

func authorUser(conf *bot.Configuration, msg *discordgo.Message) *resolvedUser {
	resolved := &resolvedUser{
		user:   msg.Author,
		source: sourceAuthor,
	}

	if msg.GuildID != "" {
		member, err := conf.Discord.State.Member(msg.GuildID, msg.Author.ID)
		if err == nil {
			resolved.member = member
		}
	}

	return resolved
}

// resolveUser resolves optional user reference argument: empty means
// message author, otherwise a mention or numeric ID looked up in guild
// state first and fetched remotely as a fallback
func resolveUser(conf *bot.Configuration, msg *discordgo.Message, arg string) (*resolvedUser, error) {
	if arg == "" {
		return authorUser(conf, msg), nil
	}

	groups := reUserRef.FindStringSubmatch(arg)
	if groups == nil {
		return nil, ErrInvalidUserID
	}

	userID := groups[1]
	if userID == "" {
		userID = groups[2]
	}

	if msg.GuildID != "" {
		member, err := conf.Discord.State.Member(msg.GuildID, userID)
		if err == nil && member.User != nil {
			return &resolvedUser{
				user:   member.User,
				member: member,
				source: sourceMember,
			}, nil
		}
	}

	user, err := conf.Discord.User(userID)
	if err != nil {
		var restErr *discordgo.RESTError
		if errors.As(err, &restErr) && restErr.Response != nil &&
			restErr.Response.StatusCode == http.StatusNotFound {
			return nil, ErrUserNotFound
		}

		return nil, ErrUserFetch
	}

	return &resolvedUser{
		user:   user,
		source: sourceFetched,
	}, nil
}
