package model

import (
	"encoding/json"
	"fmt"

	redis "github.com/go-redis/redis/v7"
)

// ConfigSet sets per-guild configuration key
func (repo *Repository) ConfigSet(guildID, scope, key, value string) error {
	fullkey := fmt.Sprintf("%s.%s.%s", guildID, scope, key)

	return repo.client.Set(fullkey, value, 0).Err()
}

// ConfigGet returns per-guild configuration key, empty string when unset
func (repo *Repository) ConfigGet(guildID, scope, key string) (s string, err error) {
	fullkey := fmt.Sprintf("%s.%s.%s", guildID, scope, key)
	s, err = repo.client.Get(fullkey).Result()

	if err == redis.Nil {
		err = nil
	}

	return
}

// PrefixesGet returns ordered custom prefix list for guild
func (repo *Repository) PrefixesGet(guildID string) (prefixes []string, err error) {
	raw, err := repo.ConfigGet(guildID, "global", "prefixes")
	if err != nil || raw == "" {
		return nil, err
	}

	err = json.Unmarshal([]byte(raw), &prefixes)
	if err != nil {
		return nil, err
	}

	return
}

// PrefixesSet replaces ordered custom prefix list for guild
func (repo *Repository) PrefixesSet(guildID string, prefixes []string) error {
	if prefixes == nil {
		prefixes = []string{}
	}

	bs, err := json.Marshal(prefixes)
	if err != nil {
		return err
	}

	return repo.ConfigSet(guildID, "global", "prefixes", string(bs))
}
