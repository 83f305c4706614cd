// Package model provides persistent per-guild settings repository
package model

import (
	redis "github.com/go-redis/redis/v7"
)

// Repository provides persistence for per-guild settings
type Repository struct {
	client *redis.Client
}

// NewRepository provides Repository instance
func NewRepository(client *redis.Client) *Repository {
	return &Repository{
		client: client,
	}
}
