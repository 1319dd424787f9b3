package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipe-api/config"
)

func TestNewRedisClientInvalidURL(t *testing.T) {
	cfg := &config.Config{RedisURL: "not-a-redis-url"}

	client, err := NewRedisClient(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestNewRedisClientUnreachable(t *testing.T) {
	cfg := &config.Config{RedisHost: "127.0.0.1", RedisPort: "1"}

	client, err := NewRedisClient(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, client)
}
