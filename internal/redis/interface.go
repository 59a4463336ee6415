package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the repositories use. Both single-node
// and sentinel clients satisfy it.
type Client interface {
	redis.UniversalClient
}
