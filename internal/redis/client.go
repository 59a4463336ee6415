// Package redis wraps the go-redis client so repositories depend on an
// interface that tests can swap for miniredis.
package redis

import (
	"crypto/tls"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
)

// Config selects and tunes the session state store. A MasterName switches
// to sentinel failover and Addr is ignored.
type Config struct {
	Addr       string
	MasterName string
	Sentinels  []string
	PoolSize   int
	DB         int
	UseTLS     bool
}

// Validate checks the connection settings
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.MasterName == "" && c.Addr == "" {
		vb.RequiredField("addr")
	}
	if c.MasterName != "" && len(c.Sentinels) == 0 {
		vb.Field("sentinels", "at least one sentinel is required with a master name")
	}
	if c.PoolSize < 0 {
		vb.Field("pool_size", "must not be negative")
	}
	return vb.Build()
}

// New opens a client for the configured deployment. go-redis connects
// lazily so nothing is dialed here.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("redis config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var tlsConfig *tls.Config
	if cfg.UseTLS {
		tlsConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	if cfg.MasterName != "" {
		return redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    cfg.MasterName,
			SentinelAddrs: cfg.Sentinels,
			DB:            cfg.DB,
			PoolSize:      cfg.PoolSize,
			TLSConfig:     tlsConfig,
		}), nil
	}

	return redis.NewClient(&redis.Options{
		Addr:      cfg.Addr,
		DB:        cfg.DB,
		PoolSize:  cfg.PoolSize,
		TLSConfig: tlsConfig,
	}), nil
}
