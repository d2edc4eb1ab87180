package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend string `toml:"backend" json:"backend"`

	// Dir is the FileCache directory.
	Dir string `toml:"dir" json:"dir,omitempty"`

	RedisAddr     string `toml:"redis_addr" json:"redis_addr,omitempty"`
	RedisPassword string `toml:"redis_password" json:"-"`
	RedisDB       int    `toml:"redis_db" json:"redis_db,omitempty"`

	MongoURI        string `toml:"mongo_uri" json:"-"`
	MongoDatabase   string `toml:"mongo_database" json:"mongo_database,omitempty"`
	MongoCollection string `toml:"mongo_collection" json:"mongo_collection,omitempty"`

	// Prefix is prepended to every key, see [ScopedKeyer].
	Prefix string `toml:"prefix" json:"prefix,omitempty"`
}

// Open creates the cache described by cfg. An empty backend means file.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory configured")
		}
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		c, err := NewMongoCache(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// Keyer returns the keyer matching cfg.
func (cfg Config) Keyer() Keyer {
	if cfg.Prefix == "" {
		return NewDefaultKeyer()
	}
	return NewScopedKeyer(NewDefaultKeyer(), cfg.Prefix)
}
