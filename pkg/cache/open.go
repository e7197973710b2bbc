package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendMemory, BackendFile, BackendRedis, BackendMongo, BackendNone}

// Options selects and configures a backend for Open.
type Options struct {
	Backend  string // one of Backends; empty means memory
	Capacity int    // memory: max entries, 0 = unbounded
	Dir      string // file: cache directory
	RedisURL string // redis: connection URL
	MongoURI string // mongo: connection URI
	Prefix   string // redis: key prefix
}

// Open creates the backend described by opts.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryCache(opts.Capacity), nil
	case BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache needs a directory")
		}
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis cache needs a URL")
		}
		c, err := NewRedisCache(ctx, opts.RedisURL, opts.Prefix)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return c, nil
	case BackendMongo:
		if opts.MongoURI == "" {
			return nil, fmt.Errorf("mongo cache needs a URI")
		}
		c, err := NewMongoCache(ctx, opts.MongoURI, "", "")
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
