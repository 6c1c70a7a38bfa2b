package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string
	Dir           string // file
	RedisAddr     string // redis
	MongoURI      string // mongo
	MongoDatabase string // mongo
}

// Open returns the backend named by o.Backend. An empty name means file.
func Open(ctx context.Context, o Options) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch o.Backend {
	case "", BackendFile:
		if o.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory")
		}
		c, err = asCache(NewFileCache(o.Dir))
	case BackendRedis:
		c, err = asCache(NewRedisCache(ctx, o.RedisAddr))
	case BackendMongo:
		c, err = asCache(NewMongoCache(ctx, o.MongoURI, o.MongoDatabase))
	case BackendNone:
		c = NewNullCache()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownBackend, o.Backend)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// asCache drops a typed nil so callers never see a non-nil Cache holding
// a nil pointer.
func asCache[C Cache](c C, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

// NullCache is the "none" backend: every Get misses and Set discards.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }
