package cache

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

var (
	newRedisClient = func(opts *redis.Options) *redis.Client {
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
	parseRedisURL = redis.ParseURL
)

func InitRedis(ctx context.Context) {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := parseRedisURL(addr)
		if err != nil {
			log.Fatalf("failed to parse REDIS_URL: %v", err)
		}
		opts = parsed
	}

	Client = newRedisClient(opts)
	if err := pingRedis(ctx, Client); err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")
}

// RedisClient is the subset of redis.Client the signal cache needs.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisCache is a SignalCache backed by Redis, for deployments where warm
// readings should survive restarts. Freshness is tracked by the TTL on
// "signal:<key>"; the last good reading is additionally kept without expiry
// under "signal:stale:<key>" so the serve-stale policy holds after the fresh
// key evicts. Per-key mutexes serialize fetches within this process.
type RedisCache struct {
	rdb RedisClient

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRedisCache(rdb RedisClient) *RedisCache {
	return &RedisCache{
		rdb:   rdb,
		locks: make(map[string]*sync.Mutex),
	}
}

func (c *RedisCache) keyLock(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[key]
	if !ok {
		l = &sync.Mutex{}
		c.locks[key] = l
	}
	return l
}

func (c *RedisCache) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) (domain.SignalReading, error) {
	l := c.keyLock(key)
	l.Lock()
	defer l.Unlock()

	if reading, ok := c.load(ctx, "signal:"+key); ok {
		return reading, nil
	}

	reading, err := fetch(ctx)
	if err == nil {
		if data, merr := json.Marshal(reading); merr == nil {
			if serr := c.rdb.Set(ctx, "signal:"+key, data, ttl).Err(); serr != nil {
				log.Printf("redis signal cache write error: %v", serr)
			}
			_ = c.rdb.Set(ctx, "signal:stale:"+key, data, 0).Err()
		}
		return reading, nil
	}

	if stale, ok := c.load(ctx, "signal:stale:"+key); ok {
		stale.Stale = true
		return stale, nil
	}
	return domain.SignalReading{}, err
}

func (c *RedisCache) load(ctx context.Context, key string) (domain.SignalReading, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return domain.SignalReading{}, false
	}
	if err != nil {
		log.Printf("redis signal cache read error: %v", err)
		return domain.SignalReading{}, false
	}
	var reading domain.SignalReading
	if err := json.Unmarshal(data, &reading); err != nil {
		return domain.SignalReading{}, false
	}
	return reading, true
}
