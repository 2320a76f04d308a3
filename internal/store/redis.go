package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/knowtest/internal/logger"
	"github.com/abhisek/knowtest/internal/session"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "knowtest:session:"

// RedisStore keeps each snapshot as a JSON string at knowtest:session:<name>.
type RedisStore struct {
	client *redis.Client
	log    *logger.Logger
}

// ParseRedisURL validates a Redis connection URL.
func ParseRedisURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("redis URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return opts, nil
}

// NewRedisStore connects to url and pings the server.
func NewRedisStore(ctx context.Context, url string, log *logger.Logger) (*RedisStore, error) {
	opts, err := ParseRedisURL(url)
	if err != nil {
		return nil, err
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RedisStore{client: client, log: log}, nil
}

func redisKey(name string) string {
	return redisKeyPrefix + name
}

func (r *RedisStore) Save(ctx context.Context, name string, snap *session.Snapshot) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(name), data, 0).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context, name string) (*session.Snapshot, error) {
	data, err := r.client.Get(ctx, redisKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, &session.PersistenceError{Op: "load", Name: name, Err: err}
	}

	var snap session.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &session.PersistenceError{Op: "load", Name: name, Err: fmt.Errorf("decode snapshot: %w", err)}
	}
	return &snap, nil
}

func (r *RedisStore) List(ctx context.Context) ([]SessionInfo, error) {
	var out []SessionInfo
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		name := strings.TrimPrefix(iter.Val(), redisKeyPrefix)
		snap, err := r.Load(ctx, name)
		if err != nil {
			r.log.Warn("skipping unreadable session", "key", iter.Val(), "error", err)
			continue
		}
		out = append(out, infoFromSnapshot(name, snap))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan sessions: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *RedisStore) Delete(ctx context.Context, name string) error {
	n, err := r.client.Del(ctx, redisKey(name)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
