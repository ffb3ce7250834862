package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type Redis struct {
	redisdb *redis.Client
	ttl     time.Duration
}

func NewRedis(cfg RedisConfig) *Redis {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Redis{redisdb: redisdb, ttl: ttl}
}

// this ping function checks redis connectivity

func (r *Redis) Ping(ctx context.Context) error {
	return r.redisdb.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.redisdb.Close()
}

func (r *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.redisdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, val any) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}

	return r.redisdb.Set(ctx, key, raw, r.ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.redisdb.Del(ctx, keys...).Err()
}
