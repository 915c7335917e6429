package kvstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/klokku/freelancer/internal/config"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Redis keeps every slot as a plain string key under a common prefix.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

func OpenRedis(ctx context.Context, cfg config.Redis) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return NewRedis(rdb, cfg.Prefix), nil
}

func NewRedis(rdb *redis.Client, prefix string) *Redis {
	return &Redis{rdb: rdb, prefix: prefix}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		err := fmt.Errorf("could not read slot %s: %w", key, err)
		log.Error(err)
		return nil, false, err
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		err := fmt.Errorf("could not write slot %s: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.prefix+key).Err(); err != nil {
		err := fmt.Errorf("could not delete slot %s: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *Redis) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.rdb.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), r.prefix))
	}
	if err := iter.Err(); err != nil {
		err := fmt.Errorf("could not list slots: %w", err)
		log.Error(err)
		return nil, err
	}
	slices.Sort(keys)
	return keys, nil
}

func (r *Redis) Clear(ctx context.Context) error {
	keys, err := r.Keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, r.prefix+key)
	}
	if err := r.rdb.Del(ctx, prefixed...).Err(); err != nil {
		err := fmt.Errorf("could not clear slots: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
