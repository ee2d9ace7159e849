package redisstore

import (
	"context"
	"time"

	"fxsnapshot/internal/application"

	"github.com/redis/go-redis/v9"
)

var _ application.DedupGuard = (*Store)(nil)

// Store reserves snapshot keys with SETNX so a date/base pair is written once per TTL.
type Store struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{Client: client, TTL: ttl, Prefix: "fxsnapshot:"}
}

func (s *Store) TryReserve(ctx context.Context, key string) (bool, error) {
	ok, err := s.Client.SetNX(ctx, s.Prefix+key, time.Now().UTC().Format(time.RFC3339), s.TTL).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (s *Store) Release(ctx context.Context, key string) error {
	return s.Client.Del(ctx, s.Prefix+key).Err()
}
