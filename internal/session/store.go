package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps a redis denylist of revoked session ids so logout takes
// effect before the cookie expires. Entries carry the token's remaining TTL.
type Store struct {
	rdb *redis.Client
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

func New(cfg Config) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &Store{rdb: rdb}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired, nothing to deny
		return nil
	}

	return s.rdb.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(jti)).Result()

	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func revokedKey(jti string) string {
	return "session:revoked:" + jti
}
