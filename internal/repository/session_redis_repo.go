package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

// sessionStore is the slice of the redis client the repository needs.
// *redis.Client satisfies it.
type sessionStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// redisSessionRepository keeps sessions in Redis so browse state
// survives process restarts for the lifetime of one browsing session
// (the TTL). Values are JSON documents under session:{id}.
type redisSessionRepository struct {
	rdb sessionStore
	ttl time.Duration
	log *logrus.Logger
}

func NewRedisSessionRepository(rdb sessionStore, ttl time.Duration, logger *logrus.Logger) domain.SessionRepository {
	return &redisSessionRepository{
		rdb: rdb,
		ttl: ttl,
		log: logger,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (r *redisSessionRepository) GetOrCreate(ctx context.Context, id string) (domain.Session, error) {
	raw, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		r.log.Debugf("Session %s not found in redis, starting a fresh one", id)
		return domain.Session{ID: id}, nil
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("could not load session %s: %w", id, err)
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		// A corrupt value is unrecoverable; drop it rather than wedging
		// the session forever.
		r.log.Warnf("Session %s holds malformed data, resetting: %v", id, err)
		return domain.Session{ID: id}, nil
	}
	return session, nil
}

func (r *redisSessionRepository) Save(ctx context.Context, session domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not encode session %s: %w", session.ID, err)
	}
	if err := r.rdb.Set(ctx, sessionKey(session.ID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("could not save session %s: %w", session.ID, err)
	}
	return nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("could not delete session %s: %w", id, err)
	}
	return nil
}
