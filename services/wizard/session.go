package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"suncrest/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "wizardSession:"

// RedisSessionStore keeps wizard sessions as JSON documents with a TTL.
// Saves are versioned: a writer holding a stale copy is rejected so that
// late-arriving results of remote calls cannot clobber newer state.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	data, err := s.Client.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wizard session: %w", err)
	}

	var session models.WizardSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse wizard session: %w", err)
	}
	return &session, nil
}

// Save writes the session back, bumping its version. The stored version
// must still match the one the caller loaded, otherwise the caller lost
// the race and gets ErrSessionConflict.
func (s *RedisSessionStore) Save(ctx context.Context, session *models.WizardSession) error {
	current, err := s.Get(ctx, session.SessionID)
	if err != nil && err != ErrSessionNotFound {
		return err
	}
	if current != nil && current.Version != session.Version {
		return ErrSessionConflict
	}

	session.Version++
	session.UpdatedAt = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionPrefix+session.SessionID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store wizard session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.Client.Del(ctx, sessionPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}
	return nil
}
