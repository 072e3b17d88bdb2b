// File: utils/credentials.go
package utils

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const CredentialPrefix = "credential:"

// CredentialTTL is the lifetime of a stored bearer credential.
const CredentialTTL = 24 * time.Hour

// ErrNoCredential is returned when no credential is stored for a user.
var ErrNoCredential = errors.New("no stored credential")

// RedisCredentialStore keeps each user's bearer credential in the auth
// cache. It is the only persistent session state the wizard touches:
// the auth subsystem writes it, the submitter clears it on a 401.
type RedisCredentialStore struct {
	Client *redis.Client
}

func NewRedisCredentialStore(client *redis.Client) *RedisCredentialStore {
	return &RedisCredentialStore{Client: client}
}

// Get returns the stored credential for the user.
func (s *RedisCredentialStore) Get(ctx context.Context, userID string) (string, error) {
	token, err := s.Client.Get(ctx, CredentialPrefix+userID).Result()
	if err == redis.Nil {
		return "", ErrNoCredential
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Set stores the credential for the user with the standard TTL.
func (s *RedisCredentialStore) Set(ctx context.Context, userID, token string) error {
	return s.Client.Set(ctx, CredentialPrefix+userID, token, CredentialTTL).Err()
}

// Clear removes the stored credential for the user.
func (s *RedisCredentialStore) Clear(ctx context.Context, userID string) error {
	return s.Client.Del(ctx, CredentialPrefix+userID).Err()
}
