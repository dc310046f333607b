package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dkorchagin/recipe-api/internal/logger"
)

const sessionKeyPrefix = "admin_session:"

// SessionRepository stores admin console sessions in Redis with a TTL.
type SessionRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewSessionRepository creates a session repository with the given session lifetime.
func NewSessionRepository(client *redis.Client, expiration time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		exp:    expiration,
	}
}

// Save stores sessionID -> userID with the configured expiration.
func (r *SessionRepository) Save(ctx context.Context, sessionID string, userID uuid.UUID) error {
	key := sessionKeyPrefix + sessionID
	err := r.client.Set(ctx, key, userID.String(), r.exp).Err()

	logger.Log.Debugw("session save",
		"key", key,
		"user_id", userID,
		"error", err,
	)

	return err
}

// Get resolves a session id to the user it belongs to. An expired or unknown
// session yields uuid.Nil without an error.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (uuid.UUID, error) {
	key := sessionKeyPrefix + sessionID

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, nil
	}
	if err != nil {
		logger.Log.Errorw("session get", "key", key, "error", err)
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

// Delete removes a session, logging the user out.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	key := sessionKeyPrefix + sessionID
	err := r.client.Del(ctx, key).Err()

	logger.Log.Debugw("session delete",
		"key", key,
		"error", err,
	)

	return err
}
