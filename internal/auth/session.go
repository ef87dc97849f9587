package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/greenhaven/nursery-service/internal/domain"
)

// SessionCookie is the name of the cookie carrying the opaque session id.
const SessionCookie = "nursery_session"

// ErrSessionNotFound indicates a missing or expired session.
var ErrSessionNotFound = errors.New("session not found")

const (
	sessionKeyPrefix  = "session:"
	userSessionPrefix = "user_sessions:"
)

// SessionManager keeps server-side session identities in Redis. The cookie
// holds only an opaque uuid; the identity projection lives under
// session:<id> with the configured TTL. A per-user index set supports
// evicting every session of a user when their profile is mutated.
type SessionManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionManager builds the manager.
func NewSessionManager(client *redis.Client, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{client: client, ttl: ttl}
}

// Create stores the identity and returns a new session id.
func (m *SessionManager) Create(ctx context.Context, identity domain.Identity) (string, error) {
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	pipe := m.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+id, payload, m.ttl)
	pipe.SAdd(ctx, userSessionKey(identity.ID), id)
	pipe.Expire(ctx, userSessionKey(identity.ID), m.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the identity for a session id.
func (m *SessionManager) Get(ctx context.Context, id string) (domain.Identity, error) {
	var identity domain.Identity
	payload, err := m.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return identity, ErrSessionNotFound
		}
		return identity, err
	}
	if err := json.Unmarshal(payload, &identity); err != nil {
		return identity, err
	}
	return identity, nil
}

// Destroy removes a single session.
func (m *SessionManager) Destroy(ctx context.Context, id string) error {
	identity, err := m.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := m.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+id)
	pipe.SRem(ctx, userSessionKey(identity.ID), id)
	_, err = pipe.Exec(ctx)
	return err
}

// DestroyAllForUser evicts every live session of a user. Called when a
// profile mutation would leave session identities stale.
func (m *SessionManager) DestroyAllForUser(ctx context.Context, userID int64) error {
	ids, err := m.client.SMembers(ctx, userSessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKeyPrefix+id)
	}
	keys = append(keys, userSessionKey(userID))
	return m.client.Del(ctx, keys...).Err()
}

// TTL exposes the session lifetime for cookie max-age alignment.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

func userSessionKey(userID int64) string {
	return userSessionPrefix + strconv.FormatInt(userID, 10)
}
