package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/durgamdileep/product-auth-api/internal/core/domain"
)

const defaultSessionTTL = 12 * time.Hour

// SessionRegistry is the Redis-backed single-active-session store, for
// deployments running more than one instance.
//
// Key scheme:
//
//	session:user:<username> -> current session id
//	session:id:<id>         -> JSON session record
//
// Binding a username deletes the superseded id key, so the old session stops
// resolving the moment the new one exists.
type SessionRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRegistry(client *redis.Client, ttl time.Duration) *SessionRegistry {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionRegistry{client: client, ttl: ttl}
}

type sessionRecord struct {
	Username    string    `json:"username"`
	Authorities []string  `json:"authorities"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *SessionRegistry) Bind(ctx context.Context, principal *domain.Principal) (string, bool, error) {
	id, err := newSessionID()
	if err != nil {
		return "", false, err
	}

	old, err := s.client.Get(ctx, s.userKey(principal.Username)).Result()
	if err != nil && err != redis.Nil {
		return "", false, fmt.Errorf("session lookup: %w", err)
	}

	payload, err := json.Marshal(sessionRecord{
		Username:    principal.Username,
		Authorities: principal.Authorities(),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return "", false, fmt.Errorf("encode session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.idKey(id), payload, s.ttl)
	pipe.Set(ctx, s.userKey(principal.Username), id, s.ttl)
	if old != "" {
		pipe.Del(ctx, s.idKey(old))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", false, fmt.Errorf("session bind: %w", err)
	}
	return id, old != "", nil
}

func (s *SessionRegistry) Resolve(ctx context.Context, id string) (*domain.Principal, error) {
	raw, err := s.client.Get(ctx, s.idKey(id)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrSessionInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("session resolve: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return domain.NewPrincipal(rec.Username, rec.Authorities), nil
}

func (s *SessionRegistry) Invalidate(ctx context.Context, id string) error {
	raw, err := s.client.Get(ctx, s.idKey(id)).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session invalidate: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.idKey(id))
	pipe.Del(ctx, s.userKey(rec.Username))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session invalidate: %w", err)
	}
	return nil
}

func (s *SessionRegistry) userKey(username string) string {
	return "session:user:" + username
}

func (s *SessionRegistry) idKey(id string) string {
	return "session:id:" + id
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
