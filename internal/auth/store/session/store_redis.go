package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"notely/internal/auth/models"
)

// Redis key prefix for session data
const keyPrefix = "notely:"

// RedisStore keeps the session under two keys per profile, token and user,
// so several machines can share one login.
type RedisStore struct {
	client  redis.Cmdable
	profile string
	now     func() time.Time
}

func NewRedis(client redis.Cmdable, profile string) *RedisStore {
	if profile == "" {
		profile = "default"
	}
	return &RedisStore{client: client, profile: profile, now: time.Now}
}

func (s *RedisStore) tokenKey() string {
	return keyPrefix + s.profile + ":token"
}

func (s *RedisStore) userKey() string {
	return keyPrefix + s.profile + ":user"
}

func (s *RedisStore) Load(ctx context.Context) (*models.Session, error) {
	vals, err := s.client.MGet(ctx, s.tokenKey(), s.userKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	token, _ := vals[0].(string)
	if token == "" {
		return nil, ErrNoSession
	}
	sess := &models.Session{Token: token}
	if raw, ok := vals[1].(string); ok && raw != "" && raw != "null" {
		var user models.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, fmt.Errorf("decode session user: %w", err)
		}
		sess.User = &user
	}
	return sess, nil
}

// Save writes both keys in one transaction. Keys expire with the token when
// it carries an exp claim; an already expired token clears instead.
func (s *RedisStore) Save(ctx context.Context, sess *models.Session) error {
	if sess == nil {
		return errors.New("session is required")
	}
	user, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}

	var ttl time.Duration
	if exp, ok := sess.ExpiresAt(); ok {
		ttl = exp.Sub(s.now())
		if ttl <= 0 {
			return s.Clear(ctx)
		}
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tokenKey(), sess.Token, ttl)
	pipe.Set(ctx, s.userKey(), user, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.tokenKey(), s.userKey()).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *RedisStore) Token(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.tokenKey()).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load session token: %w", err)
	}
	return token, nil
}

var _ Store = (*RedisStore)(nil)
