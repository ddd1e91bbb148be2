package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pizza-storefront/internal/common/database"

	"github.com/redis/go-redis/v9"
)

// tokenKey is the persisted storage key for the session token.
const tokenKey = "token"

// TokenSlot is the single process-wide slot holding the session bearer
// token. Every outgoing authenticated request reads it at send time.
type TokenSlot struct {
	mu    sync.RWMutex
	token string
}

func NewTokenSlot() *TokenSlot {
	return &TokenSlot{}
}

// Token implements client.TokenSource.
func (s *TokenSlot) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *TokenSlot) set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// TokenStore persists the session token across restarts.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// FileTokenStore keeps the token in a single file, the terminal analog of
// the browser's localStorage entry.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (f *FileTokenStore) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileTokenStore) Save(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(token), 0o600)
}

func (f *FileTokenStore) Clear(_ context.Context) error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RedisTokenStore keeps the token in Redis so shared terminals can pick up
// the same session.
type RedisTokenStore struct {
	client *database.RedisClient
	key    string
}

func NewRedisTokenStore(client *database.RedisClient) *RedisTokenStore {
	return &RedisTokenStore{client: client, key: tokenKey}
}

func (r *RedisTokenStore) Load(ctx context.Context) (string, error) {
	val, err := r.client.Get(ctx, r.key)
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisTokenStore) Save(ctx context.Context, token string) error {
	return r.client.Set(ctx, r.key, token, 0)
}

func (r *RedisTokenStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key)
}
