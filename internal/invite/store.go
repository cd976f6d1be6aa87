package invite

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Payload is what an outstanding invite token resolves to.
type Payload struct {
	BandID   uint `json:"band_id"`
	IssuedBy uint `json:"issued_by"` // principal id of the issuer
}

// TokenStore holds outstanding invite tokens. Consume is atomic: a token
// resolves for exactly one caller, after which it is gone.
type TokenStore interface {
	Put(ctx context.Context, token string, p Payload, ttl time.Duration) error
	// Consume returns (nil, nil) for an unknown, expired or already-used token.
	Consume(ctx context.Context, token string) (*Payload, error)
	Revoke(ctx context.Context, token string) error
}

const keyPrefix = "invite:"

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) TokenStore {
	return &redisStore{client: client}
}

func (s *redisStore) Put(ctx context.Context, token string, p Payload, ttl time.Duration) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.client.SetNX(ctx, keyPrefix+token, raw, ttl).Err()
}

// Consume uses GETDEL so two concurrent accepts of the same token cannot both
// succeed.
func (s *redisStore) Consume(ctx context.Context, token string) (*Payload, error) {
	raw, err := s.client.GetDel(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *redisStore) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}

type memoryEntry struct {
	payload   Payload
	expiresAt time.Time
}

type memoryStore struct {
	mu     sync.Mutex
	tokens map[string]memoryEntry
	now    func() time.Time
}

// NewMemoryStore backs the token store with a process-local map. Used in
// tests and single-node development setups without Redis.
func NewMemoryStore() TokenStore {
	return &memoryStore{tokens: map[string]memoryEntry{}, now: time.Now}
}

func (s *memoryStore) Put(_ context.Context, token string, p Payload, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = memoryEntry{payload: p, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *memoryStore) Consume(_ context.Context, token string) (*Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[token]
	if !ok {
		return nil, nil
	}
	delete(s.tokens, token)
	if s.now().After(entry.expiresAt) {
		return nil, nil
	}
	p := entry.payload
	return &p, nil
}

func (s *memoryStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
