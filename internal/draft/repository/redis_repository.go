package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mimo/internal/domain"
)

// RedisDraftRepository keeps one key per session fragment. Fragments are
// cleared only by explicit removal; the TTL is a safety net for
// abandoned sessions, not part of the contract.
type RedisDraftRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftRepository(client *redis.Client, ttl time.Duration) *RedisDraftRepository {
	return &RedisDraftRepository{client: client, ttl: ttl}
}

func draftKey(sessionID string, fragment domain.FragmentType) string {
	return fmt.Sprintf("mimo:draft:%s:%s", sessionID, fragment)
}

func (r *RedisDraftRepository) Get(ctx context.Context, sessionID string, fragment domain.FragmentType) ([]byte, error) {
	raw, err := r.client.Get(ctx, draftKey(sessionID, fragment)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting draft fragment %s: %w", fragment, err)
	}
	return raw, nil
}

func (r *RedisDraftRepository) Put(ctx context.Context, sessionID string, fragment domain.FragmentType, value []byte) error {
	if err := r.client.Set(ctx, draftKey(sessionID, fragment), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("putting draft fragment %s: %w", fragment, err)
	}
	return nil
}

func (r *RedisDraftRepository) Clear(ctx context.Context, sessionID string, fragments ...domain.FragmentType) error {
	keys := make([]string, len(fragments))
	for i, f := range fragments {
		keys[i] = draftKey(sessionID, f)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clearing draft fragments: %w", err)
	}
	return nil
}
