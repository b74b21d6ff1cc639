package session

import (
	"context"
	"errors"
	"time"

	"github.com/map-framework/addon-mode-site/pkg/cache"
)

const (
	tokenKeyPrefix = "tok:"
	idKeyPrefix    = "id:"
)

// CacheStore keeps sessions in a cache.Cache, in memory or in Redis.
// Entries expire with their session.
type CacheStore struct {
	cache cache.Cache[*Session]
}

// NewCacheStore returns a store over c.
func NewCacheStore(c cache.Cache[*Session]) *CacheStore {
	return &CacheStore{cache: c}
}

func (s *CacheStore) Create(ctx context.Context, sess *Session) error {
	return s.put(ctx, sess)
}

func (s *CacheStore) Update(ctx context.Context, sess *Session) error {
	return s.put(ctx, sess)
}

func (s *CacheStore) put(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, sess.ID)
	}

	if err := s.cache.Set(ctx, tokenKeyPrefix+sess.Token, sess.Clone(), ttl); err != nil {
		return err
	}
	// The id entry only maps the id back to the token.
	ref := &Session{ID: sess.ID, Token: sess.Token, ExpiresAt: sess.ExpiresAt}
	return s.cache.Set(ctx, idKeyPrefix+sess.ID, ref, ttl)
}

func (s *CacheStore) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	sess, err := s.cache.Get(ctx, tokenKeyPrefix+token)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if sess.IsExpired() {
		_ = s.Delete(ctx, sess.ID)
		return nil, ErrExpired
	}
	return sess.Clone(), nil
}

func (s *CacheStore) Delete(ctx context.Context, id string) error {
	ref, err := s.cache.Get(ctx, idKeyPrefix+id)
	if errors.Is(err, cache.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return errors.Join(
		s.cache.Delete(ctx, tokenKeyPrefix+ref.Token),
		s.cache.Delete(ctx, idKeyPrefix+id),
	)
}

func (s *CacheStore) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}
