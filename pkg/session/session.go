package session

import (
	"errors"
	"maps"
	"time"
)

// Session is a visitor session: metadata plus arbitrary values.
// Site mode keeps pending form records in it.
type Session struct {
	CreatedAt    time.Time
	LastActiveAt time.Time
	ExpiresAt    time.Time

	Values    map[string]any
	ID        string // primary key, never sent to the client
	Token     string // cookie value
	IP        string
	UserAgent string

	dirty bool
	isNew bool
}

// New returns a fresh session that still needs to be persisted.
func New(id, token string, expiresAt time.Time) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Token:        token,
		Values:       make(map[string]any),
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    expiresAt,
		isNew:        true,
		dirty:        true,
	}
}

// SetValue stores val and marks the session dirty.
func (s *Session) SetValue(key string, val any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = val
	s.dirty = true
}

// GetValue returns the value stored under key.
func (s *Session) GetValue(key string) (any, bool) {
	val, ok := s.Values[key]
	return val, ok
}

// DeleteValue removes key, marking the session dirty if it existed.
func (s *Session) DeleteValue(key string) {
	if _, ok := s.Values[key]; ok {
		delete(s.Values, key)
		s.dirty = true
	}
}

// IsDirty reports whether the session has unsaved changes.
func (s *Session) IsDirty() bool {
	return s.dirty
}

// ClearDirty marks the session as saved.
func (s *Session) ClearDirty() {
	s.dirty = false
}

// MarkDirty forces the next save.
func (s *Session) MarkDirty() {
	s.dirty = true
}

// IsNew reports whether the session was created during this request.
func (s *Session) IsNew() bool {
	return s.isNew
}

// ClearNew marks the session as persisted once.
func (s *Session) ClearNew() {
	s.isNew = false
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Clone returns a copy with its own Values map. Values themselves are
// shared, so callers replace rather than mutate them.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Values = maps.Clone(s.Values)
	if cp.Values == nil {
		cp.Values = make(map[string]any)
	}
	return &cp
}

// Value returns the value under key as T.
func Value[T any](s *Session, key string) (T, error) {
	var zero T
	if s == nil {
		return zero, ErrNotFound
	}

	val, ok := s.GetValue(key)
	if !ok {
		return zero, ErrNotFound
	}

	typed, ok := val.(T)
	if !ok {
		return zero, errors.New("session: type mismatch for key: " + key)
	}
	return typed, nil
}

// ValueOr is Value with a fallback.
func ValueOr[T any](s *Session, key string, defaultVal T) T {
	val, err := Value[T](s, key)
	if err != nil {
		return defaultVal
	}
	return val
}
