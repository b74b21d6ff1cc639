package internal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/map-framework/addon-mode-site/pkg/cache"
	"github.com/map-framework/addon-mode-site/pkg/session"
)

func newMemoryStore() *session.CacheStore {
	return session.NewCacheStore(cache.NewMemory[*session.Session](cache.WithSweepInterval(0)))
}

type failingStore struct {
	session.Store
	err error
}

func (s failingStore) Get(context.Context, string) (*session.Session, error) {
	return nil, s.err
}

func TestSessionManager_Defaults(t *testing.T) {
	t.Parallel()

	sm := NewSessionManager(newMemoryStore())
	require.Equal(t, "__sid", sm.CookieName())

	rec := httptest.NewRecorder()
	sm.SaveSession(rec, session.New("id", "tok", time.Now().Add(time.Hour)))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "__sid", c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 86400, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestSessionManager_Options(t *testing.T) {
	t.Parallel()

	sm := NewSessionManager(newMemoryStore(),
		WithSessionCookieName("site"),
		WithSessionMaxAge(60),
		WithSessionDomain("example.com"),
		WithSessionPath("/shop"),
		WithSessionSecure(true),
		WithSessionSameSite(http.SameSiteStrictMode),
	)

	rec := httptest.NewRecorder()
	sm.SaveSession(rec, session.New("id", "tok", time.Now().Add(time.Hour)))

	c := rec.Result().Cookies()[0]
	assert.Equal(t, "site", c.Name)
	assert.Equal(t, 60, c.MaxAge)
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, "/shop", c.Path)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestSessionManager_CreateAndLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sm := NewSessionManager(newMemoryStore())

	r := httptest.NewRequest(http.MethodGet, "/shop/checkout", nil)
	r.RemoteAddr = "10.0.0.7:5123"
	r.Header.Set("User-Agent", "test-agent")

	sess, err := sm.CreateSession(ctx, r)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	require.NotEmpty(t, sess.Token)
	assert.Equal(t, "10.0.0.7", sess.IP)
	assert.Equal(t, "test-agent", sess.UserAgent)
	assert.False(t, sess.IsDirty())

	r2 := httptest.NewRequest(http.MethodGet, "/shop/checkout", nil)
	r2.AddCookie(&http.Cookie{Name: sm.CookieName(), Value: sess.Token})

	loaded, err := sm.LoadSession(ctx, r2)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sess.ID, loaded.ID)
}

func TestSessionManager_LoadSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no cookie", func(t *testing.T) {
		t.Parallel()
		sm := NewSessionManager(newMemoryStore())
		sess, err := sm.LoadSession(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()
		sm := NewSessionManager(newMemoryStore())
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "__sid", Value: "missing"})
		sess, err := sm.LoadSession(ctx, r)
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		sm := NewSessionManager(failingStore{err: session.ErrExpired})
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "__sid", Value: "old"})
		sess, err := sm.LoadSession(ctx, r)
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("store down")
		sm := NewSessionManager(failingStore{err: boom})
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "__sid", Value: "tok"})
		_, err := sm.LoadSession(ctx, r)
		require.ErrorIs(t, err, boom)
	})
}

func TestSessionManager_DeleteSession(t *testing.T) {
	t.Parallel()

	sm := NewSessionManager(newMemoryStore())
	rec := httptest.NewRecorder()
	sm.DeleteSession(rec)

	c := rec.Result().Cookies()[0]
	assert.Equal(t, "__sid", c.Name)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	a, err := generateToken()
	require.NoError(t, err)
	b, err := generateToken()
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
}
