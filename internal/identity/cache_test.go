package identity

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velmurzaev/storefront-console/internal/models"
)

// kvFake — key/value-хранилище в памяти, совместимое с redis-обёрткой.
type kvFake struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newKVFake() *kvFake {
	return &kvFake{data: map[string][]byte{}}
}

func (f *kvFake) Get(_ context.Context, key string, result any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return false, err
	}
	return true, nil
}

func (f *kvFake) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = raw
	return nil
}

func (f *kvFake) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

// corrupt записывает в ключ заведомо невалидный JSON.
func (f *kvFake) corrupt(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = []byte("{not json")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCache_SetAndGetPrincipal(t *testing.T) {
	kv := newKVFake()
	cache := New(kv, time.Hour, discardLogger())
	ctx := context.Background()

	p := models.Principal{ID: 7, Username: "masha", Role: "admin"}
	require.NoError(t, cache.SetPrincipal(ctx, "sid-1", p, "tok-1"))

	got := cache.Principal(ctx, "sid-1")
	require.NotNil(t, got)
	assert.Equal(t, p, *got)
	assert.Equal(t, "tok-1", cache.Token(ctx, "sid-1"))
}

func TestCache_PrincipalAbsent(t *testing.T) {
	cache := New(newKVFake(), time.Hour, discardLogger())

	assert.Nil(t, cache.Principal(context.Background(), "unknown"))
	assert.Empty(t, cache.Token(context.Background(), "unknown"))
}

func TestCache_CorruptPrincipalDegradesToNil(t *testing.T) {
	kv := newKVFake()
	cache := New(kv, time.Hour, discardLogger())
	ctx := context.Background()

	require.NoError(t, cache.SetPrincipal(ctx, "sid-1", models.Principal{ID: 1, Username: "u", Role: "user"}, "tok"))
	kv.corrupt("session:sid-1:principal")

	// Повреждённое значение неотличимо от отсутствия пользователя.
	assert.Nil(t, cache.Principal(ctx, "sid-1"))
}

func TestCache_ClearRemovesBothKeys(t *testing.T) {
	kv := newKVFake()
	cache := New(kv, time.Hour, discardLogger())
	ctx := context.Background()

	require.NoError(t, cache.SetPrincipal(ctx, "sid-1", models.Principal{ID: 1, Username: "u", Role: "user"}, "tok"))
	require.NoError(t, cache.Clear(ctx, "sid-1"))

	assert.Nil(t, cache.Principal(ctx, "sid-1"))
	assert.Empty(t, cache.Token(ctx, "sid-1"))
}

func TestCache_SubscribeNotifiedSynchronously(t *testing.T) {
	kv := newKVFake()
	cache := New(kv, time.Hour, discardLogger())
	ctx := context.Background()

	var events []*models.Principal
	cache.Subscribe(func(sid string, p *models.Principal) {
		assert.Equal(t, "sid-1", sid)
		events = append(events, p)
	})

	require.NoError(t, cache.SetPrincipal(ctx, "sid-1", models.Principal{ID: 1, Username: "u", Role: "user"}, "tok"))
	require.NoError(t, cache.Clear(ctx, "sid-1"))

	require.Len(t, events, 2)
	require.NotNil(t, events[0])
	assert.Equal(t, "u", events[0].Username)
	assert.Nil(t, events[1])
}

func TestCache_SessionsAreIsolated(t *testing.T) {
	kv := newKVFake()
	cache := New(kv, time.Hour, discardLogger())
	ctx := context.Background()

	require.NoError(t, cache.SetPrincipal(ctx, "sid-1", models.Principal{ID: 1, Username: "a", Role: "user"}, "tok-a"))
	require.NoError(t, cache.SetPrincipal(ctx, "sid-2", models.Principal{ID: 2, Username: "b", Role: "admin"}, "tok-b"))

	require.NoError(t, cache.Clear(ctx, "sid-1"))

	assert.Nil(t, cache.Principal(ctx, "sid-1"))
	got := cache.Principal(ctx, "sid-2")
	require.NotNil(t, got)
	assert.Equal(t, "b", got.Username)
}
