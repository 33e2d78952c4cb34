package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"kanban-cli/internal/model"
)

func newTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r, err := NewRedisStore(mr.Addr(), "test", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	empty, err := r.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, empty.Boards)

	want := sampleState()
	require.NoError(t, r.Save(ctx, want))
	require.True(t, mr.Exists("test:state"))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestRedisStoreActivityIsCappedAndNewestFirst(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRedis(t)

	for i := 0; i < maxRedisActivity+5; i++ {
		require.NoError(t, r.AppendActivity(ctx, model.Activity{ID: "a", Type: "addTask"}))
	}
	require.NoError(t, r.AppendActivity(ctx, model.Activity{ID: "last", Type: "sort"}))

	n, err := r.Client.LLen(ctx, r.activityKey()).Result()
	require.NoError(t, err)
	require.EqualValues(t, maxRedisActivity, n)

	got, err := r.ListActivity(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "last", got[0].ID)
}

func TestRedisStoreRequiresAddr(t *testing.T) {
	_, err := NewRedisStore("", "x", nil)
	require.Error(t, err)
}

func TestOpenSelectsBackend(t *testing.T) {
	mr := miniredis.RunT(t)

	b, closeFn, err := Open("", t.TempDir(), nil, nil)
	require.NoError(t, err)
	require.IsType(t, Store{}, b)
	require.NoError(t, closeFn())

	cfg := &GlobalConfig{Redis: RedisConfig{Addr: mr.Addr(), Key: "ws"}}
	b, closeFn, err = Open(BackendRedis, "", cfg, nil)
	require.NoError(t, err)
	rs, ok := b.(*RedisStore)
	require.True(t, ok)
	require.Equal(t, "ws", rs.Prefix)
	require.NoError(t, closeFn())

	_, _, err = Open("etcd", "", cfg, nil)
	require.Error(t, err)
}
