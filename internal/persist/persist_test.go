package persist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"investconnect/internal/db"
	"investconnect/internal/models"
	"investconnect/internal/store"
)

func newKV(t *testing.T) KV {
	t.Helper()
	dbc, err := db.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { dbc.Close() })
	require.NoError(t, db.Migrate(dbc))
	return db.NewSQLiteKV(dbc)
}

func loggedInStore() *store.Store {
	s := store.New(nil)
	s.Dispatch(store.LoginSuccess(models.Session{
		User:         models.User{ID: "current-user", Username: "testuser", Email: "test@example.com"},
		Token:        "access",
		RefreshToken: "refresh",
	}))
	s.Dispatch(store.CacheProfile(models.UserProfile{ID: "2", Username: "tech_trader", FollowersCount: 8721}))
	s.Dispatch(store.FollowUser("2"))
	s.Dispatch(store.FetchFeedSuccess(0, []models.Post{{ID: "1"}}))
	s.Dispatch(store.FetchNotificationsFailure("offline"))
	return s
}

func TestSaveAndRehydrate(t *testing.T) {
	ctx := context.Background()
	p := New(newKV(t))
	src := loggedInStore()
	require.NoError(t, p.Save(ctx, src.Snapshot()))

	dst := store.New(nil)
	ok, err := p.Rehydrate(ctx, dst)
	require.NoError(t, err)
	require.True(t, ok)

	got := dst.Snapshot()
	want := src.Snapshot()
	require.True(t, got.Auth.IsAuthenticated)
	if diff := cmp.Diff(want.Auth.User, got.Auth.User); diff != "" {
		t.Fatalf("user mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, want.User.Following, got.User.Following)
	require.Equal(t, 8722, got.User.Profiles["2"].FollowersCount)
	require.True(t, got.User.Profiles["2"].IsFollowing)

	require.Empty(t, got.Feed.Posts)
	require.Empty(t, got.Notification.Error)
}

func TestLoadNothingSaved(t *testing.T) {
	p := New(newKV(t))
	r, err := p.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, r)

	ok, err := p.Rehydrate(context.Background(), store.New(nil))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLoadRejectsOtherVersions(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	require.NoError(t, kv.Set(ctx, stateKey, `{"version":2}`))

	_, err := New(kv).Load(ctx)
	require.ErrorIs(t, err, ErrSchemaVersion)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	p := New(newKV(t))
	require.NoError(t, p.Save(ctx, loggedInStore().Snapshot()))
	require.NoError(t, p.Clear(ctx))
	r, err := p.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, r)
}
