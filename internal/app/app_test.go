package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"investconnect/internal/auth"
	"investconnect/internal/compose"
	"investconnect/internal/mock"
	"investconnect/internal/models"
	"investconnect/internal/store"
)

var now = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

type recordingSaver struct {
	mu    sync.Mutex
	saved []store.State
}

func (r *recordingSaver) Save(_ context.Context, st store.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, st)
	return nil
}

func newTestApp(t *testing.T, saver Saver, delay time.Duration) *App {
	t.Helper()
	data := mock.New(now)
	mgr, err := auth.NewManager(data.Accounts(), bcrypt.MinCost)
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	return New(store.New(logger), data, mgr, saver, logger, Options{
		Delay:    delay,
		PageSize: 5,
		Now:      func() time.Time { return now },
	})
}

func login(t *testing.T, a *App) {
	t.Helper()
	require.NoError(t, a.Login(context.Background(), "test@example.com", auth.DemoPassword))
}

func TestLogin(t *testing.T) {
	t.Run("Test success seeds the follow graph", func(t *testing.T) {
		a := newTestApp(t, nil, 0)
		login(t, a)
		st := a.State()
		require.True(t, st.Auth.IsAuthenticated)
		require.Equal(t, "current-user", st.Auth.User.ID)
		require.Equal(t, []string{"1", "4"}, st.User.Following)
	})

	t.Run("Test bad password", func(t *testing.T) {
		a := newTestApp(t, nil, 0)
		err := a.Login(context.Background(), "test@example.com", "nope")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
		st := a.State()
		require.False(t, st.Auth.IsAuthenticated)
		require.False(t, st.Auth.IsLoading)
		require.Equal(t, "Wrong email or password", st.Auth.Error)

		a.ClearAuthError()
		require.Empty(t, a.State().Auth.Error)
	})

	t.Run("Test cancelled while waiting", func(t *testing.T) {
		a := newTestApp(t, nil, time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := a.Login(ctx, "test@example.com", auth.DemoPassword)
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, loginFailedMsg, a.State().Auth.Error)
	})

	t.Run("Test register then login", func(t *testing.T) {
		a := newTestApp(t, nil, 0)
		_, err := a.Register(context.Background(), "newbie", "newbie@example.com", "longenough", "longenough")
		require.NoError(t, err)
		require.NoError(t, a.Login(context.Background(), "newbie@example.com", "longenough"))
		a.Logout()
		require.False(t, a.State().Auth.IsAuthenticated)
	})
}

func TestUpdateProfile(t *testing.T) {
	a := newTestApp(t, nil, 0)
	_, err := a.UpdateProfile(context.Background(), store.ProfilePatch{Bio: "x"})
	require.ErrorIs(t, err, ErrNotAuthenticated)

	login(t, a)
	u, err := a.UpdateProfile(context.Background(), store.ProfilePatch{DisplayName: "Tester", Email: "tester@example.com"})
	require.NoError(t, err)
	require.Equal(t, "Tester", u.DisplayName)
	require.Equal(t, "testuser", u.Username)

	a.Logout()
	require.NoError(t, a.Login(context.Background(), "tester@example.com", auth.DemoPassword))

	_, err = a.UpdateProfile(context.Background(), store.ProfilePatch{Email: "warren@example.com"})
	require.ErrorIs(t, err, auth.ErrAccountExists)
	_, err = a.UpdateProfile(context.Background(), store.ProfilePatch{Username: "crypto_mike"})
	require.ErrorIs(t, err, auth.ErrAccountExists)
	require.Equal(t, "tester@example.com", a.State().Auth.User.Email)
	require.Equal(t, "testuser", a.State().Auth.User.Username)

	a.Logout()
	require.NoError(t, a.Login(context.Background(), "warren@example.com", auth.DemoPassword))
	require.Equal(t, "1", a.State().Auth.User.ID)
}

func TestFeedPaging(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil, 0)

	require.NoError(t, a.LoadFeed(ctx))
	st := a.State()
	require.Len(t, st.Feed.Posts, 5)
	require.Equal(t, 1, st.Feed.CurrentPage)
	require.True(t, st.Feed.HasMore)
	require.False(t, st.Feed.IsLoading)

	require.NoError(t, a.LoadMore(ctx))
	st = a.State()
	require.Len(t, st.Feed.Posts, 8)
	require.Equal(t, 2, st.Feed.CurrentPage)
	require.False(t, st.Feed.HasMore)

	require.NoError(t, a.LoadMore(ctx))
	require.Len(t, a.State().Feed.Posts, 8)

	require.NoError(t, a.RefreshFeed(ctx))
	st = a.State()
	require.Len(t, st.Feed.Posts, 5)
	require.False(t, st.Feed.IsRefreshing)
}

func TestSetFilterRefetches(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil, 0)
	require.NoError(t, a.LoadFeed(ctx))

	require.NoError(t, a.SetFilter(ctx, models.FilterTrending))
	st := a.State()
	require.Equal(t, models.FilterTrending, st.Feed.Filter)
	require.Equal(t, "6", st.Feed.Posts[0].ID)

	require.NoError(t, a.SetFilter(ctx, models.FilterFollowing))
	require.Empty(t, a.State().Feed.Posts)

	require.ErrorIs(t, a.SetFilter(ctx, "popular"), ErrInvalidFilter)
}

func TestFollowingFeedTracksGraph(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil, 0)
	login(t, a)

	require.NoError(t, a.SetFilter(ctx, models.FilterFollowing))
	st := a.State()
	require.Len(t, st.Feed.Posts, 3)
	require.False(t, st.Feed.HasMore)

	a.Follow("3")
	require.NoError(t, a.RefreshFeed(ctx))
	st = a.State()
	require.Len(t, st.Feed.Posts, 5)
	require.False(t, st.Feed.HasMore)

	a.Follow("2")
	require.NoError(t, a.RefreshFeed(ctx))
	require.True(t, a.State().Feed.HasMore)
}

func TestLoadMoreDropsPageAfterFilterChange(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil, 50*time.Millisecond)
	require.NoError(t, a.LoadFeed(ctx))

	done := make(chan error, 1)
	go func() { done <- a.LoadMore(ctx) }()
	require.Eventually(t, func() bool { return a.State().Feed.IsLoading }, time.Second, time.Millisecond)
	a.Store().Dispatch(store.SetFilter(models.FilterTrending))
	require.NoError(t, <-done)

	st := a.State()
	require.Equal(t, models.FilterTrending, st.Feed.Filter)
	require.Empty(t, st.Feed.Posts)
	require.Equal(t, 1, st.Feed.CurrentPage)
}

func TestFeedFailureRecordsError(t *testing.T) {
	a := newTestApp(t, nil, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, a.LoadFeed(ctx))
	st := a.State()
	require.False(t, st.Feed.IsLoading)
	require.NotEmpty(t, st.Feed.Error)
}

func TestEngagement(t *testing.T) {
	a := newTestApp(t, nil, 0)
	require.NoError(t, a.LoadFeed(context.Background()))

	p, ok := a.Like("1")
	require.True(t, ok)
	require.True(t, p.IsLiked)
	require.Equal(t, 1244, p.LikesCount)

	p, _ = a.Unlike("1")
	require.Equal(t, 1243, p.LikesCount)

	_, ok = a.Like("missing")
	require.False(t, ok)

	a.Save("1")
	saved := a.Saved()
	ids := []string{}
	for _, s := range saved {
		ids = append(ids, s.ID)
	}
	require.Contains(t, ids, "1")
	p, _ = a.Unsave("1")
	require.False(t, p.IsSaved)
}

func TestCreateAndDeletePost(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil, 0)
	require.NoError(t, a.LoadFeed(ctx))

	_, err := a.CreatePost(ctx, compose.Draft{Content: "Long $TSLA"})
	require.ErrorIs(t, err, ErrNotAuthenticated)

	login(t, a)
	p, err := a.CreatePost(ctx, compose.Draft{Content: "Long $TSLA #ev", Category: "stocks"})
	require.NoError(t, err)
	st := a.State()
	require.Equal(t, p.ID, st.Feed.Posts[0].ID)
	require.Equal(t, []string{"TSLA"}, st.Feed.Posts[0].Tickers)
	require.Equal(t, now, st.Feed.Posts[0].CreatedAt)

	_, err = a.CreatePost(ctx, compose.Draft{Content: " "})
	require.ErrorIs(t, err, compose.ErrEmptyContent)

	require.ErrorIs(t, a.DeletePost("1"), ErrForbidden)
	require.ErrorIs(t, a.DeletePost("missing"), ErrNotFound)
	require.NoError(t, a.DeletePost(p.ID))
	_, ok := a.State().Feed.Post(p.ID)
	require.False(t, ok)
}

func TestPostDetail(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil, 0)
	require.NoError(t, a.LoadFeed(ctx))
	a.Like("1")

	p, comments, err := a.Post(ctx, "1")
	require.NoError(t, err)
	require.True(t, p.IsLiked)
	require.Len(t, comments, 2)

	p, _, err = a.Post(ctx, "8")
	require.NoError(t, err)
	require.Equal(t, "crypto_mike", p.Username)

	_, _, err = a.Post(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProfilesAndFollow(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil, 0)
	login(t, a)

	p, err := a.ViewProfile(ctx, "2")
	require.NoError(t, err)
	require.False(t, p.IsFollowing)
	require.Equal(t, 8721, p.FollowersCount)

	p, ok := a.Follow("2")
	require.True(t, ok)
	require.True(t, p.IsFollowing)
	require.Equal(t, 8722, p.FollowersCount)

	p, _ = a.Unfollow("2")
	require.False(t, p.IsFollowing)
	require.Equal(t, 8721, p.FollowersCount)

	p, err = a.ViewProfile(ctx, "4")
	require.NoError(t, err)
	require.True(t, p.IsFollowing)

	_, err = a.ViewProfile(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, userMissingMsg, a.State().User.Error)

	posts, err := a.UserPosts(ctx, "3")
	require.NoError(t, err)
	require.Len(t, posts, 2)
}

func TestNotifications(t *testing.T) {
	a := newTestApp(t, nil, 0)
	require.NoError(t, a.LoadNotifications(context.Background()))
	require.Equal(t, 2, a.State().Notification.UnreadCount)

	a.MarkRead("n1")
	require.Equal(t, 1, a.State().Notification.UnreadCount)

	n := a.Notify(models.Notification{Type: models.NotifyPriceAlert, Message: "$AAPL crossed 200"})
	require.NotEmpty(t, n.ID)
	require.Equal(t, now, n.CreatedAt)
	st := a.State()
	require.Equal(t, n.ID, st.Notification.Notifications[0].ID)
	require.Equal(t, 2, st.Notification.UnreadCount)

	a.MarkAllRead()
	require.Zero(t, a.State().Notification.UnreadCount)
	a.ClearNotifications()
	require.Empty(t, a.State().Notification.Notifications)
}

func TestSearch(t *testing.T) {
	a := newTestApp(t, nil, 0)
	res := a.Search("crypto")
	require.Len(t, res.Users, 1)
	require.Contains(t, res.Hashtags, "crypto")
}

func TestAutoPersist(t *testing.T) {
	saver := &recordingSaver{}
	a := newTestApp(t, saver, 0)

	require.NoError(t, a.LoadFeed(context.Background()))
	require.Empty(t, saver.saved)

	login(t, a)
	a.Follow("2")
	require.NotEmpty(t, saver.saved)
	last := saver.saved[len(saver.saved)-1]
	require.True(t, last.Auth.IsAuthenticated)
	require.Contains(t, last.User.Following, "2")
}
