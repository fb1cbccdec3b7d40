// Package app drives the store the way the screens do: it calls the data
// provider behind a simulated network delay and dispatches the results.
package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"investconnect/internal/compose"
	"investconnect/internal/models"
	"investconnect/internal/search"
	"investconnect/internal/store"
)

const (
	loginFailedMsg = "Login failed. Please try again."
	userMissingMsg = "User not found"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("not allowed")
	ErrInvalidFilter    = errors.New("unknown feed filter")
)

type Provider interface {
	ListPosts(filter models.Filter, following []string) []models.Post
	GetPost(id string) (models.Post, bool)
	UserPosts(userID string) []models.Post
	ListComments(postID string) []models.Comment
	GetUser(id string) (models.UserProfile, bool)
	Users() []models.UserProfile
	FollowingIDs() []string
	ListNotifications() []models.Notification
}

type Authenticator interface {
	Login(email, password string) (models.Session, error)
	Register(username, email, password, confirm string) (models.User, error)
	Update(u models.User) error
}

type Saver interface {
	Save(ctx context.Context, st store.State) error
}

type Options struct {
	Delay    time.Duration
	PageSize int
	Now      func() time.Time
}

type App struct {
	store    *store.Store
	data     Provider
	auth     Authenticator
	saver    Saver
	log      logrus.FieldLogger
	delay    time.Duration
	pageSize int
	now      func() time.Time
}

// New wires the app to s. When saver is non-nil, every auth and user action
// is persisted.
func New(s *store.Store, data Provider, auth Authenticator, saver Saver, log logrus.FieldLogger, opts Options) *App {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 5
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	a := &App{
		store:    s,
		data:     data,
		auth:     auth,
		saver:    saver,
		log:      log,
		delay:    opts.Delay,
		pageSize: opts.PageSize,
		now:      opts.Now,
	}
	if saver != nil {
		s.Subscribe(a.persist)
	}
	return a
}

func (a *App) Store() *store.Store { return a.store }

func (a *App) State() store.State { return a.store.Snapshot() }

func (a *App) persist(actionType string, st store.State) {
	switch store.Slice(actionType) {
	case "auth", "user":
	default:
		return
	}
	if err := a.saver.Save(context.Background(), st); err != nil {
		a.log.WithError(err).WithField("action", actionType).Error("persist state")
	}
}

// wait stands in for network latency.
func (a *App) wait(ctx context.Context) error {
	if a.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(a.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (a *App) currentUser() (models.User, error) {
	st := a.store.Snapshot()
	if !st.Auth.IsAuthenticated {
		return models.User{}, ErrNotAuthenticated
	}
	return *st.Auth.User, nil
}

// Auth

func (a *App) Login(ctx context.Context, email, password string) error {
	a.store.Dispatch(store.LoginStart())
	if err := a.wait(ctx); err != nil {
		a.store.Dispatch(store.LoginFailure(loginFailedMsg))
		return err
	}
	session, err := a.auth.Login(email, password)
	if err != nil {
		a.store.Dispatch(store.LoginFailure(err.Error()))
		return err
	}
	a.store.Dispatch(store.LoginSuccess(session))
	a.store.Dispatch(store.SetFollowing(a.data.FollowingIDs()))
	a.log.WithField("user", session.User.ID).Info("logged in")
	return nil
}

func (a *App) Register(ctx context.Context, username, email, password, confirm string) (models.User, error) {
	if err := a.wait(ctx); err != nil {
		return models.User{}, err
	}
	return a.auth.Register(username, email, password, confirm)
}

func (a *App) Logout() {
	a.store.Dispatch(store.Logout())
}

func (a *App) ClearAuthError() {
	a.store.Dispatch(store.ClearAuthError())
}

// UpdateProfile checks the edited identity against the account directory
// before the session picks it up.
func (a *App) UpdateProfile(ctx context.Context, p store.ProfilePatch) (models.User, error) {
	cur, err := a.currentUser()
	if err != nil {
		return models.User{}, err
	}
	if err := a.wait(ctx); err != nil {
		return models.User{}, err
	}
	if err := a.auth.Update(p.Apply(cur)); err != nil {
		return models.User{}, err
	}
	a.store.Dispatch(store.UpdateUser(p))
	return a.currentUser()
}

// Feed

// LoadFeed fetches the first page for the current filter.
func (a *App) LoadFeed(ctx context.Context) error {
	return a.fetchFirstPage(ctx, false)
}

func (a *App) RefreshFeed(ctx context.Context) error {
	return a.fetchFirstPage(ctx, true)
}

func (a *App) fetchFirstPage(ctx context.Context, refresh bool) error {
	req := a.store.BeginFeedRequest(refresh)
	if err := a.wait(ctx); err != nil {
		a.store.Dispatch(store.FetchFeedFailure(req.Token, err.Error()))
		return err
	}
	page, more := a.page(a.data.ListPosts(req.Filter, req.Following), 1)
	a.store.Dispatch(store.FetchFeedPageSuccess(req.Token, page, more))
	return nil
}

// LoadMore appends the next page. It does nothing when the feed is busy or
// exhausted.
func (a *App) LoadMore(ctx context.Context) error {
	req, ok := a.store.BeginNextPage()
	if !ok {
		return nil
	}
	if err := a.wait(ctx); err != nil {
		a.store.Dispatch(store.FetchFeedFailure(req.Token, err.Error()))
		return err
	}
	page, more := a.page(a.data.ListPosts(req.Filter, req.Following), req.Page)
	a.store.Dispatch(store.FetchMoreFeedSuccess(req.Token, page, more))
	return nil
}

func (a *App) page(all []models.Post, n int) ([]models.Post, bool) {
	start := (n - 1) * a.pageSize
	if start >= len(all) {
		return []models.Post{}, false
	}
	end := start + a.pageSize
	if end >= len(all) {
		return all[start:], false
	}
	return all[start:end], true
}

// SetFilter switches the feed and refetches when the filter changed.
func (a *App) SetFilter(ctx context.Context, f models.Filter) error {
	if !f.Valid() {
		return ErrInvalidFilter
	}
	changed := a.store.Snapshot().Feed.Filter != f
	a.store.Dispatch(store.SetFilter(f))
	if !changed {
		return nil
	}
	return a.LoadFeed(ctx)
}

func (a *App) Like(id string) (models.Post, bool)   { return a.toggle(store.LikePost(id), id) }
func (a *App) Unlike(id string) (models.Post, bool) { return a.toggle(store.UnlikePost(id), id) }
func (a *App) Save(id string) (models.Post, bool)   { return a.toggle(store.SavePost(id), id) }
func (a *App) Unsave(id string) (models.Post, bool) { return a.toggle(store.UnsavePost(id), id) }

// toggle applies an optimistic engagement change and returns the post as it
// now stands in the feed.
func (a *App) toggle(act store.Action, id string) (models.Post, bool) {
	a.store.Dispatch(act)
	return a.store.Snapshot().Feed.Post(id)
}

func (a *App) CreatePost(ctx context.Context, d compose.Draft) (models.Post, error) {
	u, err := a.currentUser()
	if err != nil {
		return models.Post{}, err
	}
	p, err := compose.Build(u, d, a.now())
	if err != nil {
		return models.Post{}, err
	}
	if err := a.wait(ctx); err != nil {
		return models.Post{}, err
	}
	a.store.Dispatch(store.AddPost(p))
	return p, nil
}

// DeletePost removes one of the viewer's own posts from the feed.
func (a *App) DeletePost(id string) error {
	u, err := a.currentUser()
	if err != nil {
		return err
	}
	p, ok := a.store.Snapshot().Feed.Post(id)
	if !ok {
		return ErrNotFound
	}
	if p.UserID != u.ID {
		return ErrForbidden
	}
	a.store.Dispatch(store.DeletePost(id))
	return nil
}

// Post returns a post with its comments. The feed copy wins over the
// provider's so the viewer's own likes and saves show.
func (a *App) Post(ctx context.Context, id string) (models.Post, []models.Comment, error) {
	if err := a.wait(ctx); err != nil {
		return models.Post{}, nil, err
	}
	p, ok := a.store.Snapshot().Feed.Post(id)
	if !ok {
		p, ok = a.data.GetPost(id)
	}
	if !ok {
		return models.Post{}, nil, ErrNotFound
	}
	return p, a.data.ListComments(id), nil
}

func (a *App) Saved() []models.Post {
	return a.store.Snapshot().Feed.Saved()
}

// Users

func (a *App) ViewProfile(ctx context.Context, id string) (models.UserProfile, error) {
	a.store.Dispatch(store.FetchUserStart())
	if err := a.wait(ctx); err != nil {
		a.store.Dispatch(store.FetchUserFailure(err.Error()))
		return models.UserProfile{}, err
	}
	p, ok := a.data.GetUser(id)
	if !ok {
		a.store.Dispatch(store.FetchUserFailure(userMissingMsg))
		return models.UserProfile{}, ErrNotFound
	}
	a.store.Dispatch(store.FetchUserSuccess(p))
	return a.store.Snapshot().User.Profiles[id], nil
}

func (a *App) UserPosts(ctx context.Context, id string) ([]models.Post, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	return a.data.UserPosts(id), nil
}

func (a *App) Follow(id string) (models.UserProfile, bool) {
	a.store.Dispatch(store.FollowUser(id))
	p, ok := a.store.Snapshot().User.Profiles[id]
	return p, ok
}

func (a *App) Unfollow(id string) (models.UserProfile, bool) {
	a.store.Dispatch(store.UnfollowUser(id))
	p, ok := a.store.Snapshot().User.Profiles[id]
	return p, ok
}

// Notifications

func (a *App) LoadNotifications(ctx context.Context) error {
	a.store.Dispatch(store.FetchNotificationsStart())
	if err := a.wait(ctx); err != nil {
		a.store.Dispatch(store.FetchNotificationsFailure(err.Error()))
		return err
	}
	a.store.Dispatch(store.FetchNotificationsSuccess(a.data.ListNotifications()))
	return nil
}

// Notify pushes a notification to the top of the list, filling in the id
// and timestamp when missing.
func (a *App) Notify(n models.Notification) models.Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = a.now().UTC()
	}
	if n.Type == "" {
		n.Type = models.NotifySystem
	}
	a.store.Dispatch(store.AddNotification(n))
	return n
}

func (a *App) MarkRead(id string) {
	a.store.Dispatch(store.MarkAsRead(id))
}

func (a *App) MarkAllRead() {
	a.store.Dispatch(store.MarkAllAsRead())
}

func (a *App) ClearNotifications() {
	a.store.Dispatch(store.ClearNotifications())
}

func (a *App) Search(query string) search.Results {
	return search.Run(query, a.data.Users(), a.data.ListPosts(models.FilterLatest, nil))
}
