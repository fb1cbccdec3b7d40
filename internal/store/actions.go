package store

import "investconnect/internal/models"

// Action is a named state transition. Reduce must not block or do I/O.
type Action interface {
	Type() string
	Reduce(*State)
}

type action struct {
	typ    string
	reduce func(*State)
}

func (a action) Type() string    { return a.typ }
func (a action) Reduce(s *State) { a.reduce(s) }

func newAction(typ string, fn func(*State)) Action {
	return action{typ: typ, reduce: fn}
}

// feedResult is the completion of a feed request. It only lands if its
// token still names the latest request.
type feedResult struct {
	typ    string
	token  uint64
	reduce func(*FeedState)
}

func (r feedResult) Type() string { return r.typ }

func (r feedResult) Reduce(s *State) {
	if s.Feed.Current(r.token) {
		r.reduce(&s.Feed)
	}
}

func (r feedResult) Stale(s *State) bool { return !s.Feed.Current(r.token) }

// Auth

func LoginStart() Action {
	return newAction("auth/loginStart", func(s *State) { s.Auth.BeginLogin() })
}

func LoginSuccess(session models.Session) Action {
	return newAction("auth/loginSuccess", func(s *State) { s.Auth.CompleteLogin(session) })
}

func LoginFailure(reason string) Action {
	return newAction("auth/loginFailure", func(s *State) { s.Auth.FailLogin(reason) })
}

func Logout() Action {
	return newAction("auth/logout", func(s *State) { s.Auth.Logout() })
}

func UpdateUser(p ProfilePatch) Action {
	return newAction("auth/updateUser", func(s *State) { s.Auth.PatchProfile(p) })
}

func ClearAuthError() Action {
	return newAction("auth/clearError", func(s *State) { s.Auth.ClearError() })
}

// Feed

func FetchFeedStart() Action {
	return newAction("feed/fetchFeedStart", func(s *State) { s.Feed.BeginFetch() })
}

func RefreshFeedStart() Action {
	return newAction("feed/refreshFeedStart", func(s *State) { s.Feed.BeginRefresh() })
}

func FetchFeedSuccess(token uint64, posts []models.Post) Action {
	return feedResult{typ: "feed/fetchFeedSuccess", token: token, reduce: func(f *FeedState) {
		f.FetchSucceeded(posts)
	}}
}

// FetchFeedPageSuccess is FetchFeedSuccess for a paged source: it also
// records whether a second page exists.
func FetchFeedPageSuccess(token uint64, posts []models.Post, hasMore bool) Action {
	return feedResult{typ: "feed/fetchFeedPageSuccess", token: token, reduce: func(f *FeedState) {
		f.FetchSucceeded(posts)
		f.HasMore = hasMore
	}}
}

func FetchMoreFeedSuccess(token uint64, posts []models.Post, hasMore bool) Action {
	return feedResult{typ: "feed/fetchMoreFeedSuccess", token: token, reduce: func(f *FeedState) {
		f.AppendSucceeded(posts, hasMore)
	}}
}

func FetchFeedFailure(token uint64, reason string) Action {
	return feedResult{typ: "feed/fetchFeedFailure", token: token, reduce: func(f *FeedState) {
		f.FetchFailed(reason)
	}}
}

func LikePost(id string) Action {
	return newAction("feed/likePost", func(s *State) { s.Feed.Like(id) })
}

func UnlikePost(id string) Action {
	return newAction("feed/unlikePost", func(s *State) { s.Feed.Unlike(id) })
}

func SavePost(id string) Action {
	return newAction("feed/savePost", func(s *State) { s.Feed.Save(id) })
}

func UnsavePost(id string) Action {
	return newAction("feed/unsavePost", func(s *State) { s.Feed.Unsave(id) })
}

func AddPost(p models.Post) Action {
	return newAction("feed/addPost", func(s *State) { s.Feed.AddPost(p) })
}

func DeletePost(id string) Action {
	return newAction("feed/deletePost", func(s *State) { s.Feed.RemovePost(id) })
}

func SetFilter(f models.Filter) Action {
	return newAction("feed/setFilter", func(s *State) { s.Feed.SetFilter(f) })
}

// User

func FetchUserStart() Action {
	return newAction("user/fetchUserStart", func(s *State) { s.User.BeginFetch() })
}

func FetchUserSuccess(p models.UserProfile) Action {
	return newAction("user/fetchUserSuccess", func(s *State) { s.User.FetchSucceeded(p) })
}

func FetchUserFailure(reason string) Action {
	return newAction("user/fetchUserFailure", func(s *State) { s.User.FetchFailed(reason) })
}

func CacheProfile(p models.UserProfile) Action {
	return newAction("user/cacheProfile", func(s *State) { s.User.CacheProfile(p) })
}

func FollowUser(id string) Action {
	return newAction("user/followUser", func(s *State) { s.User.Follow(id) })
}

func UnfollowUser(id string) Action {
	return newAction("user/unfollowUser", func(s *State) { s.User.Unfollow(id) })
}

func SetFollowing(ids []string) Action {
	return newAction("user/setFollowing", func(s *State) { s.User.SetFollowing(ids) })
}

func SetFollowers(ids []string) Action {
	return newAction("user/setFollowers", func(s *State) { s.User.SetFollowers(ids) })
}

// Notification

func FetchNotificationsStart() Action {
	return newAction("notification/fetchNotificationsStart", func(s *State) { s.Notification.BeginLoad() })
}

func FetchNotificationsSuccess(list []models.Notification) Action {
	return newAction("notification/fetchNotificationsSuccess", func(s *State) { s.Notification.LoadSucceeded(list) })
}

func FetchNotificationsFailure(reason string) Action {
	return newAction("notification/fetchNotificationsFailure", func(s *State) { s.Notification.LoadFailed(reason) })
}

func AddNotification(n models.Notification) Action {
	return newAction("notification/addNotification", func(s *State) { s.Notification.AddOne(n) })
}

func MarkAsRead(id string) Action {
	return newAction("notification/markAsRead", func(s *State) { s.Notification.MarkRead(id) })
}

func MarkAllAsRead() Action {
	return newAction("notification/markAllAsRead", func(s *State) { s.Notification.MarkAllRead() })
}

func ClearNotifications() Action {
	return newAction("notification/clearNotifications", func(s *State) { s.Notification.Clear() })
}
