package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"investconnect/internal/models"
)

// State is the whole client-side state, one field per slice. It is a plain
// record and marshals to JSON as is.
type State struct {
	Auth         AuthState         `json:"auth"`
	Feed         FeedState         `json:"feed"`
	User         UserState         `json:"user"`
	Notification NotificationState `json:"notification"`
}

func NewState() State {
	return State{
		Feed:         NewFeedState(),
		User:         NewUserState(),
		Notification: NewNotificationState(),
	}
}

// Clone returns a deep copy that shares no slices or maps with s.
func (s State) Clone() State {
	return State{
		Auth:         s.Auth.clone(),
		Feed:         s.Feed.clone(),
		User:         s.User.clone(),
		Notification: s.Notification.clone(),
	}
}

// Reduce applies a to a copy of st and returns the copy.
func Reduce(st State, a Action) State {
	next := st.Clone()
	a.Reduce(&next)
	return next
}

// Slice returns the slice name an action type belongs to ("auth", "feed", ...).
func Slice(actionType string) string {
	if i := strings.IndexByte(actionType, '/'); i > 0 {
		return actionType[:i]
	}
	return actionType
}

// Listener is called after every applied action with a snapshot of the
// resulting state. Listeners run outside the store lock and must not assume
// they are the only reader.
type Listener func(actionType string, st State)

type staler interface {
	Stale(*State) bool
}

// Store serializes actions against a single State and fans the result out
// to subscribers. Listeners see snapshots in the order actions were applied
// and must not dispatch from inside the callback.
type Store struct {
	deliver   sync.Mutex
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int
	log       logrus.FieldLogger
}

func New(log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{
		state:     NewState(),
		listeners: map[int]Listener{},
		log:       log,
	}
}

func (s *Store) Dispatch(a Action) {
	s.deliver.Lock()
	defer s.deliver.Unlock()
	if snap, ok := s.apply(a, nil); ok {
		s.notify(a.Type(), snap)
	}
}

// FeedRequest is a started feed load: its token and the parameters the
// result must be computed from, read in the same step that issued the token.
type FeedRequest struct {
	Token     uint64
	Filter    models.Filter
	Page      int
	Following []string
}

// BeginFeedRequest starts a first-page load (or a refresh).
func (s *Store) BeginFeedRequest(refresh bool) FeedRequest {
	a := FetchFeedStart()
	if refresh {
		a = RefreshFeedStart()
	}
	req, _ := s.begin(a, nil)
	return req
}

// BeginNextPage starts a load-more request for the page after the current
// one. It reports false, changing nothing, while the feed is busy or
// exhausted.
func (s *Store) BeginNextPage() (FeedRequest, bool) {
	req, ok := s.begin(FetchFeedStart(), func(f FeedState) bool {
		return f.HasMore && !f.IsLoading && !f.IsRefreshing
	})
	if ok {
		req.Page++
	}
	return req, ok
}

func (s *Store) begin(a Action, guard func(FeedState) bool) (FeedRequest, bool) {
	s.deliver.Lock()
	defer s.deliver.Unlock()
	snap, ok := s.apply(a, guard)
	if !ok {
		return FeedRequest{}, false
	}
	s.notify(a.Type(), snap)
	return FeedRequest{
		Token:     snap.Feed.Request,
		Filter:    snap.Feed.Filter,
		Page:      snap.Feed.CurrentPage,
		Following: snap.User.Following,
	}, true
}

// apply reduces a under mu. guard, when set, vetoes the action against the
// feed as it stands.
func (s *Store) apply(a Action, guard func(FeedState) bool) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if guard != nil && !guard(s.state.Feed) {
		return State{}, false
	}
	if st, ok := a.(staler); ok && st.Stale(&s.state) {
		s.log.WithFields(logrus.Fields{
			"action":  a.Type(),
			"current": s.state.Feed.Request,
		}).Debug("discarding stale feed result")
		return State{}, false
	}
	a.Reduce(&s.state)
	s.log.WithField("action", a.Type()).Debug("dispatched")
	return s.state.Clone(), true
}

// notify runs with deliver held, so deliveries never overtake each other.
func (s *Store) notify(actionType string, snap State) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	ls := make([]Listener, 0, len(ids))
	for _, id := range ids {
		ls = append(ls, s.listeners[id])
	}
	s.mu.Unlock()
	for _, l := range ls {
		l(actionType, snap)
	}
}

// Subscribe registers l and returns a func that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Replace swaps in a whole new state, e.g. during rehydration. Derived
// fields are recomputed rather than trusted.
func (s *Store) Replace(st State) {
	next := st.Clone()
	next.Auth.normalize()
	next.User.syncFlags()
	next.Notification.recount()

	s.deliver.Lock()
	defer s.deliver.Unlock()
	s.mu.Lock()
	s.state = next
	snap := s.state.Clone()
	s.mu.Unlock()
	s.log.Debug("state replaced")
	s.notify("store/replace", snap)
}
