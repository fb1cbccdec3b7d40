package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"investconnect/internal/app"
	"investconnect/internal/auth"
	"investconnect/internal/compose"
	"investconnect/internal/models"
	"investconnect/internal/store"
	"investconnect/internal/timefmt"
)

type Handler struct {
	app *app.App
	log logrus.FieldLogger
	now func() time.Time
}

func New(a *app.App, log logrus.FieldLogger) *Handler {
	return &Handler{app: a, log: log, now: time.Now}
}

func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /state", h.State)

	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("PATCH /me", h.RequireAuth(h.UpdateMe))

	mux.HandleFunc("GET /feed", h.Feed)
	mux.HandleFunc("POST /feed/filter", h.SetFilter)
	mux.HandleFunc("POST /feed/refresh", h.Refresh)
	mux.HandleFunc("POST /feed/more", h.LoadMore)

	mux.HandleFunc("POST /posts", h.RequireAuth(h.CreatePost))
	mux.HandleFunc("GET /posts/{id}", h.PostByID)
	mux.HandleFunc("POST /posts/{id}/{op}", h.RequireAuth(h.Engage))
	mux.HandleFunc("DELETE /posts/{id}", h.RequireAuth(h.DeletePost))
	mux.HandleFunc("GET /saved", h.Saved)

	mux.HandleFunc("GET /users/{id}", h.UserByID)
	mux.HandleFunc("GET /users/{id}/posts", h.UserPosts)
	mux.HandleFunc("POST /users/{id}/{op}", h.RequireAuth(h.FollowOp))

	mux.HandleFunc("GET /notifications", h.Notifications)
	mux.HandleFunc("POST /notifications", h.RequireAuth(h.Notify))
	mux.HandleFunc("POST /notifications/read-all", h.RequireAuth(h.MarkAllRead))
	mux.HandleFunc("POST /notifications/{id}/read", h.RequireAuth(h.MarkRead))

	mux.HandleFunc("GET /search", h.Search)
	mux.HandleFunc("/", h.NotFound)
	return mux
}

func (h *Handler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.app.State().Auth.IsAuthenticated {
			h.fail(w, app.ErrNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// -------- Views

type errorBody struct {
	Error string `json:"error"`
}

type postView struct {
	models.Post
	Ago string `json:"ago"`
}

type feedView struct {
	Filter       models.Filter `json:"filter"`
	CurrentPage  int           `json:"currentPage"`
	HasMore      bool          `json:"hasMore"`
	IsLoading    bool          `json:"isLoading"`
	IsRefreshing bool          `json:"isRefreshing"`
	Error        string        `json:"error,omitempty"`
	Posts        []postView    `json:"posts"`
}

type notificationView struct {
	models.Notification
	Ago string `json:"ago"`
}

func (h *Handler) posts(in []models.Post) []postView {
	now := h.now()
	out := make([]postView, 0, len(in))
	for _, p := range in {
		out = append(out, postView{Post: p, Ago: timefmt.Ago(p.CreatedAt, now)})
	}
	return out
}

func (h *Handler) feed() feedView {
	f := h.app.State().Feed
	return feedView{
		Filter:       f.Filter,
		CurrentPage:  f.CurrentPage,
		HasMore:      f.HasMore,
		IsLoading:    f.IsLoading,
		IsRefreshing: f.IsRefreshing,
		Error:        f.Error,
		Posts:        h.posts(f.Posts),
	}
}

// -------- Helpers

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadRequest{errors.Wrap(err, "decode body")}
	}
	return nil
}

type errBadRequest struct{ error }

func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var bad errBadRequest
	switch {
	case errors.As(err, &bad),
		errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, auth.ErrPasswordMismatch),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrAccountExists),
		errors.Is(err, compose.ErrEmptyContent),
		errors.Is(err, app.ErrInvalidFilter):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, app.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, app.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, app.ErrNotFound):
		status = http.StatusNotFound
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.WithError(err).Error("request failed")
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: msg})
}

// -------- Auth

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.app.State())
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	if err := h.app.Login(r.Context(), req.Email, req.Password); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.app.State().Auth)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decode(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	u, err := h.app.Register(r.Context(), req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.app.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var patch store.ProfilePatch
	if err := decode(r, &patch); err != nil {
		h.fail(w, err)
		return
	}
	u, err := h.app.UpdateProfile(r.Context(), patch)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// -------- Feed

// Feed returns the current feed, loading the first page when it is empty.
// An optional ?filter= switches feeds first.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	if f := r.URL.Query().Get("filter"); f != "" {
		if err := h.app.SetFilter(r.Context(), models.Filter(f)); err != nil {
			h.fail(w, err)
			return
		}
	}
	if st := h.app.State().Feed; len(st.Posts) == 0 && st.HasMore && !st.IsLoading {
		if err := h.app.LoadFeed(r.Context()); err != nil {
			h.fail(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, h.feed())
}

func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filter models.Filter `json:"filter"`
	}
	if err := decode(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	if err := h.app.SetFilter(r.Context(), req.Filter); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.feed())
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.app.RefreshFeed(r.Context()); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.feed())
}

func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	if err := h.app.LoadMore(r.Context()); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.feed())
}

// -------- Posts

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var d compose.Draft
	if err := decode(r, &d); err != nil {
		h.fail(w, err)
		return
	}
	p, err := h.app.CreatePost(r.Context(), d)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.posts([]models.Post{p})[0])
}

func (h *Handler) PostByID(w http.ResponseWriter, r *http.Request) {
	p, comments, err := h.app.Post(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"post":     h.posts([]models.Post{p})[0],
		"comments": comments,
	})
}

// Engage handles like, unlike, save and unsave.
func (h *Handler) Engage(w http.ResponseWriter, r *http.Request) {
	ops := map[string]func(string) (models.Post, bool){
		"like":   h.app.Like,
		"unlike": h.app.Unlike,
		"save":   h.app.Save,
		"unsave": h.app.Unsave,
	}
	op, ok := ops[r.PathValue("op")]
	if !ok {
		h.NotFound(w, r)
		return
	}
	p, ok := op(r.PathValue("id"))
	if !ok {
		h.fail(w, app.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.posts([]models.Post{p})[0])
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.app.DeletePost(r.PathValue("id")); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Saved(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.posts(h.app.Saved()))
}

// -------- Users

func (h *Handler) UserByID(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.ViewProfile(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) UserPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.app.UserPosts(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.posts(posts))
}

func (h *Handler) FollowOp(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var (
		p  models.UserProfile
		ok bool
	)
	switch r.PathValue("op") {
	case "follow":
		p, ok = h.app.Follow(id)
	case "unfollow":
		p, ok = h.app.Unfollow(id)
	default:
		h.NotFound(w, r)
		return
	}
	body := map[string]any{
		"id":          id,
		"isFollowing": h.app.State().User.IsFollowing(id),
	}
	if ok {
		body["profile"] = p
	}
	writeJSON(w, http.StatusOK, body)
}

// -------- Notifications

func (h *Handler) notifications() map[string]any {
	n := h.app.State().Notification
	now := h.now()
	items := make([]notificationView, 0, len(n.Notifications))
	for _, item := range n.Notifications {
		items = append(items, notificationView{Notification: item, Ago: timefmt.Ago(item.CreatedAt, now)})
	}
	return map[string]any{
		"notifications": items,
		"unreadCount":   n.UnreadCount,
	}
}

// Notifications loads the list on first use and returns it.
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	if st := h.app.State().Notification; len(st.Notifications) == 0 {
		if err := h.app.LoadNotifications(r.Context()); err != nil {
			h.fail(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, h.notifications())
}

func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	var n models.Notification
	if err := decode(r, &n); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.app.Notify(n))
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.app.MarkRead(r.PathValue("id"))
	writeJSON(w, http.StatusOK, h.notifications())
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	h.app.MarkAllRead()
	writeJSON(w, http.StatusOK, h.notifications())
}

// -------- Search

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.app.Search(r.URL.Query().Get("q")))
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
}
