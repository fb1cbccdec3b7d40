package store

import "investconnect/internal/models"

// FeedState is the paginated, filterable post collection. Request is the
// token of the latest fetch; results carrying an older token are dropped.
type FeedState struct {
	Posts        []models.Post `json:"posts"`
	Filter       models.Filter `json:"filter"`
	CurrentPage  int           `json:"currentPage"`
	HasMore      bool          `json:"hasMore"`
	IsLoading    bool          `json:"isLoading"`
	IsRefreshing bool          `json:"isRefreshing"`
	Error        string        `json:"error,omitempty"`
	Request      uint64        `json:"request"`
}

func NewFeedState() FeedState {
	return FeedState{
		Posts:       []models.Post{},
		Filter:      models.FilterHome,
		CurrentPage: 1,
		HasMore:     true,
	}
}

// BeginFetch marks an initial load and returns its request token.
func (f *FeedState) BeginFetch() uint64 {
	f.IsLoading = true
	f.Error = ""
	f.Request++
	return f.Request
}

// BeginRefresh marks a pull-to-refresh and returns its request token.
func (f *FeedState) BeginRefresh() uint64 {
	f.IsRefreshing = true
	f.Request++
	return f.Request
}

// Current reports whether token belongs to the latest request. Zero is
// accepted unconditionally.
func (f *FeedState) Current(token uint64) bool {
	return token == 0 || token == f.Request
}

func (f *FeedState) FetchSucceeded(posts []models.Post) {
	f.IsLoading = false
	f.IsRefreshing = false
	f.Posts = clonePosts(posts)
	f.CurrentPage = 1
}

func (f *FeedState) AppendSucceeded(posts []models.Post, hasMore bool) {
	f.IsLoading = false
	f.Posts = append(f.Posts, clonePosts(posts)...)
	f.HasMore = hasMore
	f.CurrentPage++
}

func (f *FeedState) FetchFailed(reason string) {
	f.IsLoading = false
	f.IsRefreshing = false
	f.Error = reason
}

func (f *FeedState) find(id string) *models.Post {
	for i := range f.Posts {
		if f.Posts[i].ID == id {
			return &f.Posts[i]
		}
	}
	return nil
}

// Like counts the viewer's like once; liking an already liked or unknown
// post changes nothing.
func (f *FeedState) Like(id string) {
	p := f.find(id)
	if p == nil || p.IsLiked {
		return
	}
	p.IsLiked = true
	p.LikesCount++
}

func (f *FeedState) Unlike(id string) {
	p := f.find(id)
	if p == nil || !p.IsLiked {
		return
	}
	p.IsLiked = false
	if p.LikesCount > 0 {
		p.LikesCount--
	}
}

func (f *FeedState) Save(id string) {
	if p := f.find(id); p != nil {
		p.IsSaved = true
	}
}

func (f *FeedState) Unsave(id string) {
	if p := f.find(id); p != nil {
		p.IsSaved = false
	}
}

// AddPost puts p at the front; the feed is newest first.
func (f *FeedState) AddPost(p models.Post) {
	f.Posts = append([]models.Post{clonePost(p)}, f.Posts...)
}

func (f *FeedState) RemovePost(id string) {
	kept := make([]models.Post, 0, len(f.Posts))
	for _, p := range f.Posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.Posts = kept
}

// SetFilter switches the feed. A changed filter empties the collection and
// invalidates any fetch still in flight; the caller must refetch.
func (f *FeedState) SetFilter(filter models.Filter) {
	if filter == f.Filter {
		return
	}
	f.Filter = filter
	f.Posts = []models.Post{}
	f.CurrentPage = 1
	f.HasMore = true
	f.Request++
}

func (f FeedState) Post(id string) (models.Post, bool) {
	for _, p := range f.Posts {
		if p.ID == id {
			return clonePost(p), true
		}
	}
	return models.Post{}, false
}

// Saved returns the posts the viewer bookmarked, in feed order.
func (f FeedState) Saved() []models.Post {
	out := []models.Post{}
	for _, p := range f.Posts {
		if p.IsSaved {
			out = append(out, clonePost(p))
		}
	}
	return out
}

func (f FeedState) clone() FeedState {
	f.Posts = clonePosts(f.Posts)
	return f
}

func clonePosts(in []models.Post) []models.Post {
	out := make([]models.Post, len(in))
	for i, p := range in {
		out[i] = clonePost(p)
	}
	return out
}

func clonePost(p models.Post) models.Post {
	p.MediaURLs = cloneStrings(p.MediaURLs)
	p.Hashtags = cloneStrings(p.Hashtags)
	p.MentionedUsers = cloneStrings(p.MentionedUsers)
	p.Tickers = cloneStrings(p.Tickers)
	return p
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}
