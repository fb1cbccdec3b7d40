// Package mock serves canned users, posts, comments and notifications in
// place of a backend.
package mock

import (
	"sort"
	"time"

	"investconnect/internal/models"
)

type Provider struct {
	users         []models.UserProfile
	posts         []models.Post
	comments      map[string][]models.Comment
	notifications []models.Notification
	following     []string
}

// New builds the canned data set with timestamps relative to now.
func New(now time.Time) *Provider {
	p := &Provider{
		users:     append([]models.UserProfile{}, seedUsers...),
		comments:  map[string][]models.Comment{},
		following: append([]string{}, seedFollowing...),
	}
	byID := map[string]models.UserProfile{}
	for _, u := range p.users {
		byID[u.ID] = u
	}
	for _, s := range seedPosts {
		at := now.Add(-s.age).UTC()
		author := byID[s.userID]
		p.posts = append(p.posts, models.Post{
			ID:             s.id,
			UserID:         s.userID,
			Username:       author.Username,
			DisplayName:    author.DisplayName,
			Content:        s.content,
			Kind:           models.PostText,
			Category:       s.category,
			Hashtags:       s.hashtags,
			MentionedUsers: []string{},
			Tickers:        nonNil(s.tickers),
			LikesCount:     s.likes,
			CommentsCount:  s.comments,
			SharesCount:    s.shares,
			IsLiked:        s.liked,
			IsSaved:        s.saved,
			CreatedAt:      at,
			UpdatedAt:      at,
		})
	}
	for _, c := range seedComments {
		author := byID[c.userID]
		p.comments[c.postID] = append(p.comments[c.postID], models.Comment{
			ID:          c.id,
			PostID:      c.postID,
			UserID:      c.userID,
			Username:    author.Username,
			DisplayName: author.DisplayName,
			Content:     c.content,
			LikesCount:  c.likes,
			IsLiked:     c.liked,
			CreatedAt:   now.Add(-c.age).UTC(),
		})
	}
	for _, n := range seedNotifications {
		actor := byID[n.userID]
		p.notifications = append(p.notifications, models.Notification{
			ID:          n.id,
			Type:        n.typ,
			UserID:      n.userID,
			Username:    actor.Username,
			DisplayName: actor.DisplayName,
			PostID:      n.postID,
			Message:     n.message,
			IsRead:      n.read,
			CreatedAt:   now.Add(-n.age).UTC(),
		})
	}
	return p
}

// ListPosts returns the feed for filter. Home and latest are newest first,
// trending is by likes, following keeps only authors in the viewer's
// following list.
func (p *Provider) ListPosts(filter models.Filter, following []string) []models.Post {
	out := p.copyPosts(func(models.Post) bool { return true })
	switch filter {
	case models.FilterTrending:
		sort.SliceStable(out, func(i, j int) bool { return out[i].LikesCount > out[j].LikesCount })
		return out
	case models.FilterFollowing:
		out = p.copyPosts(func(post models.Post) bool { return contains(following, post.UserID) })
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (p *Provider) GetPost(id string) (models.Post, bool) {
	for _, post := range p.posts {
		if post.ID == id {
			return copyPost(post), true
		}
	}
	return models.Post{}, false
}

func (p *Provider) UserPosts(userID string) []models.Post {
	return p.copyPosts(func(post models.Post) bool { return post.UserID == userID })
}

func (p *Provider) ListComments(postID string) []models.Comment {
	return append([]models.Comment{}, p.comments[postID]...)
}

func (p *Provider) GetUser(id string) (models.UserProfile, bool) {
	for _, u := range p.users {
		if u.ID == id {
			u.IsFollowing = contains(p.following, id)
			return u, true
		}
	}
	return models.UserProfile{}, false
}

func (p *Provider) Users() []models.UserProfile {
	out := make([]models.UserProfile, 0, len(p.users))
	for _, u := range p.users {
		u.IsFollowing = contains(p.following, u.ID)
		out = append(out, u)
	}
	return out
}

// Accounts returns login identities for every canned user plus the viewer.
func (p *Provider) Accounts() []models.User {
	out := []models.User{currentUser}
	for _, u := range p.users {
		out = append(out, models.User{
			ID:           u.ID,
			Username:     u.Username,
			DisplayName:  u.DisplayName,
			Email:        seedEmails[u.ID],
			Bio:          u.Bio,
			Verification: u.Verification,
		})
	}
	return out
}

func (p *Provider) CurrentUser() models.User {
	return currentUser
}

func (p *Provider) FollowingIDs() []string {
	return append([]string{}, p.following...)
}

func (p *Provider) ListNotifications() []models.Notification {
	return append([]models.Notification{}, p.notifications...)
}

func (p *Provider) copyPosts(keep func(models.Post) bool) []models.Post {
	out := []models.Post{}
	for _, post := range p.posts {
		if keep(post) {
			out = append(out, copyPost(post))
		}
	}
	return out
}

func copyPost(post models.Post) models.Post {
	post.Hashtags = append([]string{}, post.Hashtags...)
	post.Tickers = append([]string{}, post.Tickers...)
	post.MentionedUsers = append([]string{}, post.MentionedUsers...)
	return post
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
