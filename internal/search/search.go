package search

import (
	"strings"

	"investconnect/internal/models"
)

type Results struct {
	Users    []models.UserProfile `json:"users"`
	Posts    []models.Post        `json:"posts"`
	Hashtags []string             `json:"hashtags"`
	Tickers  []string             `json:"tickers"`
}

func empty() Results {
	return Results{
		Users:    []models.UserProfile{},
		Posts:    []models.Post{},
		Hashtags: []string{},
		Tickers:  []string{},
	}
}

// Run matches query case-insensitively against usernames, display names,
// post bodies, hashtags and tickers. A blank query matches nothing.
func Run(query string, users []models.UserProfile, posts []models.Post) Results {
	res := empty()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return res
	}
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(strings.ToLower(u.DisplayName), q) {
			res.Users = append(res.Users, u)
		}
	}
	seenTag := map[string]bool{}
	seenTicker := map[string]bool{}
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Content), q) {
			res.Posts = append(res.Posts, p)
		}
		for _, tag := range p.Hashtags {
			if !seenTag[tag] && strings.Contains(strings.ToLower(tag), q) {
				seenTag[tag] = true
				res.Hashtags = append(res.Hashtags, tag)
			}
		}
		for _, tk := range p.Tickers {
			if !seenTicker[tk] && strings.Contains(strings.ToLower(tk), q) {
				seenTicker[tk] = true
				res.Tickers = append(res.Tickers, tk)
			}
		}
	}
	return res
}
