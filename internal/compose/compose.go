// Package compose turns composer input into a post.
package compose

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"investconnect/internal/models"
)

const defaultCategory = "general"

var (
	ErrEmptyContent = errors.New("Post content cannot be empty")

	hashtagRe = regexp.MustCompile(`#(\w+)`)
	cashtagRe = regexp.MustCompile(`\$([A-Z]+)`)
)

type Draft struct {
	Content   string          `json:"content"`
	Category  string          `json:"category,omitempty"`
	Kind      models.PostKind `json:"postType,omitempty"`
	MediaURLs []string        `json:"mediaUrls,omitempty"`
}

// Hashtags returns the #tags in text, without the '#', in first-seen order.
func Hashtags(text string) []string {
	return extract(hashtagRe, text)
}

// Cashtags returns the $TICKER symbols in text, without the '$'.
func Cashtags(text string) []string {
	return extract(cashtagRe, text)
}

func extract(re *regexp.Regexp, text string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		out = append(out, m[1])
	}
	return out
}

// Build makes a new post authored by author.
func Build(author models.User, d Draft, now time.Time) (models.Post, error) {
	content := strings.TrimSpace(d.Content)
	if content == "" {
		return models.Post{}, ErrEmptyContent
	}
	kind := d.Kind
	if kind == "" {
		kind = models.PostText
	}
	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = defaultCategory
	}
	at := now.UTC()
	return models.Post{
		ID:             uuid.NewString(),
		UserID:         author.ID,
		Username:       author.Username,
		DisplayName:    author.DisplayName,
		ProfilePicture: author.ProfilePicture,
		Content:        content,
		MediaURLs:      d.MediaURLs,
		Kind:           kind,
		Category:       category,
		Hashtags:       Hashtags(content),
		MentionedUsers: []string{},
		Tickers:        Cashtags(content),
		CreatedAt:      at,
		UpdatedAt:      at,
	}, nil
}
