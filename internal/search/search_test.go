package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"investconnect/internal/mock"
)

func TestRun(t *testing.T) {
	p := mock.New(time.Now())
	users := p.Users()
	posts := p.ListPosts("home", nil)

	t.Run("Test blank query", func(t *testing.T) {
		res := Run("   ", users, posts)
		require.Empty(t, res.Users)
		require.Empty(t, res.Posts)
		require.NotNil(t, res.Hashtags)
	})

	t.Run("Test user by display name", func(t *testing.T) {
		res := Run("sarah", users, posts)
		require.Len(t, res.Users, 1)
		require.Equal(t, "tech_trader", res.Users[0].Username)
	})

	t.Run("Test ticker and content", func(t *testing.T) {
		res := Run("aapl", users, posts)
		require.Equal(t, []string{"AAPL"}, res.Tickers)
		require.Len(t, res.Posts, 1)
	})

	t.Run("Test hashtags are unique", func(t *testing.T) {
		res := Run("investing", users, posts)
		require.Contains(t, res.Hashtags, "investing")
		require.Contains(t, res.Hashtags, "valueinvesting")
		count := 0
		for _, h := range res.Hashtags {
			if h == "investing" {
				count++
			}
		}
		require.Equal(t, 1, count)
	})
}
