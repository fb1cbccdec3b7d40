package compose

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"investconnect/internal/models"
)

func TestExtract(t *testing.T) {
	t.Run("Test hashtags", func(t *testing.T) {
		require.Equal(t, []string{"investing101", "dividends"},
			Hashtags("Volatility is a friend #investing101 and #dividends #investing101"))
		require.Empty(t, Hashtags("no tags here"))
	})

	t.Run("Test cashtags", func(t *testing.T) {
		require.Equal(t, []string{"GOOGL", "AMZN", "NVDA"},
			Cashtags("40% $GOOGL, 30% $AMZN, 20% $NVDA, more $GOOGL"))
		require.Empty(t, Cashtags("Received $427 in dividends"))
		require.Equal(t, []string{"BTC"}, Cashtags("$BTC breaking through $65k"))
	})
}

func TestBuild(t *testing.T) {
	author := models.User{ID: "current-user", Username: "testuser", DisplayName: "Test User"}
	now := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

	p, err := Build(author, Draft{Content: "  Long $AAPL #investing  "}, now)
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.Equal(t, "Long $AAPL #investing", p.Content)
	require.Equal(t, []string{"AAPL"}, p.Tickers)
	require.Equal(t, []string{"investing"}, p.Hashtags)
	require.Equal(t, models.PostText, p.Kind)
	require.Equal(t, "general", p.Category)
	require.Equal(t, "testuser", p.Username)
	require.Equal(t, now, p.CreatedAt)
	require.Zero(t, p.LikesCount)
	require.False(t, p.IsLiked)

	_, err = Build(author, Draft{Content: "   "}, now)
	require.ErrorIs(t, err, ErrEmptyContent)
}
