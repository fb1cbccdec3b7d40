package mock

import (
	"time"

	"investconnect/internal/models"
)

type seedPost struct {
	id, userID, content, category string
	hashtags, tickers             []string
	likes, comments, shares       int
	liked, saved                  bool
	age                           time.Duration
}

var seedUsers = []models.UserProfile{
	{ID: "1", Username: "warren_investor", DisplayName: "Warren Buffett Jr.", Bio: "Value investor | Long-term holder | Teaching the next generation about smart investing", Verification: models.VerificationVerified, FollowersCount: 15234, FollowingCount: 432, PostsCount: 1247},
	{ID: "2", Username: "tech_trader", DisplayName: "Sarah Tech", Bio: "Tech stocks enthusiast | Day trader | FAANG investor", Verification: models.VerificationVerified, FollowersCount: 8721, FollowingCount: 567, PostsCount: 892},
	{ID: "3", Username: "crypto_mike", DisplayName: "Mike Crypto", Bio: "Blockchain believer | DeFi explorer | Not financial advice", Verification: models.VerificationNone, FollowersCount: 4532, FollowingCount: 289, PostsCount: 634},
	{ID: "4", Username: "dividend_dan", DisplayName: "Dividend Dan", Bio: "Building passive income through dividends | Sharing my DRIP journey", Verification: models.VerificationVerified, FollowersCount: 12456, FollowingCount: 234, PostsCount: 1567},
	{ID: "5", Username: "real_estate_rachel", DisplayName: "Rachel Properties", Bio: "Real Estate Investor | REITs | Property management tips", Verification: models.VerificationVerified, FollowersCount: 6789, FollowingCount: 445, PostsCount: 743},
}

var seedEmails = map[string]string{
	"1": "warren@example.com",
	"2": "sarah@example.com",
	"3": "mike@example.com",
	"4": "dan@example.com",
	"5": "rachel@example.com",
}

// The viewer follows these authors in the canned data.
var seedFollowing = []string{"1", "4"}

var seedPosts = []seedPost{
	{id: "1", userID: "1", category: "stocks", content: "Just added more shares to my $AAPL position. The fundamentals are too strong to ignore at this price point. Remember - be greedy when others are fearful!", hashtags: []string{"investing", "stocks", "valueinvesting"}, tickers: []string{"AAPL"}, likes: 1243, comments: 87, shares: 34, age: 2 * time.Hour},
	{id: "2", userID: "2", category: "stocks", content: "Amazing earnings from $MSFT today! Cloud revenue up 28% YoY. Azure is crushing it. This is why I stay long on tech", hashtags: []string{"earnings", "techstocks", "microsoft"}, tickers: []string{"MSFT"}, likes: 892, comments: 56, shares: 23, liked: true, age: 5 * time.Hour},
	{id: "3", userID: "3", category: "crypto", content: "$BTC breaking through resistance at $65k! The bull run is just getting started. Next stop: $100k", hashtags: []string{"bitcoin", "crypto", "bullrun"}, tickers: []string{"BTC"}, likes: 567, comments: 123, shares: 45, saved: true, age: 8 * time.Hour},
	{id: "4", userID: "4", category: "dividends", content: "Received $427 in dividends this month! $JNJ, $PG, $KO all paying out. Passive income is the best income", hashtags: []string{"dividends", "passiveincome", "financialfreedom"}, tickers: []string{"JNJ", "PG", "KO"}, likes: 1567, comments: 234, shares: 67, liked: true, saved: true, age: 12 * time.Hour},
	{id: "5", userID: "5", category: "realestate", content: "Just closed on my 4th rental property! $VNQ has been great, but nothing beats owning physical real estate. Cash flow positive from day one!", hashtags: []string{"realestate", "rentalproperty", "investing"}, tickers: []string{"VNQ"}, likes: 743, comments: 98, shares: 29, age: 18 * time.Hour},
	{id: "6", userID: "1", category: "investing", content: "Market volatility is your friend, not your enemy. If you can't handle a 50% drawdown, you don't deserve the 100% gains. #investing101", hashtags: []string{"investing", "marketvolatility", "wisdom"}, likes: 2134, comments: 156, shares: 89, liked: true, age: 24 * time.Hour},
	{id: "7", userID: "2", category: "portfolio", content: "My portfolio breakdown: 40% $GOOGL, 30% $AMZN, 20% $NVDA, 10% cash. Heavy on tech? Yes. Sleeping well at night? Also yes.", hashtags: []string{"portfolio", "techstocks", "investing"}, tickers: []string{"GOOGL", "AMZN", "NVDA"}, likes: 645, comments: 87, shares: 34, age: 36 * time.Hour},
	{id: "8", userID: "3", category: "crypto", content: "DeFi update: Staking yields are looking juicy again. Getting 12% APY on $ETH. Traditional banks could never", hashtags: []string{"defi", "staking", "ethereum"}, tickers: []string{"ETH"}, likes: 423, comments: 67, shares: 21, age: 48 * time.Hour},
}

type seedComment struct {
	id, postID, userID, content string
	likes                       int
	liked                       bool
	age                         time.Duration
}

var seedComments = []seedComment{
	{id: "c1", postID: "1", userID: "2", content: "Totally agree! AAPL is a steal at these levels.", likes: 45, age: time.Hour},
	{id: "c2", postID: "1", userID: "4", content: "Their dividend is solid too. Great for long-term holders!", likes: 23, liked: true, age: 30 * time.Minute},
	{id: "c3", postID: "2", userID: "1", content: "Cloud computing is the future. MSFT is well-positioned.", likes: 67, liked: true, age: 4 * time.Hour},
}

type seedNotification struct {
	id      string
	typ     models.NotificationType
	userID  string
	message string
	postID  string
	read    bool
	age     time.Duration
}

var seedNotifications = []seedNotification{
	{id: "n1", typ: models.NotifyLike, userID: "1", message: "liked your post", postID: "1", age: 15 * time.Minute},
	{id: "n2", typ: models.NotifyComment, userID: "2", message: `commented on your post: "Great analysis!"`, postID: "2", age: 45 * time.Minute},
	{id: "n3", typ: models.NotifyFollow, userID: "3", message: "started following you", read: true, age: 2 * time.Hour},
	{id: "n4", typ: models.NotifyMention, userID: "4", message: "mentioned you in a post", postID: "4", read: true, age: 6 * time.Hour},
}

var currentUser = models.User{
	ID:           "current-user",
	Username:     "testuser",
	DisplayName:  "Test User",
	Email:        "test@example.com",
	Bio:          "Learning to invest wisely",
	Verification: models.VerificationNone,
}
