package models

import "time"

type VerificationTier string

const (
	VerificationNone     VerificationTier = "none"
	VerificationPending  VerificationTier = "pending"
	VerificationVerified VerificationTier = "verified"
)

type User struct {
	ID             string           `json:"id"`
	Username       string           `json:"username"`
	DisplayName    string           `json:"displayName"`
	Email          string           `json:"email"`
	Bio            string           `json:"bio,omitempty"`
	ProfilePicture string           `json:"profilePicture,omitempty"`
	Verification   VerificationTier `json:"verificationStatus"`
}

// Session is what a successful login hands to the auth slice.
type Session struct {
	User         User   `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Complete reports whether every field the auth slice needs is present.
func (s Session) Complete() bool {
	return s.User.ID != "" && s.User.Username != "" && s.Token != "" && s.RefreshToken != ""
}

type PostKind string

const (
	PostText  PostKind = "text"
	PostImage PostKind = "image"
	PostVideo PostKind = "video"
	PostLink  PostKind = "link"
	PostPoll  PostKind = "poll"
)

type Post struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"displayName"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Content        string    `json:"content"`
	MediaURLs      []string  `json:"mediaUrls,omitempty"`
	Kind           PostKind  `json:"postType"`
	Category       string    `json:"category"`
	Hashtags       []string  `json:"hashtags"`
	MentionedUsers []string  `json:"mentionedUsers"`
	Tickers        []string  `json:"tickers"`
	LikesCount     int       `json:"likesCount"`
	CommentsCount  int       `json:"commentsCount"`
	SharesCount    int       `json:"sharesCount"`
	IsLiked        bool      `json:"isLiked"`
	IsSaved        bool      `json:"isSaved"`
	IsEdited       bool      `json:"isEdited"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Comment struct {
	ID          string    `json:"id"`
	PostID      string    `json:"postId"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Content     string    `json:"content"`
	LikesCount  int       `json:"likesCount"`
	IsLiked     bool      `json:"isLiked"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UserProfile struct {
	ID             string           `json:"id"`
	Username       string           `json:"username"`
	DisplayName    string           `json:"displayName"`
	Bio            string           `json:"bio,omitempty"`
	ProfilePicture string           `json:"profilePicture,omitempty"`
	FollowersCount int              `json:"followersCount"`
	FollowingCount int              `json:"followingCount"`
	PostsCount     int              `json:"postsCount"`
	IsFollowing    bool             `json:"isFollowing"`
	Verification   VerificationTier `json:"verificationStatus"`
}

type NotificationType string

const (
	NotifyFollow     NotificationType = "follow"
	NotifyLike       NotificationType = "like"
	NotifyComment    NotificationType = "comment"
	NotifyMention    NotificationType = "mention"
	NotifyMessage    NotificationType = "message"
	NotifySystem     NotificationType = "system"
	NotifyPriceAlert NotificationType = "price_alert"
)

type Notification struct {
	ID          string           `json:"id"`
	Type        NotificationType `json:"type"`
	UserID      string           `json:"userId,omitempty"`
	Username    string           `json:"username,omitempty"`
	DisplayName string           `json:"displayName,omitempty"`
	PostID      string           `json:"postId,omitempty"`
	Message     string           `json:"message"`
	IsRead      bool             `json:"isRead"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// Filter selects which feed the viewer is looking at.
type Filter string

const (
	FilterHome      Filter = "home"
	FilterFollowing Filter = "following"
	FilterTrending  Filter = "trending"
	FilterLatest    Filter = "latest"
)

func (f Filter) Valid() bool {
	switch f {
	case FilterHome, FilterFollowing, FilterTrending, FilterLatest:
		return true
	}
	return false
}
