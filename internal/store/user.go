package store

import "investconnect/internal/models"

// UserState caches profiles and the viewer's local follow graph. A cached
// profile's IsFollowing always agrees with Following.
type UserState struct {
	Profiles  map[string]models.UserProfile `json:"profiles"`
	Following []string                      `json:"following"`
	Followers []string                      `json:"followers"`
	IsLoading bool                          `json:"isLoading"`
	Error     string                        `json:"error,omitempty"`
}

func NewUserState() UserState {
	return UserState{
		Profiles:  map[string]models.UserProfile{},
		Following: []string{},
		Followers: []string{},
	}
}

func (u *UserState) BeginFetch() {
	u.IsLoading = true
	u.Error = ""
}

func (u *UserState) FetchSucceeded(p models.UserProfile) {
	u.IsLoading = false
	u.CacheProfile(p)
}

func (u *UserState) FetchFailed(reason string) {
	u.IsLoading = false
	u.Error = reason
}

// CacheProfile upserts p by id. The local graph decides IsFollowing.
func (u *UserState) CacheProfile(p models.UserProfile) {
	if u.Profiles == nil {
		u.Profiles = map[string]models.UserProfile{}
	}
	p.IsFollowing = u.IsFollowing(p.ID)
	u.Profiles[p.ID] = p
}

func (u UserState) IsFollowing(id string) bool {
	return indexOf(u.Following, id) >= 0
}

// Follow adds id to the graph and bumps the cached follower count in the
// same step. Following twice is a no-op.
func (u *UserState) Follow(id string) {
	if u.IsFollowing(id) {
		return
	}
	u.Following = append(u.Following, id)
	if p, ok := u.Profiles[id]; ok {
		p.IsFollowing = true
		p.FollowersCount++
		u.Profiles[id] = p
	}
}

func (u *UserState) Unfollow(id string) {
	i := indexOf(u.Following, id)
	if i < 0 {
		return
	}
	u.Following = append(u.Following[:i:i], u.Following[i+1:]...)
	if p, ok := u.Profiles[id]; ok {
		p.IsFollowing = false
		if p.FollowersCount > 0 {
			p.FollowersCount--
		}
		u.Profiles[id] = p
	}
}

// SetFollowing replaces the graph and re-syncs cached flags. Counts are left
// alone: the replacement comes from the server, which already counted.
func (u *UserState) SetFollowing(ids []string) {
	u.Following = dedupe(ids)
	u.syncFlags()
}

func (u *UserState) SetFollowers(ids []string) {
	u.Followers = dedupe(ids)
}

func (u *UserState) syncFlags() {
	for id, p := range u.Profiles {
		p.IsFollowing = u.IsFollowing(id)
		u.Profiles[id] = p
	}
}

func (u UserState) clone() UserState {
	profiles := make(map[string]models.UserProfile, len(u.Profiles))
	for id, p := range u.Profiles {
		profiles[id] = p
	}
	u.Profiles = profiles
	u.Following = append([]string{}, u.Following...)
	u.Followers = append([]string{}, u.Followers...)
	return u
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if indexOf(out, id) < 0 {
			out = append(out, id)
		}
	}
	return out
}
