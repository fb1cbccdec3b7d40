// Package persist saves the durable part of the client state and loads it
// back at startup.
package persist

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"investconnect/internal/models"
	"investconnect/internal/store"
)

// SchemaVersion is bumped whenever Record changes shape.
const SchemaVersion = 1

const stateKey = "investconnect/state"

var ErrSchemaVersion = errors.New("unsupported persisted schema version")

// KV is the key-value store the record is written to.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type AuthRecord struct {
	User         *models.User `json:"user"`
	Token        string       `json:"token,omitempty"`
	RefreshToken string       `json:"refreshToken,omitempty"`
}

type UserRecord struct {
	Following []string                      `json:"following"`
	Followers []string                      `json:"followers"`
	Profiles  map[string]models.UserProfile `json:"profiles"`
}

type Record struct {
	Version int        `json:"version"`
	Auth    AuthRecord `json:"auth"`
	User    UserRecord `json:"user"`
}

// FromState keeps the session and follow graph; loading flags and errors
// are dropped.
func FromState(st store.State) Record {
	return Record{
		Version: SchemaVersion,
		Auth: AuthRecord{
			User:         st.Auth.User,
			Token:        st.Auth.Token,
			RefreshToken: st.Auth.RefreshToken,
		},
		User: UserRecord{
			Following: st.User.Following,
			Followers: st.User.Followers,
			Profiles:  st.User.Profiles,
		},
	}
}

// Apply overlays r onto base and returns the result, ready for Store.Replace.
func (r Record) Apply(base store.State) store.State {
	st := base.Clone()
	st.Auth = store.AuthState{
		User:         r.Auth.User,
		Token:        r.Auth.Token,
		RefreshToken: r.Auth.RefreshToken,
	}
	st.User = store.NewUserState()
	st.User.Following = append(st.User.Following, r.User.Following...)
	st.User.Followers = append(st.User.Followers, r.User.Followers...)
	for id, p := range r.User.Profiles {
		st.User.Profiles[id] = p
	}
	return st
}

type Persister struct {
	kv KV
}

func New(kv KV) *Persister {
	return &Persister{kv: kv}
}

func (p *Persister) Save(ctx context.Context, st store.State) error {
	b, err := json.Marshal(FromState(st))
	if err != nil {
		return errors.Wrap(err, "marshal state")
	}
	return p.kv.Set(ctx, stateKey, string(b))
}

// Load returns the saved record, or nil when nothing was saved yet.
func (p *Persister) Load(ctx context.Context) (*Record, error) {
	raw, ok, err := p.kv.Get(ctx, stateKey)
	if err != nil || !ok {
		return nil, err
	}
	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, errors.Wrap(err, "unmarshal state")
	}
	if r.Version != SchemaVersion {
		return nil, errors.Wrapf(ErrSchemaVersion, "got %d", r.Version)
	}
	return &r, nil
}

// Rehydrate loads the saved record into s. It reports whether anything was
// restored.
func (p *Persister) Rehydrate(ctx context.Context, s *store.Store) (bool, error) {
	r, err := p.Load(ctx)
	if err != nil || r == nil {
		return false, err
	}
	s.Replace(r.Apply(s.Snapshot()))
	return true, nil
}

func (p *Persister) Clear(ctx context.Context) error {
	return p.kv.Delete(ctx, stateKey)
}
