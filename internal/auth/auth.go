package auth

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"investconnect/internal/models"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "password123"

const minPasswordLen = 8

var (
	ErrMissingFields      = errors.New("Please fill in all fields")
	ErrInvalidCredentials = errors.New("Wrong email or password")
	ErrPasswordMismatch   = errors.New("Passwords do not match")
	ErrPasswordTooShort   = errors.New("Password must be at least 8 characters")
	ErrAccountExists      = errors.New("Email or username already taken")
)

type account struct {
	user models.User
	hash string
}

// Manager checks credentials against an in-memory account table and mints
// opaque session tokens.
type Manager struct {
	mu       sync.Mutex
	accounts map[string]account
	cost     int
}

// NewManager seeds one account per user, all with DemoPassword.
func NewManager(users []models.User, cost int) (*Manager, error) {
	m := &Manager{accounts: map[string]account{}, cost: cost}
	hash, err := m.hash(DemoPassword)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		m.accounts[key(u.Email)] = account{user: u, hash: hash}
	}
	return m, nil
}

// Login returns a fresh session for the account behind email.
func (m *Manager) Login(email, password string) (models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.Session{}, ErrMissingFields
	}
	m.mu.Lock()
	acc, ok := m.accounts[key(email)]
	m.mu.Unlock()
	if !ok || !CheckPassword(password, acc.hash) {
		return models.Session{}, ErrInvalidCredentials
	}
	return models.Session{
		User:         acc.user,
		Token:        uuid.NewString(),
		RefreshToken: uuid.NewString(),
	}, nil
}

// Register validates the sign-up form and creates an unverified account.
func (m *Manager) Register(username, email, password, confirm string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" || confirm == "" {
		return models.User{}, ErrMissingFields
	}
	if password != confirm {
		return models.User{}, ErrPasswordMismatch
	}
	if len(password) < minPasswordLen {
		return models.User{}, ErrPasswordTooShort
	}
	hash, err := m.hash(password)
	if err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[key(email)]; ok {
		return models.User{}, ErrAccountExists
	}
	for _, acc := range m.accounts {
		if strings.EqualFold(acc.user.Username, username) {
			return models.User{}, ErrAccountExists
		}
	}
	u := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		DisplayName:  username,
		Email:        email,
		Verification: models.VerificationNone,
	}
	m.accounts[key(email)] = account{user: u, hash: hash}
	return u, nil
}

// Update replaces the stored identity for the account with u.ID. Moving to
// an email or username another account holds fails with ErrAccountExists.
// An unknown id is ignored.
func (m *Manager) Update(u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	own := ""
	for k, acc := range m.accounts {
		if acc.user.ID == u.ID {
			own = k
			continue
		}
		if k == key(u.Email) || strings.EqualFold(acc.user.Username, u.Username) {
			return ErrAccountExists
		}
	}
	if own == "" {
		return nil
	}
	acc := m.accounts[own]
	delete(m.accounts, own)
	acc.user = u
	m.accounts[key(u.Email)] = acc
	return nil
}

func (m *Manager) hash(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), m.cost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(b), nil
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func CheckPassword(pw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
