package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"investconnect/internal/models"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager([]models.User{
		{ID: "current-user", Username: "testuser", Email: "test@example.com", Verification: models.VerificationNone},
		{ID: "2", Username: "tech_trader", Email: "sarah@example.com", Verification: models.VerificationVerified},
	}, bcrypt.MinCost)
	require.NoError(t, err)
	return m
}

func TestLogin(t *testing.T) {
	m := newTestManager(t)

	t.Run("Test seeded account", func(t *testing.T) {
		s, err := m.Login(" Test@Example.com ", DemoPassword)
		require.NoError(t, err)
		require.True(t, s.Complete())
		require.Equal(t, "testuser", s.User.Username)
		require.NotEqual(t, s.Token, s.RefreshToken)
	})

	t.Run("Test tokens differ per login", func(t *testing.T) {
		a, err := m.Login("sarah@example.com", DemoPassword)
		require.NoError(t, err)
		b, err := m.Login("sarah@example.com", DemoPassword)
		require.NoError(t, err)
		require.NotEqual(t, a.Token, b.Token)
	})

	t.Run("Test failures", func(t *testing.T) {
		_, err := m.Login("", "x")
		require.ErrorIs(t, err, ErrMissingFields)
		_, err = m.Login("test@example.com", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = m.Login("nobody@example.com", DemoPassword)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Register("new", "", "longenough", "longenough")
	require.ErrorIs(t, err, ErrMissingFields)
	_, err = m.Register("new", "new@example.com", "longenough", "different1")
	require.ErrorIs(t, err, ErrPasswordMismatch)
	_, err = m.Register("new", "new@example.com", "short", "short")
	require.ErrorIs(t, err, ErrPasswordTooShort)
	_, err = m.Register("someone", "TEST@example.com", "longenough", "longenough")
	require.ErrorIs(t, err, ErrAccountExists)
	_, err = m.Register("TechTrader", "x@example.com", "longenough", "longenough")
	require.NoError(t, err)
	_, err = m.Register("tech_trader", "y@example.com", "longenough", "longenough")
	require.ErrorIs(t, err, ErrAccountExists)

	u, err := m.Register("value_val", "val@example.com", "longenough", "longenough")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, models.VerificationNone, u.Verification)

	s, err := m.Login("val@example.com", "longenough")
	require.NoError(t, err)
	require.Equal(t, u.ID, s.User.ID)
}

func TestUpdateMovesEmail(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Update(models.User{ID: "current-user", Username: "testuser", Email: "renamed@example.com"}))

	_, err := m.Login("test@example.com", DemoPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	s, err := m.Login("renamed@example.com", DemoPassword)
	require.NoError(t, err)
	require.Equal(t, "current-user", s.User.ID)
}

func TestUpdateRejectsTakenIdentity(t *testing.T) {
	m := newTestManager(t)

	err := m.Update(models.User{ID: "current-user", Username: "testuser", Email: "SARAH@example.com"})
	require.ErrorIs(t, err, ErrAccountExists)
	err = m.Update(models.User{ID: "current-user", Username: "Tech_Trader", Email: "test@example.com"})
	require.ErrorIs(t, err, ErrAccountExists)

	s, err := m.Login("sarah@example.com", DemoPassword)
	require.NoError(t, err)
	require.Equal(t, "2", s.User.ID)
	s, err = m.Login("test@example.com", DemoPassword)
	require.NoError(t, err)
	require.Equal(t, "current-user", s.User.ID)
}
