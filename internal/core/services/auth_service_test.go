package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
)

type memUserRepo struct {
	mu    sync.Mutex
	seq   uint
	users map[uint]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uint]domain.User)}
}

func (m *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	user.ID = m.seq
	m.users[user.ID] = *user
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, ErrSessionInvalid
	}
	return &user, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrSessionInvalid
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]uint
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]uint)}
}

func (m *memSessionStore) Put(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = userID
	return nil
}

func (m *memSessionStore) Resolve(ctx context.Context, token string) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.sessions[token]
	if !ok {
		return 0, ErrSessionInvalid
	}
	return userID, nil
}

func (m *memSessionStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func newAuthFixture() (*AuthService, *memUserRepo, *memSessionStore) {
	users := newMemUserRepo()
	sessions := newMemSessionStore()
	return NewAuthService(users, sessions, time.Hour, logger.NewNop()), users, sessions
}

func TestSignupAndLogin(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Signup(ctx, "Alice@Example.COM", "correct horse", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	token, loggedIn, err := svc.Login(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	resolved, err := svc.ResolveToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Signup(context.Background(), "bob@example.com", "short", "Bob")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "carol@example.com", "password123", "Carol")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "CAROL@example.com", "password456", "Carol Again")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "dave@example.com", "password123", "Dave")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "dave@example.com", "password999")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "erin@example.com", "password123", "Erin")
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "erin@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.ResolveToken(ctx, token)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}
