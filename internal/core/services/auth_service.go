package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo   ports.UserRepository
	sessions   ports.SessionStore
	sessionTTL time.Duration
	log        *logger.Logger
}

func NewAuthService(userRepo ports.UserRepository, sessions ports.SessionStore, sessionTTL time.Duration, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		return nil, ErrInvalidCredentials
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Infow("user_signed_up", "user_id", user.ID, "email", email)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := uuid.New().String()
	if err := s.sessions.Put(ctx, token, user.ID, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("persist session: %w", err)
	}

	s.log.Infow("user_logged_in", "user_id", user.ID)
	return token, user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *AuthService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	return user, nil
}
