package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
	"tasktracker/internal/telegram"
)

// AuthService — выпуск сессий: из Telegram initData (Mini App) и из
// email+пароля (консоль директора/админа).
type AuthService interface {
	AuthenticateWebApp(ctx context.Context, initData string) (*models.User, string, error)
	LoginWithPassword(ctx context.Context, email, password string) (*models.User, string, error)
}

type authService struct {
	users    repositories.UserRepository
	botToken string
	secret   []byte
	ttl      time.Duration
}

func NewAuthService(users repositories.UserRepository, botToken string, secret []byte, ttl time.Duration) AuthService {
	return &authService{users: users, botToken: botToken, secret: secret, ttl: ttl}
}

// AuthenticateWebApp — линейный конвейер без ретраев:
// подпись → разбор payload → маппинг на аккаунт → выпуск токена.
// Аккаунты НЕ создаются автоматически: регистрацию делает администратор.
func (s *authService) AuthenticateWebApp(ctx context.Context, initData string) (*models.User, string, error) {
	if !telegram.Verify(initData, s.botToken) {
		return nil, "", ErrSignatureMismatch
	}

	data, err := telegram.Parse(initData)
	if err != nil {
		return nil, "", ErrMalformedPayload
	}

	user, err := s.users.GetByTelegramID(ctx, data.User.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("[auth][webapp][deny] unknown telegram_id=%d", data.User.ID)
			return nil, "", ErrAccessDenied
		}
		return nil, "", err
	}
	if !user.IsActive {
		log.Printf("[auth][webapp][deny] deactivated userID=%d", user.ID)
		return nil, "", ErrAccountDeactivated
	}

	if err := s.users.TouchLogin(ctx, user.ID); err != nil {
		return nil, "", err
	}

	token, err := IssueSessionToken(s.secret, user.ID, user.TelegramID, s.ttl)
	if err != nil {
		return nil, "", err
	}
	log.Printf("[auth][webapp][ok] userID=%d telegram_id=%d", user.ID, user.TelegramID)
	return user, token, nil
}

func (s *authService) LoginWithPassword(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrAccessDenied
		}
		return nil, "", err
	}
	ph := strings.TrimSpace(user.PasswordHash)
	if ph == "" {
		return nil, "", ErrAccessDenied
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ph), []byte(strings.TrimSpace(password))); err != nil {
		log.Printf("[auth][login] bcrypt mismatch for userID=%d", user.ID)
		return nil, "", ErrAccessDenied
	}
	if !user.IsActive {
		return nil, "", ErrAccountDeactivated
	}

	if err := s.users.TouchLogin(ctx, user.ID); err != nil {
		return nil, "", err
	}

	token, err := IssueSessionToken(s.secret, user.ID, user.TelegramID, s.ttl)
	if err != nil {
		return nil, "", err
	}
	log.Printf("[auth][login][ok] userID=%d", user.ID)
	return user, token, nil
}
