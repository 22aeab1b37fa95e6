package services

import (
	"context"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tasktracker/internal/models"
	"tasktracker/internal/telegram"
)

const testBotToken = "1234567890:TEST-TOKEN"

var testSecret = []byte("test-secret")

func validInitData(t *testing.T, telegramID int64) string {
	t.Helper()
	values := url.Values{}
	values.Set("query_id", "AAE1")
	values.Set("auth_date", "1735689600")
	values.Set("user", `{"id":`+strconv.FormatInt(telegramID, 10)+`,"first_name":"Ivan"}`)
	values.Set("hash", telegram.Sign(values, testBotToken))
	return values.Encode()
}

func TestAuthenticateWebApp(t *testing.T) {
	companyID := int64(1)
	repo := newFakeUserRepo(&models.User{
		ID: 7, CompanyID: &companyID, Role: "employee",
		IsActive: true, TelegramID: 42,
	})
	svc := NewAuthService(repo, testBotToken, testSecret, time.Hour)

	user, token, err := svc.AuthenticateWebApp(context.Background(), validInitData(t, 42))
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Contains(t, repo.touched, int64(7))

	claims, err := ParseSessionToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, int64(42), claims.TelegramID)
}

func TestAuthenticateWebAppBadSignature(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testBotToken, testSecret, time.Hour)

	_, _, err := svc.AuthenticateWebApp(context.Background(), "auth_date=1&hash=deadbeef")
	assert.ErrorIs(t, err, ErrSignatureMismatch)

	// подпись чужим бот-токеном
	values := url.Values{}
	values.Set("auth_date", "1735689600")
	values.Set("user", `{"id":42}`)
	values.Set("hash", telegram.Sign(values, "другой-токен"))
	_, _, err = svc.AuthenticateWebApp(context.Background(), values.Encode())
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestAuthenticateWebAppUnknownUser(t *testing.T) {
	// подпись валидна, но telegram_id ни к кому не привязан
	svc := NewAuthService(newFakeUserRepo(), testBotToken, testSecret, time.Hour)
	_, _, err := svc.AuthenticateWebApp(context.Background(), validInitData(t, 99))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAuthenticateWebAppDeactivated(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: 7, IsActive: false, TelegramID: 42})
	svc := NewAuthService(repo, testBotToken, testSecret, time.Hour)
	_, _, err := svc.AuthenticateWebApp(context.Background(), validInitData(t, 42))
	assert.ErrorIs(t, err, ErrAccountDeactivated)
	assert.Empty(t, repo.touched)
}

func TestLoginWithPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := newFakeUserRepo(&models.User{
		ID: 3, Role: "director", IsActive: true,
		Email: "dir@example.com", PasswordHash: string(hash), TelegramID: 10,
	})
	svc := NewAuthService(repo, testBotToken, testSecret, time.Hour)

	user, token, err := svc.LoginWithPassword(context.Background(), "dir@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.NotEmpty(t, token)

	// неверный пароль и неизвестный email неразличимы снаружи
	_, _, err = svc.LoginWithPassword(context.Background(), "dir@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, _, err = svc.LoginWithPassword(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestLoginWithPasswordNoHash(t *testing.T) {
	// Telegram-only аккаунт без пароля в консоль не пускаем
	repo := newFakeUserRepo(&models.User{ID: 5, IsActive: true, Email: "emp@example.com"})
	svc := NewAuthService(repo, testBotToken, testSecret, time.Hour)
	_, _, err := svc.LoginWithPassword(context.Background(), "emp@example.com", "any")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSessionTokenExpired(t *testing.T) {
	token, err := IssueSessionToken(testSecret, 7, 42, -time.Hour)
	require.NoError(t, err)
	_, err = ParseSessionToken(testSecret, token)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestSessionTokenExpiryLeeway(t *testing.T) {
	// чуть просроченный токен проходит: запас на рассинхрон часов
	token, err := IssueSessionToken(testSecret, 7, 42, -30*time.Second)
	require.NoError(t, err)
	claims, err := ParseSessionToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := IssueSessionToken(testSecret, 7, 42, time.Hour)
	require.NoError(t, err)
	_, err = ParseSessionToken([]byte("other-secret"), token)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}
