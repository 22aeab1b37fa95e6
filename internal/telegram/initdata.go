package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Верификация initData из Telegram Mini App.
// Схема фиксирована платформой: secret = HMAC_SHA256(botToken, key="WebAppData"),
// hash = hex(HMAC_SHA256(data_check_string, key=secret)).

var (
	ErrNoHash      = errors.New("init data: hash field missing")
	ErrBadPayload  = errors.New("init data: malformed payload")
	ErrBadUserJSON = errors.New("init data: user field is not valid json")
)

// WebAppUser — вложенный объект user из initData.
type WebAppUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
	IsPremium    bool   `json:"is_premium"`
	PhotoURL     string `json:"photo_url"`
}

type WebAppChat struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

type InitData struct {
	QueryID  string
	User     *WebAppUser
	Chat     *WebAppChat
	AuthDate int64
	Hash     string
}

// Verify проверяет подпись initData. Любая ошибка разбора — просто false,
// содержимое payload наружу не утекает.
func Verify(raw, botToken string) bool {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return false
	}
	gotHash := values.Get("hash")
	if gotHash == "" {
		return false
	}
	values.Del("hash")

	// канонический вид: k=v, сортировка по ключу, склейка через \n
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	want := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(want), []byte(gotHash))
}

// Parse разбирает уже проверенный initData в типизированную структуру.
// Поле user обязательно.
func Parse(raw string) (*InitData, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, ErrBadPayload
	}
	if values.Get("hash") == "" {
		return nil, ErrNoHash
	}

	d := &InitData{
		QueryID: values.Get("query_id"),
		Hash:    values.Get("hash"),
	}
	if v := values.Get("auth_date"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			d.AuthDate = n
		}
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, ErrBadPayload
	}
	var u WebAppUser
	if err := json.Unmarshal([]byte(userJSON), &u); err != nil || u.ID == 0 {
		return nil, ErrBadUserJSON
	}
	d.User = &u

	if chatJSON := values.Get("chat"); chatJSON != "" {
		var ch WebAppChat
		if err := json.Unmarshal([]byte(chatJSON), &ch); err == nil {
			d.Chat = &ch
		}
	}
	return d, nil
}

// Sign считает подпись для набора полей (используется в тестах и фикстурах).
func Sign(values url.Values, botToken string) string {
	values.Del("hash")
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}
