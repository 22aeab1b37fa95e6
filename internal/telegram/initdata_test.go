package telegram

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "1234567890:TEST-TOKEN"

func signedInitData(t *testing.T, userJSON string) string {
	t.Helper()
	values := url.Values{}
	values.Set("query_id", "AAE1")
	values.Set("auth_date", "1735689600")
	if userJSON != "" {
		values.Set("user", userJSON)
	}
	values.Set("hash", Sign(values, testBotToken))
	return values.Encode()
}

func TestVerify(t *testing.T) {
	raw := signedInitData(t, `{"id":42,"first_name":"Ivan","username":"ivan"}`)
	assert.True(t, Verify(raw, testBotToken))

	// чужой бот-токен
	assert.False(t, Verify(raw, "другой-токен"))

	// подмена auth_date ломает подпись
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	values.Set("auth_date", "1735689601")
	assert.False(t, Verify(values.Encode(), testBotToken))
}

func TestVerifyMissingHash(t *testing.T) {
	assert.False(t, Verify("auth_date=1735689600&user=%7B%22id%22%3A42%7D", testBotToken))
	assert.False(t, Verify("%zz", testBotToken))
	assert.False(t, Verify("", testBotToken))
}

func TestParse(t *testing.T) {
	raw := signedInitData(t, `{"id":42,"first_name":"Ivan","username":"ivan","language_code":"ru"}`)
	d, err := Parse(raw)
	require.NoError(t, err)
	require.NotNil(t, d.User)
	assert.Equal(t, int64(42), d.User.ID)
	assert.Equal(t, "Ivan", d.User.FirstName)
	assert.Equal(t, "ivan", d.User.Username)
	assert.Equal(t, int64(1735689600), d.AuthDate)
	assert.Equal(t, "AAE1", d.QueryID)
}

func TestParseMissingUser(t *testing.T) {
	raw := signedInitData(t, "")
	_, err := Parse(raw)
	assert.ErrorIs(t, err, ErrBadPayload)
}

func TestParseBadUserJSON(t *testing.T) {
	_, err := Parse(signedInitData(t, `{not json`))
	assert.ErrorIs(t, err, ErrBadUserJSON)

	// user без id тоже невалиден
	_, err = Parse(signedInitData(t, `{"first_name":"Ivan"}`))
	assert.ErrorIs(t, err, ErrBadUserJSON)
}

func TestParseNoHash(t *testing.T) {
	_, err := Parse("auth_date=1735689600")
	assert.ErrorIs(t, err, ErrNoHash)
}
