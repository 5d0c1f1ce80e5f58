package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaehub/vitaehub/pkg/security"
)

const testSecret = "0123456789abcdef"

func TestGenAndParseJWT(t *testing.T) {
	claims := security.NewTokenClaims("vitaehub", "vitaehub", "user-1", time.Now().Add(time.Hour).Unix())

	token, err := security.GenJWT(claims, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := security.ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, claims.Appid, parsed.Appid)
	assert.Equal(t, claims.User, parsed.User)
	assert.Equal(t, claims.ExpireTime, parsed.ExpireTime)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	claims := security.NewTokenClaims("vitaehub", "vitaehub", "user-1", time.Now().Add(time.Hour).Unix())

	token, err := security.GenJWT(claims, testSecret)
	require.NoError(t, err)

	_, err = security.ParseJWT(token, "another-secret")
	assert.Error(t, err)
}

func TestParseJWTRejectsTamperedToken(t *testing.T) {
	claims := security.NewTokenClaims("vitaehub", "vitaehub", "user-1", time.Now().Add(time.Hour).Unix())

	token, err := security.GenJWT(claims, testSecret)
	require.NoError(t, err)

	_, err = security.ParseJWT(token+"x", testSecret)
	assert.Error(t, err)
}

func TestParseJWTRejectsExpiredToken(t *testing.T) {
	claims := security.TokenClaims{
		Appid:      "vitaehub",
		AppName:    "vitaehub",
		User:       "user-1",
		ExpireTime: time.Now().Add(-time.Minute).Unix(),
		NotBefore:  time.Now().Add(-time.Hour).Unix(),
	}

	token, err := security.GenJWT(claims, testSecret)
	require.NoError(t, err)

	_, err = security.ParseJWT(token, testSecret)
	assert.Error(t, err)
}
