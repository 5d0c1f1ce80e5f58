package security

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const (
	TOKEN_KEY = "Authorization"
)

type TokenClaims struct {
	Appid      string `json:"aid"`
	AppName    string `json:"an"`
	User       string `json:"u"`   // platform user id
	ExpireTime int64  `json:"exp"` // unix timestamp
	NotBefore  int64  `json:"nbf"` // unix timestamp
}

func NewTokenClaims(appid, appName, user string, expiresAt int64) TokenClaims {
	return TokenClaims{
		Appid:      appid,
		AppName:    appName,
		User:       user,
		ExpireTime: expiresAt,
		NotBefore:  time.Now().Unix(),
	}
}

func (c TokenClaims) Valid() error {
	now := time.Now().Unix()
	if c.ExpireTime != 0 && now > c.ExpireTime {
		return errors.New("token expired")
	}
	if c.NotBefore != 0 && now < c.NotBefore {
		return errors.New("token not active yet")
	}
	return nil
}

func GenJWT(claims TokenClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenValue, secret string) (TokenClaims, error) {
	var claims TokenClaims
	token, err := jwt.ParseWithClaims(tokenValue, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return TokenClaims{}, err
	}
	if !token.Valid {
		return TokenClaims{}, errors.New("invalid token")
	}
	return claims, nil
}
