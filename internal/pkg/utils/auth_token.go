package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/ougirez/cpi/internal/pkg/constants"
	"github.com/spf13/viper"
)

const authTokenTTL = 24 * time.Hour

type AuthTokenWrapper struct {
	Secret string `json:"secret"`
}

type authClaims struct {
	jwt.StandardClaims
	AuthTokenWrapper
}

func signingKey() ([]byte, error) {
	key := viper.GetString(constants.ViperJWTKey)
	if key == "" {
		return nil, fmt.Errorf("empty %s", constants.ViperJWTKey)
	}
	return []byte(key), nil
}

func GenerateAuthToken(wrapper *AuthTokenWrapper) (string, error) {
	key, err := signingKey()
	if err != nil {
		return "", err
	}

	claims := authClaims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(authTokenTTL).Unix(),
		},
		AuthTokenWrapper: *wrapper,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

func ParseAuthToken(token string) (*AuthTokenWrapper, error) {
	key, err := signingKey()
	if err != nil {
		return nil, err
	}

	var claims authClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil || !parsed.Valid {
		return nil, constants.ErrUnauthorized
	}

	return &claims.AuthTokenWrapper, nil
}
