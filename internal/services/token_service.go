package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jobportal/internal/config"
)

// AccessUserInfo — полезная нагрузка access-токена, вложена под "userInfo"
type AccessUserInfo struct {
	ID   int    `json:"id"`
	Role string `json:"role"`
}

type AccessClaims struct {
	UserInfo AccessUserInfo `json:"userInfo"`
	jwt.RegisteredClaims
}

// RefreshClaims — плоские id/role, уходит только в httpOnly-куку
type RefreshClaims struct {
	ID   int    `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type ResetClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService — одна схема подписи (HS256 + claims + TTL),
// но три независимых секрета по назначению токена.
type TokenService interface {
	NewAccessToken(userID int, role string) (string, error)
	NewRefreshToken(userID int, role string) (string, error)
	NewResetToken(email string) (string, error)

	ParseAccessToken(token string) (*AccessClaims, error)
	ParseRefreshToken(token string) (*RefreshClaims, error)
	ParseResetToken(token string) (*ResetClaims, error)
}

type tokenService struct {
	cfg config.JWTConfig
}

func NewTokenService(cfg config.JWTConfig) TokenService {
	return &tokenService{cfg: cfg}
}

func (s *tokenService) sign(claims jwt.Claims, secret string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// keyfunc: принимаем только HMAC, секрет строго по назначению токена
func hmacKeyfunc(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	}
}

func (s *tokenService) NewAccessToken(userID int, role string) (string, error) {
	claims := &AccessClaims{
		UserInfo: AccessUserInfo{ID: userID, Role: role},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return s.sign(claims, s.cfg.AccessSecret)
}

func (s *tokenService) NewRefreshToken(userID int, role string) (string, error) {
	claims := &RefreshClaims{
		ID:   userID,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.RefreshTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return s.sign(claims, s.cfg.RefreshSecret)
}

func (s *tokenService) NewResetToken(email string) (string, error) {
	claims := &ResetClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.ResetTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return s.sign(claims, s.cfg.ResetSecret)
}

func (s *tokenService) ParseAccessToken(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, hmacKeyfunc(s.cfg.AccessSecret))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid access token")
	}
	return claims, nil
}

func (s *tokenService) ParseRefreshToken(tokenStr string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, hmacKeyfunc(s.cfg.RefreshSecret))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid refresh token")
	}
	return claims, nil
}

func (s *tokenService) ParseResetToken(tokenStr string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, hmacKeyfunc(s.cfg.ResetSecret))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid reset token")
	}
	return claims, nil
}
