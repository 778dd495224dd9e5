package services

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	HashPassword(password string) (string, error)
	// CheckPassword — сравнение с хэшем; пустой хэш всегда false
	// (аккаунт, созданный через Google, не должен пускать по паролю)
	CheckPassword(hash, password string) bool
}

type authService struct{}

func NewAuthService() AuthService {
	return &authService{}
}

func (s *authService) HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *authService) CheckPassword(hash, password string) bool {
	h := strings.TrimSpace(hash)
	if h == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(h), []byte(password)) == nil
}
