package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"jobportal/internal/repositories"
)

var ErrResendThrottled = errors.New("resend throttled")

type OtpService interface {
	SendOtp(email string) error
}

type otpService struct {
	repo   repositories.OtpRepository
	emails EmailService

	codeTTL      time.Duration
	resendWindow time.Duration
	maxResends   int
}

func NewOtpService(repo repositories.OtpRepository, emails EmailService, codeTTL, resendWindow time.Duration, maxResends int) OtpService {
	return &otpService{
		repo:         repo,
		emails:       emails,
		codeTTL:      codeTTL,
		resendWindow: resendWindow,
		maxResends:   maxResends,
	}
}

// генерация 6-значного кода
func (s *otpService) generateCode() string {
	src := rand.NewSource(time.Now().UnixNano())
	rnd := rand.New(src)
	return fmt.Sprintf("%06d", rnd.Intn(1000000))
}

func (s *otpService) SendOtp(email string) error {
	// код хранится под тем же нормализованным email, по которому его ищет регистрация
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}

	// троттлинг повторных отправок
	sent, err := s.repo.CountRecentSends(email, time.Now().Add(-s.resendWindow))
	if err != nil {
		return err
	}
	if sent >= s.maxResends {
		return ErrResendThrottled
	}

	code := s.generateCode()
	now := time.Now()
	if _, err := s.repo.Create(email, code, now, now.Add(s.codeTTL)); err != nil {
		return err
	}

	if err := s.emails.SendOtpEmail(email, code); err != nil {
		return fmt.Errorf("otp email: %w", err)
	}
	return nil
}
