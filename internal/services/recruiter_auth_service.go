package services

import (
	"errors"
	"log"
	"strings"

	"jobportal/internal/authz"
	"jobportal/internal/models"
	"jobportal/internal/repositories"
)

var (
	ErrRecruiterPending  = errors.New("recruiter account pending approval")
	ErrRecruiterRejected = errors.New("recruiter account rejected")
)

type RecruiterAuthService interface {
	SignUp(req models.RecruiterSignUpRequest) (*models.Recruiter, error)
	Login(email, password string) (*AuthResult, error)
}

type recruiterAuthService struct {
	recruiters repositories.RecruiterRepository
	auth       AuthService
	tokens     TokenService
	emails     EmailService
}

func NewRecruiterAuthService(
	recruiters repositories.RecruiterRepository,
	auth AuthService,
	tokens TokenService,
	emails EmailService,
) RecruiterAuthService {
	return &recruiterAuthService{
		recruiters: recruiters,
		auth:       auth,
		tokens:     tokens,
		emails:     emails,
	}
}

func (s *recruiterAuthService) SignUp(req models.RecruiterSignUpRequest) (*models.Recruiter, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.recruiters.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	rec := &models.Recruiter{
		Name:               strings.TrimSpace(req.Name),
		Email:              email,
		PasswordHash:       hash,
		Role:               authz.RoleRecruiter,
		CompanyName:        strings.TrimSpace(req.CompanyName),
		CompanyDescription: req.CompanyDescription,
		CompanyLogoURL:     req.CompanyLogoURL,
		Status:             models.RecruiterStatusPending, // до одобрения модератором входа нет
	}
	if err := s.recruiters.Create(rec); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.emails != nil {
		if err := s.emails.SendRecruiterWelcomeEmail(rec.Email, rec.Name); err != nil {
			log.Printf("[auth][recruiter] failed to send welcome email to %s: %v", rec.Email, err)
		}
	}
	return rec, nil
}

func (s *recruiterAuthService) Login(email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	rec, err := s.recruiters.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrInvalidCredentials
	}
	if !s.auth.CheckPassword(rec.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	switch rec.Status {
	case models.RecruiterStatusApproved:
		// ok
	case models.RecruiterStatusRejected:
		return nil, ErrRecruiterRejected
	default:
		return nil, ErrRecruiterPending
	}

	access, err := s.tokens.NewAccessToken(rec.ID, rec.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.NewRefreshToken(rec.ID, rec.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		UserID:       rec.ID,
		FirstName:    rec.Name,
		Role:         rec.Role,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
