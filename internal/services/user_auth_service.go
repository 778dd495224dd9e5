package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"jobportal/internal/authz"
	"jobportal/internal/models"
	"jobportal/internal/repositories"
	"jobportal/internal/utils"
)

var (
	ErrEmailTaken = errors.New("email already in use")
	ErrInvalidOtp = errors.New("invalid otp")
	// одно и то же для "нет такого email" и "неверный пароль" —
	// чтобы нельзя было перебором выяснить, кто зарегистрирован
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrAccountBlocked     = errors.New("account blocked")
	ErrInvalidGoogleToken = errors.New("invalid google token")
	ErrEmailNotVerified   = errors.New("google email not verified")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrUserNotFound       = errors.New("user not found")
)

// email сравнивается без учёта регистра: нормализуем
// в одном месте и применяем при записи и при каждом поиске
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GoogleVerifier — проверка id_token'а внешним провайдером
type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*utils.GoogleClaims, error)
}

// AuthResult — итог успешного входа: access-токен в тело ответа,
// refresh-токен только в httpOnly-куку (ставит хендлер).
type AuthResult struct {
	UserID       int
	FirstName    string
	Role         string
	AccessToken  string
	RefreshToken string
}

type UserAuthService interface {
	SignUp(req models.SignUpRequest) (*AuthResult, error)
	Login(email, password string) (*AuthResult, error)
	GoogleSignIn(ctx context.Context, tokenID string) (*AuthResult, error)

	ForgotPassword(email string) (resetToken string, err error)
	CheckResetToken(resetToken string) error
	ResetPassword(resetToken, newPassword string) error

	Refresh(refreshToken string) (*AuthResult, error)
}

type userAuthService struct {
	users  repositories.UserRepository
	otps   repositories.OtpRepository
	auth   AuthService
	tokens TokenService
	google GoogleVerifier
	emails EmailService
}

func NewUserAuthService(
	users repositories.UserRepository,
	otps repositories.OtpRepository,
	auth AuthService,
	tokens TokenService,
	google GoogleVerifier,
	emails EmailService,
) UserAuthService {
	return &userAuthService{
		users:  users,
		otps:   otps,
		auth:   auth,
		tokens: tokens,
		google: google,
		emails: emails,
	}
}

func (s *userAuthService) issueTokens(user *models.User) (*AuthResult, error) {
	access, err := s.tokens.NewAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.NewRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		UserID:       user.ID,
		FirstName:    user.FirstName,
		Role:         user.Role,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *userAuthService) SignUp(req models.SignUpRequest) (*AuthResult, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	// действителен только последний отправленный код, сравнение точное
	otp, err := s.otps.GetLatestByEmail(email)
	if err != nil {
		return nil, err
	}
	if otp == nil || otp.Code != req.Otp {
		return nil, ErrInvalidOtp
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		Role:         authz.RoleUser,
		IsBlocked:    false,
	}
	if err := s.users.Create(user); err != nil {
		// гонка двух регистраций: уникальность решает БД
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *userAuthService) Login(email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	// пароль сверяется байт-в-байт, как был захэширован при регистрации
	if !s.auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	// пароль верный, но аккаунт заблокирован — отдельный статус
	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}

	return s.issueTokens(user)
}

func (s *userAuthService) GoogleSignIn(ctx context.Context, tokenID string) (*AuthResult, error) {
	claims, err := s.google.VerifyIDToken(ctx, tokenID)
	if err != nil {
		log.Printf("[auth][google] id_token verification failed: %v", err)
		return nil, ErrInvalidGoogleToken
	}
	if !claims.EmailVerified {
		return nil, ErrEmailNotVerified
	}
	email := normalizeEmail(claims.Email)

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		googleID := claims.Sub
		user = &models.User{
			FirstName:    claims.GivenName,
			LastName:     claims.FamilyName,
			Email:        email,
			PasswordHash: "", // паролю не по чему сравниваться — вход только через Google
			Role:         authz.RoleUser,
			GoogleID:     &googleID,
		}
		if err := s.users.Create(user); err != nil {
			if !errors.Is(err, repositories.ErrDuplicateEmail) {
				return nil, err
			}
			// параллельный вход с тем же email: берём уже созданный аккаунт
			user, err = s.users.GetByEmail(email)
			if err != nil {
				return nil, err
			}
			if user == nil {
				return nil, ErrUserNotFound
			}
		}
	}

	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}
	if user.GoogleID == nil {
		// привязываем Google к парольному аккаунту, пароль не трогаем
		if err := s.users.SetGoogleID(user.ID, claims.Sub); err != nil {
			return nil, err
		}
	}

	return s.issueTokens(user)
}

func (s *userAuthService) ForgotPassword(email string) (string, error) {
	email = normalizeEmail(email)

	token, err := s.tokens.NewResetToken(email)
	if err != nil {
		return "", err
	}

	// существование аккаунта не раскрываем: токен выдаём всегда,
	// письмо шлём только реальному пользователю
	user, err := s.users.GetByEmail(email)
	if err != nil || user == nil {
		log.Printf("[auth][forgot] request for %q: user not found or error: %v", email, err)
		return token, nil
	}
	if s.emails != nil {
		if err := s.emails.SendPasswordResetEmail(user.Email); err != nil {
			log.Printf("[auth][forgot] failed to send email to %s: %v", user.Email, err)
		}
	}
	return token, nil
}

func (s *userAuthService) CheckResetToken(resetToken string) error {
	claims, err := s.tokens.ParseResetToken(resetToken)
	if err != nil {
		return ErrInvalidResetToken
	}
	if claims.Email == "" {
		return ErrInvalidResetToken
	}
	user, err := s.users.GetByEmail(claims.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidResetToken
	}
	return nil
}

func (s *userAuthService) ResetPassword(resetToken, newPassword string) error {
	claims, err := s.tokens.ParseResetToken(resetToken)
	if err != nil {
		return ErrInvalidResetToken
	}
	user, err := s.users.GetByEmail(claims.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(user.ID, hash)
}

func (s *userAuthService) Refresh(refreshToken string) (*AuthResult, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.GetByID(claims.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}
	access, err := s.tokens.NewAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		UserID:      user.ID,
		FirstName:   user.FirstName,
		Role:        user.Role,
		AccessToken: access,
	}, nil
}
