package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"jobportal/internal/config"
	"jobportal/internal/models"
	"jobportal/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testCookieConfig() config.CookieConfig {
	return config.CookieConfig{SameSite: "lax"}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		ResetSecret:   "reset-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    time.Hour,
		ResetTTL:      15 * time.Minute,
	}
}

// стабы сервисов: каждый тест подставляет только нужные функции

type stubUserAuth struct {
	signUp         func(models.SignUpRequest) (*services.AuthResult, error)
	login          func(email, password string) (*services.AuthResult, error)
	googleSignIn   func(ctx context.Context, tokenID string) (*services.AuthResult, error)
	forgotPassword func(email string) (string, error)
	checkReset     func(token string) error
	resetPassword  func(token, newPassword string) error
	refresh        func(token string) (*services.AuthResult, error)
}

func (s *stubUserAuth) SignUp(req models.SignUpRequest) (*services.AuthResult, error) {
	return s.signUp(req)
}

func (s *stubUserAuth) Login(email, password string) (*services.AuthResult, error) {
	return s.login(email, password)
}

func (s *stubUserAuth) GoogleSignIn(ctx context.Context, tokenID string) (*services.AuthResult, error) {
	return s.googleSignIn(ctx, tokenID)
}

func (s *stubUserAuth) ForgotPassword(email string) (string, error) {
	return s.forgotPassword(email)
}

func (s *stubUserAuth) CheckResetToken(token string) error {
	return s.checkReset(token)
}

func (s *stubUserAuth) ResetPassword(token, newPassword string) error {
	return s.resetPassword(token, newPassword)
}

func (s *stubUserAuth) Refresh(token string) (*services.AuthResult, error) {
	return s.refresh(token)
}

type stubRecruiterAuth struct {
	signUp func(models.RecruiterSignUpRequest) (*models.Recruiter, error)
	login  func(email, password string) (*services.AuthResult, error)
}

func (s *stubRecruiterAuth) SignUp(req models.RecruiterSignUpRequest) (*models.Recruiter, error) {
	return s.signUp(req)
}

func (s *stubRecruiterAuth) Login(email, password string) (*services.AuthResult, error) {
	return s.login(email, password)
}

type stubOtp struct {
	sendOtp func(email string) error
}

func (s *stubOtp) SendOtp(email string) error { return s.sendOtp(email) }

var errBoom = errors.New("boom")

func okResult() *services.AuthResult {
	return &services.AuthResult{
		UserID:       1,
		FirstName:    "Ann",
		Role:         "user",
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}
}

func doJSON(t *testing.T, handler gin.HandlerFunc, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r := gin.New()
	r.Handle(method, path, handler)
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
