package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal/internal/models"
	"jobportal/internal/services"
)

func newAuthHandler(svc services.UserAuthService) *AuthHandler {
	return NewAuthHandler(svc, testCookieConfig(), testJWTConfig())
}

func validSignUpBody() models.SignUpRequest {
	return models.SignUpRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@x.com",
		Phone:     "+77001234567",
		Password:  "secret123",
		Otp:       "123456",
	}
}

func TestSignUpHandler_Created(t *testing.T) {
	svc := &stubUserAuth{
		signUp: func(req models.SignUpRequest) (*services.AuthResult, error) {
			assert.Equal(t, "ann@x.com", req.Email)
			return okResult(), nil
		},
	}
	h := newAuthHandler(svc)

	w := doJSON(t, h.SignUp, http.MethodPost, "/auth/signup", validSignUpBody())
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "User created successfully", body["message"])
	assert.Equal(t, "access-token", body["accessToken"])
	assert.Equal(t, "user", body["role"])
	// refresh-токена в теле быть не должно, только в куке
	assert.NotContains(t, body, "refreshToken")

	c := findCookie(w, "jwt")
	require.NotNil(t, c)
	assert.Equal(t, "refresh-token", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
}

func TestSignUpHandler_MissingFields(t *testing.T) {
	h := newAuthHandler(&stubUserAuth{})

	body := validSignUpBody()
	body.Otp = ""
	w := doJSON(t, h.SignUp, http.MethodPost, "/auth/signup", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please fill in all fields.", decodeBody(t, w)["message"])
}

func TestSignUpHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"conflict", services.ErrEmailTaken, http.StatusConflict, "Email already in use."},
		{"bad otp", services.ErrInvalidOtp, http.StatusUnprocessableEntity, "Invalid OTP"},
		{"internal", errBoom, http.StatusInternalServerError, "Error creating user"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubUserAuth{
				signUp: func(models.SignUpRequest) (*services.AuthResult, error) { return nil, tc.err },
			}
			w := doJSON(t, newAuthHandler(svc).SignUp, http.MethodPost, "/auth/signup", validSignUpBody())
			require.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.message, decodeBody(t, w)["message"])
			assert.Nil(t, findCookie(w, "jwt"))
		})
	}
}

// неизвестный email и неверный пароль должны давать байт-в-байт одинаковый ответ
func TestLoginHandler_IndistinguishableFailures(t *testing.T) {
	svc := &stubUserAuth{
		login: func(string, string) (*services.AuthResult, error) {
			return nil, services.ErrInvalidCredentials
		},
	}
	h := newAuthHandler(svc)

	w1 := doJSON(t, h.Login, http.MethodPost, "/auth/login", models.LoginRequest{Email: "ghost@x.com", Password: "right"})
	w2 := doJSON(t, h.Login, http.MethodPost, "/auth/login", models.LoginRequest{Email: "ann@x.com", Password: "wrong"})

	require.Equal(t, http.StatusUnauthorized, w1.Code)
	require.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Equal(t, w1.Body.String(), w2.Body.String())
	assert.Equal(t, "Email or password is incorrect", decodeBody(t, w1)["message"])
}

func TestLoginHandler_Success(t *testing.T) {
	svc := &stubUserAuth{
		login: func(email, password string) (*services.AuthResult, error) {
			assert.Equal(t, "ann@x.com", email)
			return okResult(), nil
		},
	}
	w := doJSON(t, newAuthHandler(svc).Login, http.MethodPost, "/auth/login",
		models.LoginRequest{Email: "ann@x.com", Password: "secret123"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Ann logged in successfully", body["message"])
	assert.Equal(t, "access-token", body["accessToken"])
	require.NotNil(t, findCookie(w, "jwt"))
}

func TestLoginHandler_Blocked(t *testing.T) {
	svc := &stubUserAuth{
		login: func(string, string) (*services.AuthResult, error) {
			return nil, services.ErrAccountBlocked
		},
	}
	w := doJSON(t, newAuthHandler(svc).Login, http.MethodPost, "/auth/login",
		models.LoginRequest{Email: "ann@x.com", Password: "secret123"})

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Your account has been blocked", decodeBody(t, w)["message"])
}

func TestGoogleSignInHandler_Success(t *testing.T) {
	svc := &stubUserAuth{
		googleSignIn: func(_ context.Context, tokenID string) (*services.AuthResult, error) {
			assert.Equal(t, "good-id-token", tokenID)
			return okResult(), nil
		},
	}
	w := doJSON(t, newAuthHandler(svc).GoogleSignIn, http.MethodPost, "/auth/google",
		models.GoogleSignInRequest{TokenID: "good-id-token"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Ann logged in successfully via Google", body["message"])
	require.NotNil(t, findCookie(w, "jwt"))
}

func TestGoogleSignInHandler_NoToken(t *testing.T) {
	w := doJSON(t, newAuthHandler(&stubUserAuth{}).GoogleSignIn, http.MethodPost, "/auth/google",
		map[string]string{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No token provided for google signin", decodeBody(t, w)["message"])
}

func TestGoogleSignInHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid token", services.ErrInvalidGoogleToken, http.StatusUnauthorized, "Invalid Google token"},
		{"unverified email", services.ErrEmailNotVerified, http.StatusBadRequest, "Google account email not verified."},
		{"blocked", services.ErrAccountBlocked, http.StatusForbidden, "Your account has been blocked"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubUserAuth{
				googleSignIn: func(context.Context, string) (*services.AuthResult, error) { return nil, tc.err },
			}
			w := doJSON(t, newAuthHandler(svc).GoogleSignIn, http.MethodPost, "/auth/google",
				models.GoogleSignInRequest{TokenID: "tok"})
			require.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.message, decodeBody(t, w)["message"])
		})
	}
}

func TestRefreshHandler_NoCookie(t *testing.T) {
	w := doJSON(t, newAuthHandler(&stubUserAuth{}).Refresh, http.MethodPost, "/auth/refresh", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, w)["message"])
}

func TestRefreshHandler_Success(t *testing.T) {
	svc := &stubUserAuth{
		refresh: func(token string) (*services.AuthResult, error) {
			assert.Equal(t, "refresh-token", token)
			res := okResult()
			res.RefreshToken = ""
			return res, nil
		},
	}
	w := doJSON(t, newAuthHandler(svc).Refresh, http.MethodPost, "/auth/refresh", nil,
		&http.Cookie{Name: "jwt", Value: "refresh-token"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "access-token", body["accessToken"])
	assert.Equal(t, "user", body["role"])
}

func TestRefreshHandler_InvalidToken(t *testing.T) {
	svc := &stubUserAuth{
		refresh: func(string) (*services.AuthResult, error) {
			return nil, services.ErrInvalidCredentials
		},
	}
	w := doJSON(t, newAuthHandler(svc).Refresh, http.MethodPost, "/auth/refresh", nil,
		&http.Cookie{Name: "jwt", Value: "stale"})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", decodeBody(t, w)["message"])
}

func TestLogoutHandler_DeletesCookie(t *testing.T) {
	w := doJSON(t, newAuthHandler(&stubUserAuth{}).Logout, http.MethodPost, "/auth/logout", nil,
		&http.Cookie{Name: "jwt", Value: "refresh-token"})

	require.Equal(t, http.StatusOK, w.Code)
	c := findCookie(w, "jwt")
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
}
