package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal/internal/models"
	"jobportal/internal/services"
)

func newRecruiterHandler(svc services.RecruiterAuthService) *RecruiterHandler {
	return NewRecruiterHandler(svc, testCookieConfig(), testJWTConfig())
}

func validRecruiterBody() models.RecruiterSignUpRequest {
	return models.RecruiterSignUpRequest{
		Name:        "Dana",
		Email:       "dana@corp.com",
		Password:    "secret123",
		CompanyName: "Corp",
	}
}

func TestRecruiterSignUpHandler_Created(t *testing.T) {
	svc := &stubRecruiterAuth{
		signUp: func(req models.RecruiterSignUpRequest) (*models.Recruiter, error) {
			assert.Equal(t, "dana@corp.com", req.Email)
			return &models.Recruiter{ID: 1, Status: models.RecruiterStatusPending}, nil
		},
	}
	w := doJSON(t, newRecruiterHandler(svc).SignUp, http.MethodPost, "/recruiters/signup", validRecruiterBody())

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Recruiter account created, pending approval", body["message"])
	assert.Equal(t, "pending", body["status"])
}

func TestRecruiterSignUpHandler_Conflict(t *testing.T) {
	svc := &stubRecruiterAuth{
		signUp: func(models.RecruiterSignUpRequest) (*models.Recruiter, error) {
			return nil, services.ErrEmailTaken
		},
	}
	w := doJSON(t, newRecruiterHandler(svc).SignUp, http.MethodPost, "/recruiters/signup", validRecruiterBody())

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already in use.", decodeBody(t, w)["message"])
}

func TestRecruiterLoginHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, "Email or password is incorrect"},
		{"pending", services.ErrRecruiterPending, http.StatusForbidden, "Your account is pending approval"},
		{"rejected", services.ErrRecruiterRejected, http.StatusForbidden, "Your account has been rejected"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubRecruiterAuth{
				login: func(string, string) (*services.AuthResult, error) { return nil, tc.err },
			}
			w := doJSON(t, newRecruiterHandler(svc).Login, http.MethodPost, "/recruiters/login",
				models.LoginRequest{Email: "dana@corp.com", Password: "secret123"})
			require.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.message, decodeBody(t, w)["message"])
			assert.Nil(t, findCookie(w, "jwt"))
		})
	}
}

func TestRecruiterLoginHandler_Success(t *testing.T) {
	svc := &stubRecruiterAuth{
		login: func(email, password string) (*services.AuthResult, error) {
			return &services.AuthResult{
				UserID:       3,
				FirstName:    "Dana",
				Role:         "recruiter",
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
			}, nil
		},
	}
	w := doJSON(t, newRecruiterHandler(svc).Login, http.MethodPost, "/recruiters/login",
		models.LoginRequest{Email: "dana@corp.com", Password: "secret123"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Dana logged in successfully", body["message"])
	assert.Equal(t, "recruiter", body["role"])

	c := findCookie(w, "jwt")
	require.NotNil(t, c)
	assert.Equal(t, "refresh-token", c.Value)
	assert.True(t, c.HttpOnly)
}
