package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal/internal/config"
	"jobportal/internal/models"
	"jobportal/internal/services"
)

type AuthHandler struct {
	svc     services.UserAuthService
	cookies config.CookieConfig
	jwt     config.JWTConfig
}

func NewAuthHandler(svc services.UserAuthService, cookies config.CookieConfig, jwt config.JWTConfig) *AuthHandler {
	return &AuthHandler{svc: svc, cookies: cookies, jwt: jwt}
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, buildTokenCookie(h.cookies, refreshCookieName, token, h.jwt.RefreshTTL))
}

// @Summary      Регистрация пользователя
// @Description  Создаёт аккаунт после проверки OTP-кода, выдаёт access-токен и ставит refresh-куку
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        signup  body      models.SignUpRequest  true  "Данные регистрации"
// @Success      201     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]string
// @Failure      409     {object}  map[string]string
// @Failure      422     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please fill in all fields."})
		return
	}

	res, err := h.svc.SignUp(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "Email already in use."})
		case errors.Is(err, services.ErrInvalidOtp):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid OTP"})
		default:
			log.Printf("[auth][signup] email=%q: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating user"})
		}
		return
	}

	h.setRefreshCookie(c, res.RefreshToken)
	c.JSON(http.StatusCreated, gin.H{
		"message":     "User created successfully",
		"accessToken": res.AccessToken,
		"role":        res.Role,
	})
}

// @Summary      Вход в систему
// @Description  Проверяет email и пароль, выдаёт access-токен и ставит refresh-куку
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Данные для входа"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please fill in all fields."})
		return
	}

	res, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			// ответ одинаковый для неизвестного email и неверного пароля
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Email or password is incorrect"})
		case errors.Is(err, services.ErrAccountBlocked):
			c.JSON(http.StatusForbidden, gin.H{"message": "Your account has been blocked"})
		default:
			log.Printf("[auth][login] email=%q: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in"})
		}
		return
	}

	h.setRefreshCookie(c, res.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("%s logged in successfully", res.FirstName),
		"accessToken": res.AccessToken,
		"role":        res.Role,
	})
}

// @Summary      Вход через Google
// @Description  Проверяет id_token Google, при первом входе создаёт аккаунт, повторные входы сливает по email
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        token  body      models.GoogleSignInRequest  true  "Google id_token"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /auth/google [post]
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req models.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No token provided for google signin"})
		return
	}

	res, err := h.svc.GoogleSignIn(c.Request.Context(), req.TokenID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidGoogleToken):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Google token"})
		case errors.Is(err, services.ErrEmailNotVerified):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Google account email not verified."})
		case errors.Is(err, services.ErrAccountBlocked):
			c.JSON(http.StatusForbidden, gin.H{"message": "Your account has been blocked"})
		default:
			log.Printf("[auth][google] sign-in failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error during Google sign in"})
		}
		return
	}

	h.setRefreshCookie(c, res.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("%s logged in successfully via Google", res.FirstName),
		"accessToken": res.AccessToken,
		"role":        res.Role,
	})
}

// @Summary      Обновление access-токена
// @Description  Читает refresh-куку и выдаёт новый access-токен
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(refreshCookieName)
	if err != nil || refresh == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	res, err := h.svc.Refresh(refresh)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		case errors.Is(err, services.ErrAccountBlocked):
			c.JSON(http.StatusForbidden, gin.H{"message": "Your account has been blocked"})
		default:
			log.Printf("[auth][refresh] %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error refreshing token"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": res.AccessToken,
		"role":        res.Role,
	})
}

// @Summary      Выход
// @Description  Затирает refresh-куку
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, buildDeletionCookie(h.cookies, refreshCookieName))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// @Summary      Текущий пользователь
// @Description  Возвращает id и роль из access-токена
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, role := getUserAndRole(c)
	c.JSON(http.StatusOK, gin.H{"id": userID, "role": role})
}
