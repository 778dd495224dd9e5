package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal/internal/config"
	"jobportal/internal/models"
	"jobportal/internal/services"
)

type PasswordHandler struct {
	svc     services.UserAuthService
	cookies config.CookieConfig
	jwt     config.JWTConfig
}

func NewPasswordHandler(svc services.UserAuthService, cookies config.CookieConfig, jwt config.JWTConfig) *PasswordHandler {
	return &PasswordHandler{svc: svc, cookies: cookies, jwt: jwt}
}

// @Summary      Запрос сброса пароля
// @Description  Ставит reset-куку и шлёт письмо; существование аккаунта не раскрывается
// @Tags         Password
// @Accept       json
// @Produce      json
// @Param        request  body      models.ForgotPasswordRequest  true  "Email аккаунта"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /auth/forgot-password [post]
func (h *PasswordHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	token, err := h.svc.ForgotPassword(req.Email)
	if err != nil {
		log.Printf("[auth][forgot] email=%q: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error requesting password reset"})
		return
	}

	http.SetCookie(c.Writer, buildTokenCookie(h.cookies, resetCookieName, token, h.jwt.ResetTTL))
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset email has been sent"})
}

// @Summary      Проверка reset-токена
// @Description  Валидирует reset-куку перед показом формы нового пароля
// @Tags         Password
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/reset-password [get]
func (h *PasswordHandler) CheckResetToken(c *gin.Context) {
	resetToken, err := c.Cookie(resetCookieName)
	if err != nil || resetToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized or token expired"})
		return
	}

	if err := h.svc.CheckResetToken(resetToken); err != nil {
		if errors.Is(err, services.ErrInvalidResetToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		log.Printf("[auth][check-reset] %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token valid"})
}

// @Summary      Сброс пароля
// @Description  Перезаписывает хэш пароля по действующей reset-куке
// @Tags         Password
// @Accept       json
// @Produce      json
// @Param        request  body      models.ResetPasswordRequest  true  "Новый пароль"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /auth/reset-password [post]
func (h *PasswordHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "New password is required"})
		return
	}

	resetToken, err := c.Cookie(resetCookieName)
	if err != nil || resetToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized or token expired"})
		return
	}

	if err := h.svc.ResetPassword(resetToken, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidResetToken):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		default:
			log.Printf("[auth][reset] %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error during password reset"})
		}
		return
	}

	// токен одноразовый по смыслу — затираем куку
	http.SetCookie(c.Writer, buildDeletionCookie(h.cookies, resetCookieName))
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}
