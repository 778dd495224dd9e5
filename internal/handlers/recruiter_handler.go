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

type RecruiterHandler struct {
	svc     services.RecruiterAuthService
	cookies config.CookieConfig
	jwt     config.JWTConfig
}

func NewRecruiterHandler(svc services.RecruiterAuthService, cookies config.CookieConfig, jwt config.JWTConfig) *RecruiterHandler {
	return &RecruiterHandler{svc: svc, cookies: cookies, jwt: jwt}
}

// @Summary      Регистрация рекрутёра
// @Description  Создаёт аккаунт рекрутёра со статусом pending; вход до одобрения закрыт
// @Tags         Recruiters
// @Accept       json
// @Produce      json
// @Param        signup  body      models.RecruiterSignUpRequest  true  "Данные рекрутёра и компании"
// @Success      201     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]string
// @Failure      409     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /recruiters/signup [post]
func (h *RecruiterHandler) SignUp(c *gin.Context) {
	var req models.RecruiterSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please fill in all fields."})
		return
	}

	rec, err := h.svc.SignUp(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "Email already in use."})
		default:
			log.Printf("[auth][recruiter-signup] email=%q: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating recruiter"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Recruiter account created, pending approval",
		"status":  rec.Status,
	})
}

// @Summary      Вход рекрутёра
// @Description  Вход открыт только для одобренных аккаунтов
// @Tags         Recruiters
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Данные для входа"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /recruiters/login [post]
func (h *RecruiterHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please fill in all fields."})
		return
	}

	res, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Email or password is incorrect"})
		case errors.Is(err, services.ErrRecruiterPending):
			c.JSON(http.StatusForbidden, gin.H{"message": "Your account is pending approval"})
		case errors.Is(err, services.ErrRecruiterRejected):
			c.JSON(http.StatusForbidden, gin.H{"message": "Your account has been rejected"})
		default:
			log.Printf("[auth][recruiter-login] email=%q: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in"})
		}
		return
	}

	http.SetCookie(c.Writer, buildTokenCookie(h.cookies, refreshCookieName, res.RefreshToken, h.jwt.RefreshTTL))
	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("%s logged in successfully", res.FirstName),
		"accessToken": res.AccessToken,
		"role":        res.Role,
	})
}

// @Summary      Текущий рекрутёр
// @Description  Возвращает id и роль из access-токена; доступно только роли recruiter
// @Tags         Recruiters
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /recruiters/me [get]
func (h *RecruiterHandler) Me(c *gin.Context) {
	userID, role := getUserAndRole(c)
	c.JSON(http.StatusOK, gin.H{"id": userID, "role": role})
}
