package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal/internal/models"
	"jobportal/internal/services"
)

type OtpHandler struct {
	svc services.OtpService
}

func NewOtpHandler(svc services.OtpService) *OtpHandler {
	return &OtpHandler{svc: svc}
}

// @Summary      Отправка OTP-кода
// @Description  Генерирует код подтверждения email и отправляет письмом
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.SendOtpRequest  true  "Email для подтверждения"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /auth/otp [post]
func (h *OtpHandler) SendOtp(c *gin.Context) {
	var req models.SendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	if err := h.svc.SendOtp(req.Email); err != nil {
		if errors.Is(err, services.ErrResendThrottled) {
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests, try later"})
			return
		}
		log.Printf("[auth][otp] email=%q: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error sending OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}
