package routes

import (
	"github.com/gin-gonic/gin"

	"jobportal/internal/authz"
	"jobportal/internal/handlers"
	"jobportal/internal/middleware"
	"jobportal/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	tokens services.TokenService,
	authHandler *handlers.AuthHandler,
	passwordHandler *handlers.PasswordHandler,
	otpHandler *handlers.OtpHandler,
	recruiterHandler *handlers.RecruiterHandler,
) *gin.Engine {

	// ---- public
	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/login", authHandler.Login)
		auth.POST("/google", authHandler.GoogleSignIn)
		auth.POST("/otp", otpHandler.SendOtp)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)

		auth.POST("/forgot-password", passwordHandler.ForgotPassword)
		auth.GET("/reset-password", passwordHandler.CheckResetToken)
		auth.POST("/reset-password", passwordHandler.ResetPassword)
	}

	recruiters := r.Group("/recruiters")
	{
		recruiters.POST("/signup", recruiterHandler.SignUp)
		recruiters.POST("/login", recruiterHandler.Login)
	}

	// ---- protected (JWT)
	r.Use(middleware.AuthMiddleware(tokens))

	r.GET("/auth/me", authHandler.Me)
	// роль проверяется по claim'у access-токена
	r.GET("/recruiters/me", middleware.RequireRoles(authz.RoleRecruiter), recruiterHandler.Me)

	return r
}
