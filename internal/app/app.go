package app

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"jobportal/internal/config"
	"jobportal/internal/handlers"
	"jobportal/internal/repositories"
	"jobportal/internal/routes"
	"jobportal/internal/services"
	"jobportal/internal/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "jobportal/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	recruiterRepo := repositories.NewRecruiterRepository(db)
	otpRepo := repositories.NewOtpRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	tokenService := services.NewTokenService(cfg.JWT)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	// клиент Google — один на процесс, конфигурируется при старте
	googleClient := utils.NewGoogleClient(cfg.Google.ClientID)

	userAuthService := services.NewUserAuthService(
		userRepo, otpRepo, authService, tokenService, googleClient, emailService,
	)
	recruiterAuthService := services.NewRecruiterAuthService(
		recruiterRepo, authService, tokenService, emailService,
	)
	otpService := services.NewOtpService(
		otpRepo, emailService,
		cfg.OTP.TTL, cfg.OTP.ResendWindow, cfg.OTP.MaxResends,
	)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userAuthService, cfg.Cookie, cfg.JWT)
	passwordHandler := handlers.NewPasswordHandler(userAuthService, cfg.Cookie, cfg.JWT)
	otpHandler := handlers.NewOtpHandler(otpService)
	recruiterHandler := handlers.NewRecruiterHandler(recruiterAuthService, cfg.Cookie, cfg.JWT)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupRoutes(
		router,
		tokenService,
		authHandler,
		passwordHandler,
		otpHandler,
		recruiterHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
