package main

import "jobportal/internal/app"

// @title           JobPortal Auth API
// @version         1.0
// @description     Аутентификация: регистрация с OTP, вход, Google sign-in, сброс пароля
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
