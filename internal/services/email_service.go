package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendOtpEmail(email, code string) error
	SendPasswordResetEmail(email string) error
	SendRecruiterWelcomeEmail(email, name string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendOtpEmail(email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your verification code")

	body := fmt.Sprintf(`
		<h3>Email verification</h3>
		<p>Your one-time verification code is: <strong>%s</strong></p>
		<p>Enter it on the signup page to confirm your email address.</p>
	`, code)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}

	return nil
}

func (s *emailService) SendPasswordResetEmail(email string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Password reset request")

	body := `
		<h3>Password reset requested</h3>
		<p>We received a request to reset the password for your account.</p>
		<p>Return to the reset page in your browser to choose a new password.</p>
		<p>If you did not request this change, you can ignore this email.</p>
	`

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}

func (s *emailService) SendRecruiterWelcomeEmail(email, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your recruiter account is pending review")

	body := fmt.Sprintf(`
		<h3>Welcome, %s!</h3>
		<p>Your recruiter account has been created and is awaiting approval.</p>
		<p>We will notify you once it has been reviewed.</p>
	`, name)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send recruiter welcome email: %w", err)
	}

	return nil
}
