package models

import "time"

// OtpCode — одна запись на каждую отправку кода.
// При проверке действителен только самый свежий код по email.
type OtpCode struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
