package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobportal/internal/models"
)

type OtpRepository interface {
	Create(email, code string, createdAt, expiresAt time.Time) (int64, error)
	// GetLatestByEmail — самый свежий код по email (created_at DESC), nil если нет
	GetLatestByEmail(email string) (*models.OtpCode, error)
	CountRecentSends(email string, since time.Time) (int, error)
}

type otpRepository struct {
	DB *sql.DB
}

func NewOtpRepository(db *sql.DB) OtpRepository {
	return &otpRepository{DB: db}
}

func (r *otpRepository) Create(email, code string, createdAt, expiresAt time.Time) (int64, error) {
	const q = `
		INSERT INTO otp_codes (email, code, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	if err := r.DB.QueryRow(q, email, code, createdAt, expiresAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("otp create: %w", err)
	}
	return id, nil
}

func (r *otpRepository) GetLatestByEmail(email string) (*models.OtpCode, error) {
	const q = `
		SELECT id, email, code, created_at, expires_at
		FROM otp_codes
		WHERE email = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	row := r.DB.QueryRow(q, email)
	var o models.OtpCode
	if err := row.Scan(&o.ID, &o.Email, &o.Code, &o.CreatedAt, &o.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("otp latest: %w", err)
	}
	return &o, nil
}

// CountRecentSends — сколько кодов отправили за окно (для троттлинга)
func (r *otpRepository) CountRecentSends(email string, since time.Time) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM otp_codes
		WHERE email = $1 AND created_at >= $2
	`
	var c int
	if err := r.DB.QueryRow(q, email, since).Scan(&c); err != nil {
		return 0, fmt.Errorf("otp count recent: %w", err)
	}
	return c, nil
}
