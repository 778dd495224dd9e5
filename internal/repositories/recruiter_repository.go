package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"jobportal/internal/models"
)

type RecruiterRepository interface {
	Create(rec *models.Recruiter) error
	GetByEmail(email string) (*models.Recruiter, error)
	UpdateStatus(id int, status string) error
}

type recruiterRepository struct {
	DB *sql.DB
}

func NewRecruiterRepository(db *sql.DB) RecruiterRepository {
	return &recruiterRepository{DB: db}
}

func (r *recruiterRepository) Create(rec *models.Recruiter) error {
	const q = `
		INSERT INTO recruiters (name, email, password_hash, role, company_name, company_description, company_logo_url, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(q,
		rec.Name,
		rec.Email,
		rec.PasswordHash,
		rec.Role,
		rec.CompanyName,
		rec.CompanyDescription,
		rec.CompanyLogoURL,
		rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("recruiter create: %w", err)
	}
	return nil
}

func (r *recruiterRepository) GetByEmail(email string) (*models.Recruiter, error) {
	const q = `
		SELECT id, name, email, password_hash, role, company_name,
		       COALESCE(company_description,''), COALESCE(company_logo_url,''),
		       status, created_at, updated_at
		FROM recruiters
		WHERE email = $1
	`
	rec := &models.Recruiter{}
	err := r.DB.QueryRow(q, email).Scan(
		&rec.ID, &rec.Name, &rec.Email, &rec.PasswordHash, &rec.Role,
		&rec.CompanyName, &rec.CompanyDescription, &rec.CompanyLogoURL,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("recruiter scan: %w", err)
	}
	return rec, nil
}

func (r *recruiterRepository) UpdateStatus(id int, status string) error {
	_, err := r.DB.Exec(`
		UPDATE recruiters
		SET status=$1, updated_at=NOW()
		WHERE id=$2
	`, status, id)
	if err != nil {
		return fmt.Errorf("recruiter update status: %w", err)
	}
	return nil
}
