package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"jobportal/internal/models"
)

// ErrDuplicateEmail — нарушение уникальности email (гонку двух регистраций
// разрешает констрейнт БД, а не блокировки в коде).
var ErrDuplicateEmail = errors.New("email already in use")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id int) (*models.User, error)
	UpdatePassword(userID int, passwordHash string) error
	SetGoogleID(userID int, googleID string) error
	SetBlocked(userID int, blocked bool) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (first_name, last_name, email, phone, password_hash, role, is_blocked, google_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(q,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.IsBlocked,
		user.GoogleID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
		SELECT id, first_name, last_name, email, phone, password_hash, role, is_blocked,
		       google_id, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.DB.QueryRow(q, email))
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	const q = `
		SELECT id, first_name, last_name, email, phone, password_hash, role, is_blocked,
		       google_id, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRow(q, id))
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var googleID sql.NullString
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.PasswordHash,
		&u.Role, &u.IsBlocked, &googleID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}
	if googleID.Valid {
		s := googleID.String
		u.GoogleID = &s
	}
	return u, nil
}

func (r *userRepository) UpdatePassword(userID int, passwordHash string) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET password_hash=$1, updated_at=NOW()
		WHERE id=$2
	`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("user update password: %w", err)
	}
	return nil
}

func (r *userRepository) SetGoogleID(userID int, googleID string) error {
	// заполняем только если привязки ещё нет — не перетираем существующую
	_, err := r.DB.Exec(`
		UPDATE users
		SET google_id=$1, updated_at=NOW()
		WHERE id=$2 AND google_id IS NULL
	`, googleID, userID)
	if err != nil {
		return fmt.Errorf("user set google id: %w", err)
	}
	return nil
}

func (r *userRepository) SetBlocked(userID int, blocked bool) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET is_blocked=$1, updated_at=NOW()
		WHERE id=$2
	`, blocked, userID)
	if err != nil {
		return fmt.Errorf("user set blocked: %w", err)
	}
	return nil
}
