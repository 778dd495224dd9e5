package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"jobportal/internal/models"
	"jobportal/internal/repositories"
	"jobportal/internal/utils"
)

// in-memory фейки репозиториев для юнит-тестов флоу

type fakeUserRepo struct {
	nextID  int
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, byEmail: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return repositories.ErrDuplicateEmail
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.byEmail[user.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByID(id int) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePassword(userID int, passwordHash string) error {
	for _, u := range f.byEmail {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			u.UpdatedAt = time.Now()
			return nil
		}
	}
	return errors.New("no such user")
}

func (f *fakeUserRepo) SetGoogleID(userID int, googleID string) error {
	for _, u := range f.byEmail {
		if u.ID == userID && u.GoogleID == nil {
			g := googleID
			u.GoogleID = &g
		}
	}
	return nil
}

func (f *fakeUserRepo) SetBlocked(userID int, blocked bool) error {
	for _, u := range f.byEmail {
		if u.ID == userID {
			u.IsBlocked = blocked
		}
	}
	return nil
}

type fakeOtpRepo struct {
	nextID int64
	codes  []models.OtpCode
}

func newFakeOtpRepo() *fakeOtpRepo { return &fakeOtpRepo{nextID: 1} }

func (f *fakeOtpRepo) Create(email, code string, createdAt, expiresAt time.Time) (int64, error) {
	id := f.nextID
	f.nextID++
	f.codes = append(f.codes, models.OtpCode{
		ID: id, Email: email, Code: code, CreatedAt: createdAt, ExpiresAt: expiresAt,
	})
	return id, nil
}

func (f *fakeOtpRepo) GetLatestByEmail(email string) (*models.OtpCode, error) {
	var matched []models.OtpCode
	for _, o := range f.codes {
		if o.Email == email {
			matched = append(matched, o)
		}
	}
	if len(matched) == 0 {
		return nil, nil
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	o := matched[0]
	return &o, nil
}

func (f *fakeOtpRepo) CountRecentSends(email string, since time.Time) (int, error) {
	n := 0
	for _, o := range f.codes {
		if o.Email == email && !o.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeRecruiterRepo struct {
	nextID  int
	byEmail map[string]*models.Recruiter
}

func newFakeRecruiterRepo() *fakeRecruiterRepo {
	return &fakeRecruiterRepo{nextID: 1, byEmail: map[string]*models.Recruiter{}}
}

func (f *fakeRecruiterRepo) Create(rec *models.Recruiter) error {
	if _, ok := f.byEmail[rec.Email]; ok {
		return repositories.ErrDuplicateEmail
	}
	rec.ID = f.nextID
	f.nextID++
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	cp := *rec
	f.byEmail[rec.Email] = &cp
	return nil
}

func (f *fakeRecruiterRepo) GetByEmail(email string) (*models.Recruiter, error) {
	r, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRecruiterRepo) UpdateStatus(id int, status string) error {
	for _, r := range f.byEmail {
		if r.ID == id {
			r.Status = status
		}
	}
	return nil
}

// fakeGoogle — подменяет проверку id_token: токен = ключ в map
type fakeGoogle struct {
	claims map[string]*utils.GoogleClaims
}

func (f *fakeGoogle) VerifyIDToken(_ context.Context, idToken string) (*utils.GoogleClaims, error) {
	c, ok := f.claims[idToken]
	if !ok {
		return nil, errors.New("invalid id_token")
	}
	return c, nil
}

// fakeEmails — считает отправки, писем не шлёт
type fakeEmails struct {
	otps      []string // "email:code"
	resets    []string
	welcomes  []string
	failSends bool
}

func (f *fakeEmails) SendOtpEmail(email, code string) error {
	if f.failSends {
		return errors.New("smtp down")
	}
	f.otps = append(f.otps, email+":"+code)
	return nil
}

func (f *fakeEmails) SendPasswordResetEmail(email string) error {
	if f.failSends {
		return errors.New("smtp down")
	}
	f.resets = append(f.resets, email)
	return nil
}

func (f *fakeEmails) SendRecruiterWelcomeEmail(email, _ string) error {
	if f.failSends {
		return errors.New("smtp down")
	}
	f.welcomes = append(f.welcomes, email)
	return nil
}
