package models

import "time"

// Статусы модерации рекрутёра
const (
	RecruiterStatusPending  = "pending"
	RecruiterStatusApproved = "approved"
	RecruiterStatusRejected = "rejected"
)

type Recruiter struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`

	CompanyName        string `json:"company_name"`
	CompanyDescription string `json:"company_description,omitempty"`
	CompanyLogoURL     string `json:"company_logo_url,omitempty"`

	Status string `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RecruiterSignUpRequest struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,min=6"`
	CompanyName        string `json:"companyName" binding:"required"`
	CompanyDescription string `json:"companyDescription"`
	CompanyLogoURL     string `json:"companyLogoUrl"`
}
