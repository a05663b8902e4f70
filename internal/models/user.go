package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Username        string    `json:"username"`
	FirstName       *string   `json:"first_name,omitempty"`
	LastName        *string   `json:"last_name,omitempty"`
	PhoneNumber     *string   `json:"phone_number,omitempty"`
	Province        *string   `json:"province,omitempty"`
	City            *string   `json:"city,omitempty"`
	PostalCode      *string   `json:"postal_code,omitempty"`
	Address         *string   `json:"address,omitempty"`
	IsBrand         bool      `json:"is_brand"`
	IsKOL           bool      `json:"is_kol"`
	SignupCompleted bool      `json:"signup_completed"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Profile holds the user-editable fields filled in on the second signup step.
type Profile struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Province    *string
	City        *string
	PostalCode  *string
	Address     *string
}

// Apply overwrites the profile fields that are set.
func (p Profile) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = p.FirstName
	}
	if p.LastName != nil {
		u.LastName = p.LastName
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = p.PhoneNumber
	}
	if p.Province != nil {
		u.Province = p.Province
	}
	if p.City != nil {
		u.City = p.City
	}
	if p.PostalCode != nil {
		u.PostalCode = p.PostalCode
	}
	if p.Address != nil {
		u.Address = p.Address
	}
}
