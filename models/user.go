package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account in the user directory.
// PasswordHash is a bcrypt hash; the cleartext credential is never stored.
type User struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// Identity is the public view of a user exposed to the rest of the system.
// It never carries credential material.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Identity returns the credential-free view of the user.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
