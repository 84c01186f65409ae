package models

import (
	"time"

	"github.com/google/uuid"
)

// Global roles
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

type User struct {
	Base
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	FullName     string `json:"full_name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:'User'" json:"role"` // User, Admin

	// Extended profile fields
	Bio        string `json:"bio,omitempty"`
	Department string `json:"department,omitempty"`
	TimeZone   string `json:"time_zone,omitempty"`

	JoinedAt  time.Time  `json:"joined_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`

	// Relationships: multi-device refresh tokens
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// RefreshToken is an opaque long-lived token backing the JWT refresh flow.
// Tokens are consulted at refresh time but never rotated or hard-deleted.
type RefreshToken struct {
	Base
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `gorm:"default:false" json:"is_revoked"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
