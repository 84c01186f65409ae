package dto

import (
	"time"

	"github.com/hollis/teamhub/internal/api/validation"
	"github.com/hollis/teamhub/internal/database/models"
)

type RegisterRequest struct {
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Bio        string `json:"bio,omitempty"`
	Department string `json:"department,omitempty"`
}

func (r RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Username == "" {
		errors["username"] = "Username is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Email is invalid"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	} else if len(r.Password) < 8 {
		errors["password"] = "Password must be at least 8 characters"
	}

	return errors
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type UpdateProfileRequest struct {
	FullName   string `json:"fullName,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Department string `json:"department,omitempty"`
	TimeZone   string `json:"timeZone,omitempty"`
}

type UserIDsRequest struct {
	UserIDs []string `json:"userIds"`
}

type AuthResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         UserDTO   `json:"user"`
}

type UserDTO struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	FullName   string     `json:"fullName"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Bio        string     `json:"bio,omitempty"`
	Department string     `json:"department,omitempty"`
	TimeZone   string     `json:"timeZone,omitempty"`
	JoinedAt   time.Time  `json:"joinedAt"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
}

func ToUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:         u.ID.String(),
		Username:   u.Username,
		FullName:   u.FullName,
		Email:      u.Email,
		Role:       u.Role,
		Bio:        u.Bio,
		Department: u.Department,
		TimeZone:   u.TimeZone,
		JoinedAt:   u.JoinedAt,
		LastLogin:  u.LastLogin,
	}
}
