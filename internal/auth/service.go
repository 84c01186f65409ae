package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hollis/teamhub/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrInvalidRefresh     = errors.New("invalid or expired refresh token")
)

const refreshTokenTTL = 7 * 24 * time.Hour

type Service struct {
	db  *gorm.DB
	jwt *JWTService
}

func NewService(db *gorm.DB, jwt *JWTService) *Service {
	return &Service{db: db, jwt: jwt}
}

type RegisterInput struct {
	Username   string
	FullName   string
	Email      string
	Password   string
	Bio        string
	Department string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresAt    time.Time    `json:"expiresAt"`
	User         *models.User `json:"user"`
}

// generateRefreshToken produces a secure opaque refresh token.
func generateRefreshToken() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating refresh token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	// Check if user exists
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     input.Username,
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		Bio:          input.Bio,
		Department:   input.Department,
		JoinedAt:     time.Now().UTC(),
		IsActive:     true,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, &user)
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	if !CheckPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login", now).Error; err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, &user)
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is returned unchanged; tokens are not rotated.
func (s *Service) Refresh(ctx context.Context, token string) (*AuthResponse, error) {
	var rt models.RefreshToken
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("token = ? AND is_revoked = ? AND expires_at > ?", token, false, time.Now().UTC()).
		First(&rt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	if rt.User == nil {
		return nil, ErrInvalidRefresh
	}

	access, err := s.jwt.GenerateToken(rt.User.ID, rt.User.Username, rt.User.Email, rt.User.Role, rt.User.FullName)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:        access,
		RefreshToken: rt.Token,
		ExpiresAt:    time.Now().UTC().Add(s.jwt.expiry),
		User:         rt.User,
	}, nil
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Service) issueTokens(ctx context.Context, user *models.User) (*AuthResponse, error) {
	access, err := s.jwt.GenerateToken(user.ID, user.Username, user.Email, user.Role, user.FullName)
	if err != nil {
		return nil, err
	}

	refresh, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}

	rt := models.RefreshToken{
		Token:     refresh,
		ExpiresAt: time.Now().UTC().Add(refreshTokenTTL),
		UserID:    user.ID,
	}
	if err := s.db.WithContext(ctx).Create(&rt).Error; err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:        access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().UTC().Add(s.jwt.expiry),
		User:         user,
	}, nil
}
