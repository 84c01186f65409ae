package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hollis/teamhub/internal/database/models"
	"gorm.io/gorm"
)

// ProfileService owns read/update access to user profiles.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

type UpdateProfileInput struct {
	FullName   string
	Bio        string
	Department string
	TimeZone   string
}

func (s *ProfileService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a sparse patch: only non-empty fields overwrite the
// stored profile, so a field cannot be reset to empty through this path.
func (s *ProfileService) UpdateProfile(ctx context.Context, username string, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.Department != "" {
		user.Department = input.Department
	}
	if input.TimeZone != "" {
		user.TimeZone = input.TimeZone
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *ProfileService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUsersByIDs loads the users for the given id strings. Unparseable ids
// are skipped rather than rejected.
func (s *ProfileService) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		parsed = append(parsed, id)
	}

	if len(parsed) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", parsed).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
