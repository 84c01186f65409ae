package projects

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hollis/teamhub/internal/database/models"
	"github.com/hollis/teamhub/internal/meetings"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrNotMember          = errors.New("user is not a project member")
	ErrMeetingUnavailable = errors.New("meeting unavailable")
)

// MeetingAPI is the out-of-process meeting coordinator, reached over HTTP.
type MeetingAPI interface {
	Join(ctx context.Context, meetingName, attendeeName string) (*meetings.JoinInfo, error)
	End(ctx context.Context, meetingName string) error
}

type Service struct {
	db      *gorm.DB
	meeting MeetingAPI
	logger  *slog.Logger
}

func NewService(db *gorm.DB, meeting MeetingAPI, logger *slog.Logger) *Service {
	return &Service{db: db, meeting: meeting, logger: logger}
}

type CreateInput struct {
	Name        string
	Description string
	CreatedBy   uuid.UUID
	Members     []uuid.UUID
}

// Create persists a new project. The creator is added to the member set so
// membership-gated operations work for them out of the box.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Project, error) {
	members := models.UUIDArray{}
	for _, m := range input.Members {
		if m != uuid.Nil && !members.Contains(m) {
			members = append(members, m)
		}
	}
	if !members.Contains(input.CreatedBy) {
		members = append(members, input.CreatedBy)
	}

	project := models.Project{
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   input.CreatedBy,
		Members:     members,
	}

	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// ListByUser returns projects the user created or belongs to.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Or("members LIKE ?", "%"+userID.String()+"%").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Service) ListAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.WithContext(ctx).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update overwrites name and description.
func (s *Service) Update(ctx context.Context, id uuid.UUID, name, description string) (*models.Project, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Name = name
	project.Description = description
	if err := s.db.WithContext(ctx).Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// AddMember is idempotent: adding an existing member is a no-op.
func (s *Service) AddMember(ctx context.Context, id, userID uuid.UUID) (*models.Project, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if project.Members.Contains(userID) {
		return project, nil
	}

	project.Members = append(project.Members, userID)
	if err := s.db.WithContext(ctx).Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (s *Service) RemoveMember(ctx context.Context, id, userID uuid.UUID) (*models.Project, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	kept := make(models.UUIDArray, 0, len(project.Members))
	for _, m := range project.Members {
		if m != userID {
			kept = append(kept, m)
		}
	}
	project.Members = kept

	if err := s.db.WithContext(ctx).Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// StartOrJoinMeeting starts a meeting for the project, or joins the running
// one. Callers must be current members; the creator is not implicitly a
// member. The ActiveMeeting marker is persisted only after a successful
// start; when the downstream call fails the record is left unmodified.
func (s *Service) StartOrJoinMeeting(ctx context.Context, projectID, userID uuid.UUID, userName string) (*meetings.JoinInfo, error) {
	project, err := s.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !project.IsMember(userID) {
		return nil, ErrNotMember
	}

	if project.ActiveMeeting != nil {
		// Join path: same downstream operation, no record mutation.
		info, err := s.meeting.Join(ctx, projectID.String(), userName)
		if err != nil {
			s.logger.Error("joining meeting failed", "project_id", projectID, "error", err)
			return nil, ErrMeetingUnavailable
		}
		return info, nil
	}

	info, err := s.meeting.Join(ctx, projectID.String(), userName)
	if err != nil {
		s.logger.Error("starting meeting failed", "project_id", projectID, "error", err)
		return nil, ErrMeetingUnavailable
	}

	project.ActiveMeeting = &models.ActiveMeetingInfo{
		ChimeMeetingID:       info.Meeting.MeetingID,
		ApplicationMeetingID: info.Meeting.ExternalMeetingID,
		StartedBy:            userID.String(),
		StartedAt:            time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Save(project).Error; err != nil {
		return nil, err
	}

	return info, nil
}

// EndMeeting ends the project's meeting. With no active marker it succeeds
// without any downstream call. Otherwise the marker is always cleared, even
// when the downstream End fails; that failure is logged, not propagated.
func (s *Service) EndMeeting(ctx context.Context, projectID, userID uuid.UUID) error {
	project, err := s.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	if !project.IsMember(userID) {
		return ErrNotMember
	}

	if project.ActiveMeeting == nil {
		return nil
	}

	if err := s.meeting.End(ctx, projectID.String()); err != nil {
		s.logger.Error("ending meeting downstream failed, clearing marker anyway",
			"project_id", projectID, "error", err)
	}

	project.ActiveMeeting = nil
	return s.db.WithContext(ctx).Save(project).Error
}
