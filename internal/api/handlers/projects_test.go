package handlers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hollis/teamhub/internal/api/handlers"
	"github.com/hollis/teamhub/internal/api/middleware"
	"github.com/hollis/teamhub/internal/database/models"
	"github.com/hollis/teamhub/internal/meetings"
	"github.com/hollis/teamhub/internal/projects"
	"github.com/hollis/teamhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubMeetingAPI struct {
	joinErr error
	endErr  error
}

func (s *stubMeetingAPI) Join(_ context.Context, meetingName, attendeeName string) (*meetings.JoinInfo, error) {
	if s.joinErr != nil {
		return nil, s.joinErr
	}
	return &meetings.JoinInfo{
		Meeting:  meetings.Meeting{MeetingID: "chime-1", ExternalMeetingID: meetingName},
		Attendee: meetings.Attendee{AttendeeID: "a-1", ExternalUserID: attendeeName, JoinToken: "token"},
	}, nil
}

func (s *stubMeetingAPI) End(_ context.Context, _ string) error {
	return s.endErr
}

func setupProjectTestRouter(t *testing.T) (*chi.Mux, *gorm.DB, *stubMeetingAPI) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	jwtService := testutil.CreateTestJWTService()
	meeting := &stubMeetingAPI{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := projects.NewService(db, meeting, logger)
	handler := handlers.NewProjectHandler(service)

	r := chi.NewRouter()
	r.Route("/api/v1/projects", func(r chi.Router) {
		r.Use(middleware.Auth(jwtService))
		r.Get("/all", handler.ListAll)
		r.Get("/user/{userID}", handler.ListByUser)
		r.Post("/", handler.Create)
		r.Get("/{id}", handler.Get)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
		r.Post("/{id}/members", handler.AddMember)
		r.Delete("/{id}/members/{userID}", handler.RemoveMember)
		r.Post("/{id}/meetings/start", handler.StartMeeting)
		r.Delete("/{id}/meetings", handler.EndMeeting)
	})

	return r, db, meeting
}

func userToken(t *testing.T, db *gorm.DB) (*models.User, string) {
	t.Helper()
	user := testutil.CreateTestUser(t, db)
	return user, testutil.GenerateTestToken(t, testutil.CreateTestJWTService(), user)
}

func TestProjectHandler_Create(t *testing.T) {
	router, db, _ := setupProjectTestRouter(t)
	user, token := userToken(t, db)

	t.Run("creates project with creator as member", func(t *testing.T) {
		body := map[string]interface{}{
			"name":        "Apollo",
			"description": "Moonshot",
		}
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/projects/", body, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusCreated)

		var project models.Project
		testutil.ParseJSONResponse(t, rr, &project)
		assert.Equal(t, "Apollo", project.Name)
		assert.Equal(t, user.ID, project.CreatedBy)
		assert.True(t, project.IsMember(user.ID))
	})

	t.Run("rejects missing name", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/projects/", map[string]string{}, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("rejects malformed member id", func(t *testing.T) {
		body := map[string]interface{}{
			"name":    "P",
			"members": []string{"not-a-uuid"},
		}
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/projects/", body, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("rejects unauthenticated", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "POST", "/api/v1/projects/", map[string]string{"name": "P"})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}

func TestProjectHandler_GetAndList(t *testing.T) {
	router, db, _ := setupProjectTestRouter(t)
	user, token := userToken(t, db)
	project := testutil.CreateTestProject(t, db, user.ID)

	t.Run("get by id", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/v1/projects/"+project.ID.String(), nil, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	t.Run("get unknown id returns 404", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/v1/projects/"+uuid.NewString(), nil, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})

	t.Run("list by user", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/v1/projects/user/"+user.ID.String(), nil, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)

		var list []models.Project
		testutil.ParseJSONResponse(t, rr, &list)
		require.Len(t, list, 1)
		assert.Equal(t, project.ID, list[0].ID)
	})

	t.Run("list all", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/v1/projects/all", nil, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
	})
}

func TestProjectHandler_Members(t *testing.T) {
	router, db, _ := setupProjectTestRouter(t)
	user, token := userToken(t, db)
	project := testutil.CreateTestProject(t, db, user.ID)
	newMember := uuid.New()

	t.Run("add member", func(t *testing.T) {
		body := map[string]string{"userId": newMember.String()}
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/projects/"+project.ID.String()+"/members", body, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)

		var updated models.Project
		testutil.ParseJSONResponse(t, rr, &updated)
		assert.True(t, updated.IsMember(newMember))
	})

	t.Run("remove member", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE", "/api/v1/projects/"+project.ID.String()+"/members/"+newMember.String(), nil, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)

		var updated models.Project
		testutil.ParseJSONResponse(t, rr, &updated)
		assert.False(t, updated.IsMember(newMember))
	})

	t.Run("add with invalid user id", func(t *testing.T) {
		body := map[string]string{"userId": "nope"}
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/projects/"+project.ID.String()+"/members", body, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)

		// The rejected id must not be written as a nil-uuid member.
		var stored models.Project
		require.NoError(t, db.First(&stored, "id = ?", project.ID).Error)
		assert.False(t, stored.IsMember(uuid.Nil))
	})
}

func TestProjectHandler_StartMeeting(t *testing.T) {
	router, db, meeting := setupProjectTestRouter(t)
	user, token := userToken(t, db)
	project := testutil.CreateTestProject(t, db, user.ID)

	t.Run("member starts meeting", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/projects/"+project.ID.String()+"/meetings/start", nil, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)

		var info meetings.JoinInfo
		testutil.ParseJSONResponse(t, rr, &info)
		assert.Equal(t, project.ID.String(), info.Meeting.ExternalMeetingID)
		assert.NotEmpty(t, info.Attendee.JoinToken)
	})

	t.Run("non-member is rejected", func(t *testing.T) {
		_, outsiderToken := userToken(t, db)
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/projects/"+project.ID.String()+"/meetings/start", nil, outsiderToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("downstream failure surfaces as 400", func(t *testing.T) {
		other := testutil.CreateTestProject(t, db, user.ID)
		meeting.joinErr = errors.New("boom")
		defer func() { meeting.joinErr = nil }()

		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/projects/"+other.ID.String()+"/meetings/start", nil, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})
}

func TestProjectHandler_EndMeeting(t *testing.T) {
	router, db, _ := setupProjectTestRouter(t)
	user, token := userToken(t, db)
	project := testutil.CreateTestProject(t, db, user.ID)

	start := testutil.AuthenticatedRequest(t, "POST", "/api/v1/projects/"+project.ID.String()+"/meetings/start", nil, token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, start)
	require.Equal(t, http.StatusOK, rr.Code)

	t.Run("member ends meeting", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE", "/api/v1/projects/"+project.ID.String()+"/meetings", nil, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusNoContent)
	})

	t.Run("ending again is still success", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE", "/api/v1/projects/"+project.ID.String()+"/meetings", nil, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusNoContent)
	})
}

func TestProjectHandler_Delete(t *testing.T) {
	router, db, _ := setupProjectTestRouter(t)
	user, token := userToken(t, db)
	project := testutil.CreateTestProject(t, db, user.ID)

	req := testutil.AuthenticatedRequest(t, "DELETE", "/api/v1/projects/"+project.ID.String(), nil, token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	req = testutil.AuthenticatedRequest(t, "DELETE", "/api/v1/projects/"+project.ID.String(), nil, token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}
