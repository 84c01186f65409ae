package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hollis/teamhub/internal/api/dto"
	"github.com/hollis/teamhub/internal/api/middleware"
	"github.com/hollis/teamhub/internal/projects"
)

type ProjectHandler struct {
	service *projects.Service
}

func NewProjectHandler(service *projects.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	members := make([]uuid.UUID, 0, len(req.Members))
	for _, m := range req.Members {
		if m == "" {
			continue
		}
		id, err := uuid.Parse(m)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid member id")
			return
		}
		members = append(members, id)
	}

	project, err := h.service.Create(r.Context(), projects.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   middleware.GetUserID(r.Context()),
		Members:     members,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	project, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, projects.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	list, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *ProjectHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	project, err := h.service.Update(r.Context(), id, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, projects.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	project, err := h.service.AddMember(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, projects.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	project, err := h.service.RemoveMember(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, projects.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, projects.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// StartMeeting starts a meeting for the project, or joins the running one.
// Identity comes from the verified token, never the request body.
func (h *ProjectHandler) StartMeeting(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	userID := middleware.GetUserID(r.Context())
	userName := middleware.GetUsername(r.Context())
	if userID == uuid.Nil || userName == "" {
		writeError(w, http.StatusUnauthorized, "User identity missing from token")
		return
	}

	info, err := h.service.StartOrJoinMeeting(r.Context(), id, userID, userName)
	if err != nil {
		switch {
		case errors.Is(err, projects.ErrProjectNotFound):
			writeError(w, http.StatusNotFound, "Project not found")
		case errors.Is(err, projects.ErrNotMember):
			writeError(w, http.StatusBadRequest, "Failed to start or join meeting. Ensure you are a project member.")
		case errors.Is(err, projects.ErrMeetingUnavailable):
			writeError(w, http.StatusBadRequest, "Meeting unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		}
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *ProjectHandler) EndMeeting(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	if err := h.service.EndMeeting(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, projects.ErrProjectNotFound):
			writeError(w, http.StatusNotFound, "Project not found")
		case errors.Is(err, projects.ErrNotMember):
			writeError(w, http.StatusBadRequest, "Failed to end meeting")
		default:
			writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}
