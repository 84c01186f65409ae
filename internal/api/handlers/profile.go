package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hollis/teamhub/internal/api/dto"
	"github.com/hollis/teamhub/internal/api/middleware"
	"github.com/hollis/teamhub/internal/auth"
	"github.com/hollis/teamhub/internal/database/models"
)

type ProfileHandler struct {
	profileService *auth.ProfileService
}

func NewProfileHandler(profileService *auth.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	if username == "" {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	user, err := h.profileService.GetProfile(r.Context(), username)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserDTO(user))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	if username == "" {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.profileService.UpdateProfile(r.Context(), username, auth.UpdateProfileInput{
		FullName:   req.FullName,
		Bio:        req.Bio,
		Department: req.Department,
		TimeZone:   req.TimeZone,
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserDTO(user))
}

func (h *ProfileHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.profileService.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toUserDTOs(users))
}

func (h *ProfileHandler) ByIDs(w http.ResponseWriter, r *http.Request) {
	var req dto.UserIDsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.UserIDs) == 0 {
		writeError(w, http.StatusBadRequest, "User IDs are required")
		return
	}

	users, err := h.profileService.GetUsersByIDs(r.Context(), req.UserIDs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toUserDTOs(users))
}

func toUserDTOs(users []models.User) []dto.UserDTO {
	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, dto.ToUserDTO(&users[i]))
	}
	return out
}
