package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hollis/teamhub/internal/api/dto"
	"github.com/hollis/teamhub/internal/meetings"
)

type MeetingHandler struct {
	coordinator *meetings.Coordinator
}

func NewMeetingHandler(coordinator *meetings.Coordinator) *MeetingHandler {
	return &MeetingHandler{coordinator: coordinator}
}

// Join creates the meeting if needed and always issues a fresh attendee.
func (h *MeetingHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req dto.JoinMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid meeting request data")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	info, err := h.coordinator.CreateOrJoin(r.Context(), req.MeetingName, req.AttendeeName, req.MediaRegion)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *MeetingHandler) End(w http.ResponseWriter, r *http.Request) {
	meetingName := chi.URLParam(r, "meetingName")
	if meetingName == "" {
		writeError(w, http.StatusBadRequest, "Meeting name is required")
		return
	}

	if err := h.coordinator.End(r.Context(), meetingName); err != nil {
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
