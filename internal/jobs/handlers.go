package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hollis/teamhub/internal/meetings"
)

type Handler struct {
	coordinator *meetings.Coordinator
	logger      *slog.Logger
}

func NewHandler(coordinator *meetings.Coordinator, logger *slog.Logger) *Handler {
	return &Handler{coordinator: coordinator, logger: logger}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeMeetingReap, h.HandleMeetingReap)
}

// HandleMeetingReap ends registered meetings older than the payload's max
// age. Meetings orphaned by attendee-creation failures or clients that never
// called End are otherwise kept alive forever. Best effort: a failed End is
// logged and the sweep continues.
func (h *Handler) HandleMeetingReap(ctx context.Context, t *asynq.Task) error {
	var payload MeetingReapPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	maxAge := time.Duration(payload.MaxAgeMinutes) * time.Minute
	stale := h.coordinator.Stale(maxAge)
	if len(stale) == 0 {
		return nil
	}

	h.logger.Info("reaping stale meetings", "count", len(stale), "max_age", maxAge.String())

	for _, name := range stale {
		if err := h.coordinator.End(ctx, name); err != nil {
			h.logger.Error("reaping meeting failed", "meeting_name", name, "error", err)
		}
	}
	return nil
}
