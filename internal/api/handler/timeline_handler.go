package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/samudra-paket/tracking-service/internal/core/ports"
)

// TimelineHandler serves display-ready status timelines.
type TimelineHandler struct {
	service ports.TrackingService
}

func NewTimelineHandler(service ports.TrackingService) *TimelineHandler {
	return &TimelineHandler{service: service}
}

type timelineEntryResponse struct {
	Status    string    `json:"status"`
	Label     string    `json:"label"`
	Color     string    `json:"color"`
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	User      string    `json:"user,omitempty"`
}

// timelineResponse carries the annotated history most-recent-first. Empty is
// true when the shipment has no history at all, telling clients to render a
// placeholder instead of a blank list.
type timelineResponse struct {
	TrackingNumber string                  `json:"tracking_number"`
	CurrentStatus  string                  `json:"current_status"`
	Empty          bool                    `json:"empty"`
	Entries        []timelineEntryResponse `json:"entries"`
}

// Get handles GET /v1/shipments/:tracking_number/timeline.
//
// @Summary      Get the status timeline of a shipment
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        tracking_number  path      string  true  "Tracking number (e.g. SPK-7A8B9C2D)"
// @Success      200              {object}  timelineResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /v1/shipments/{tracking_number}/timeline [get]
func (h *TimelineHandler) Get(c echo.Context) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}

	result, err := h.service.GetTimeline(c.Request().Context(), ports.GetTimelineInput{
		TrackingNumber: c.Param("tracking_number"),
		Role:           claims.Role,
		ClientID:       claims.ClientID,
	})
	if err != nil {
		return err
	}

	entries := make([]timelineEntryResponse, len(result.Entries))
	for i, e := range result.Entries {
		entries[i] = timelineEntryResponse{
			Status:    e.Status,
			Label:     e.Label,
			Color:     e.Color,
			Timestamp: e.Timestamp.UTC(),
			Location:  e.Location,
			Notes:     e.Notes,
			User:      e.Actor,
		}
	}

	return c.JSON(http.StatusOK, timelineResponse{
		TrackingNumber: result.TrackingNumber,
		CurrentStatus:  result.CurrentStatus,
		Empty:          result.Empty,
		Entries:        entries,
	})
}
