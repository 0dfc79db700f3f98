package handler

import (
	"time"

	"github.com/samudra-paket/tracking-service/internal/core/domain"
)

// trackingEventRequest is a single status update from a courier app, warehouse
// scanner, or partner webhook. The status token set is open-ended; the only
// constraint enforced here is the lowercase underscore format.
type trackingEventRequest struct {
	TrackingNumber string          `json:"tracking_number" validate:"required"`
	Status         string          `json:"status"          validate:"required,lowercase"`
	Timestamp      time.Time       `json:"timestamp"       validate:"required"`
	Source         string          `json:"source"          validate:"required"`
	Location       string          `json:"location"`
	Notes          string          `json:"notes"`
	User           domain.ActorRef `json:"user"` // string or object on the wire
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
