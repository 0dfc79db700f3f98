package ports

import (
	"context"
	"time"

	"github.com/samudra-paket/tracking-service/internal/core/domain"
)

// TrackingEventInput is the DTO passed from the transport layer to EventService.
type TrackingEventInput struct {
	TrackingNumber string
	Status         string
	Timestamp      time.Time
	Source         string
	Location       string          // optional free text
	Notes          string          // optional
	Actor          domain.ActorRef // optional; string or object on the wire
}

// EventService processes incoming tracking events.
type EventService interface {
	Process(ctx context.Context, event TrackingEventInput) error
}
