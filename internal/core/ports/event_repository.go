package ports

import (
	"context"

	"github.com/samudra-paket/tracking-service/internal/core/domain"
)

// EventRepository handles event persistence and atomic shipment status updates.
type EventRepository interface {
	// AppendStatus atomically sets the shipment's new status and appends the
	// history entry in a single update.
	AppendStatus(ctx context.Context, trackingNumber string, entry domain.StatusHistoryEntry) error

	// InsertEvent persists an event to the status_events audit collection.
	InsertEvent(ctx context.Context, event *domain.TrackingEvent) error
}
