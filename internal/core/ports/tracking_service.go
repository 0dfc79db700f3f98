package ports

import (
	"context"
	"time"
)

// GetTimelineInput carries the parameters for the timeline endpoint.
type GetTimelineInput struct {
	TrackingNumber string
	// Role and ClientID enforce RBAC, like GetShipment.
	Role     string
	ClientID string
}

// TimelineEntry is one history record annotated for rendering: the raw token,
// its display label and colour category, and a normalized actor string.
type TimelineEntry struct {
	Status    string    `json:"status"`
	Label     string    `json:"label"`
	Color     string    `json:"color"`
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Actor     string    `json:"user,omitempty"`
}

// TimelineResult is the display-ready timeline for one shipment, ordered most
// recent first. Empty=true means the shipment has no history at all, so the
// client renders a placeholder instead of an empty list.
type TimelineResult struct {
	TrackingNumber string          `json:"tracking_number"`
	CurrentStatus  string          `json:"current_status"`
	Empty          bool            `json:"empty"`
	Entries        []TimelineEntry `json:"entries"`
}

// TrackingService serves projected status timelines.
type TrackingService interface {
	GetTimeline(ctx context.Context, input GetTimelineInput) (*TimelineResult, error)
}
